// Package lookupstate tracks the observable state of an interactive normalize lookup:
// idle, loading, then success, error or ambiguous.
package lookupstate

import (
	"context"
	"errors"
	"strings"
	"sync"

	"jusho-client/internal/models"
)

// Status is the phase of the current lookup.
type Status int

const (
	Idle Status = iota
	Loading
	Success
	Failed
	Ambiguous
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "error"
	case Ambiguous:
		return "ambiguous"
	default:
		return "idle"
	}
}

// EmptyInputMessage is reported when a blank address is submitted.
const EmptyInputMessage = "住所を入力してください"

// Snapshot is an immutable view of the machine. Only the field matching Status is set.
type Snapshot struct {
	Status    Status
	Input     string
	Result    *models.NormalizationResult
	Err       string
	Ambiguous *models.AmbiguousMatch
}

// Normalizer is the lookup the machine drives.
type Normalizer interface {
	Normalize(ctx context.Context, address string) (models.NormalizationResult, error)
}

// Machine serializes state updates. Each Submit takes a generation number; a
// response that arrives after a newer Submit or a Reset is discarded.
type Machine struct {
	normalizer Normalizer

	mu        sync.Mutex
	snap      Snapshot
	gen       uint64
	listeners []func(Snapshot)
}

// New returns an idle Machine.
func New(n Normalizer) *Machine {
	return &Machine{normalizer: n}
}

// OnChange registers fn to be called after every state transition.
func (m *Machine) OnChange(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners = append(m.listeners, fn)
}

// Snapshot returns the current state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.snap
}

// Submit clears any previous outcome, enters Loading and blocks until the lookup
// finishes. It returns the state the machine is in afterward, which is a newer
// request's state if this one was superseded.
func (m *Machine) Submit(ctx context.Context, address string) Snapshot {
	if strings.TrimSpace(address) == "" {
		m.mu.Lock()
		m.gen++
		m.set(Snapshot{Status: Failed, Err: EmptyInputMessage})
		return m.unlockAndNotify()
	}

	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.set(Snapshot{Status: Loading, Input: address})
	m.unlockAndNotify()

	res, err := m.normalizer.Normalize(ctx, address)

	m.mu.Lock()
	if gen != m.gen {
		snap := m.snap
		m.mu.Unlock()
		return snap
	}

	next := Snapshot{Input: address}
	var amb *models.AmbiguousMatch
	switch {
	case errors.As(err, &amb):
		next.Status = Ambiguous
		next.Ambiguous = amb
	case err != nil:
		next.Status = Failed
		next.Err = err.Error()
	default:
		next.Status = Success
		next.Result = &res
	}
	m.set(next)

	return m.unlockAndNotify()
}

// Reset returns to Idle and discards any in-flight response.
func (m *Machine) Reset() {
	m.mu.Lock()
	m.gen++
	m.set(Snapshot{Status: Idle})
	m.unlockAndNotify()
}

// set must be called with mu held.
func (m *Machine) set(s Snapshot) {
	m.snap = s
}

// unlockAndNotify releases mu and then delivers the current snapshot to listeners.
func (m *Machine) unlockAndNotify() Snapshot {
	snap := m.snap
	listeners := append([]func(Snapshot){}, m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}

	return snap
}
