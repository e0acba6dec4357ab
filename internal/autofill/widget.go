// Package autofill fills address fields from a postal-code field. It knows nothing
// about any particular UI toolkit: hosts adapt their inputs to Field and their forms
// to Container, forward input events to Binding.HandleInput, and own the lifetime of
// every binding through the Widget registry.
package autofill

import (
	"context"
	"errors"
	"sync"
	"time"

	"jusho-client/internal/debounce"
	"jusho-client/internal/models"
	"jusho-client/internal/postalcode"

	"github.com/rs/zerolog"
)

// Field names used to tag fields inside a container.
const (
	FieldPostal  = "postal"
	FieldPref    = "pref"
	FieldCity    = "city"
	FieldTown    = "town"
	FieldAddress = "address"
)

// Events emitted on every field the widget writes.
const (
	EventInput  = "input"
	EventChange = "change"
)

// DefaultDebounce is the quiet window before a lookup is sent.
const DefaultDebounce = 300 * time.Millisecond

// ErrNotFound is passed to OnError when a lookup yields no address.
var ErrNotFound = errors.New("address not found")

// Field is a text input the widget can read and write.
type Field interface {
	Value() string
	SetValue(string)
	// Emit tells the host an event happened on this field so host forms observe it.
	Emit(event string)
}

// Option is one entry of a select-like field.
type Option struct {
	Text  string
	Value string
}

// Chooser is a select-like field. The widget picks the option whose text or value
// matches instead of writing free text.
type Chooser interface {
	Field
	Options() []Option
	Choose(index int)
}

// Container resolves sibling fields by their tag.
type Container interface {
	Field(name string) (Field, bool)
}

// PostalLookup resolves a sanitized 7-digit postal code.
type PostalLookup interface {
	Postal(ctx context.Context, code string) (models.PostalResult, error)
}

// Resolved is what gets written into the form.
type Resolved struct {
	PostCode    string
	Pref        string
	City        string
	Town        string
	Address     string
	FullAddress string
}

// Options tune a Widget.
type Options struct {
	Debounce time.Duration
	// Timeout bounds each lookup on top of the client's own deadline. Zero means none.
	Timeout   time.Duration
	OnResolve func(Resolved)
	// OnError receives lookup failures. Failures are silent when nil.
	OnError func(error)
	Logger  *zerolog.Logger
}

// Widget owns the set of currently attached postal fields.
type Widget struct {
	lookup PostalLookup
	opts   Options
	log    zerolog.Logger

	mu       sync.Mutex
	bindings map[*Binding]struct{}
}

// New returns a Widget with no attached fields.
func New(lookup PostalLookup, opts Options) *Widget {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Widget{
		lookup:   lookup,
		opts:     opts,
		log:      logger,
		bindings: make(map[*Binding]struct{}),
	}
}

// Initialize attaches every container's postal field. Containers without one are
// skipped. It returns the bindings that were created.
func (w *Widget) Initialize(containers ...Container) []*Binding {
	var out []*Binding
	for _, c := range containers {
		input, ok := c.Field(FieldPostal)
		if !ok {
			continue
		}
		out = append(out, w.Attach(input, c))
	}

	return out
}

// Attach binds input to the fields of form.
func (w *Widget) Attach(input Field, form Container) *Binding {
	b := &Binding{widget: w, input: input, form: form}
	b.debouncer = debounce.New(w.opts.Debounce, b.lookup)

	w.mu.Lock()
	w.bindings[b] = struct{}{}
	w.mu.Unlock()

	return b
}

// Len reports how many bindings are attached.
func (w *Widget) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.bindings)
}

// DetachAll detaches every binding.
func (w *Widget) DetachAll() {
	w.mu.Lock()
	all := make([]*Binding, 0, len(w.bindings))
	for b := range w.bindings {
		all = append(all, b)
	}
	w.mu.Unlock()

	for _, b := range all {
		b.Detach()
	}
}

func (w *Widget) remove(b *Binding) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.bindings[b]; !ok {
		return false
	}
	delete(w.bindings, b)
	return true
}

// Binding connects one postal field to its form.
type Binding struct {
	widget    *Widget
	input     Field
	form      Container
	debouncer *debounce.Debouncer[string]
}

// HandleInput must be called by the host on every input event of the postal field.
func (b *Binding) HandleInput() {
	b.debouncer.Trigger(b.input.Value())
}

// Detach stops the binding and removes it from the registry. It is idempotent.
func (b *Binding) Detach() {
	if b.widget.remove(b) {
		b.debouncer.Stop()
	}
}

func (b *Binding) lookup(value string) {
	code, ok := ExtractPostalCode(value)
	if !ok {
		return
	}

	w := b.widget
	ctx := context.Background()
	if w.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.opts.Timeout)
		defer cancel()
	}

	res, err := w.lookup.Postal(ctx, code)
	if err != nil {
		w.log.Debug().Err(err).Str("postal_code", code).Msg("autofill lookup failed")
		if w.opts.OnError != nil {
			w.opts.OnError(errors.Join(ErrNotFound, err))
		}
		return
	}

	resolved := resolve(code, res)
	Fill(b.form, resolved)

	if w.opts.OnResolve != nil {
		w.opts.OnResolve(resolved)
	}
}

func resolve(code string, res models.PostalResult) Resolved {
	postCode := res.Codes.PostCode
	if postCode == "" {
		postCode = res.PostalCode
	}
	if postCode == "" {
		postCode = code
	}

	address := res.Address.Pref + res.Address.City + res.Address.Town
	full := res.Address.Full
	if full == "" {
		full = address
	}

	return Resolved{
		PostCode:    postCode,
		Pref:        res.Address.Pref,
		City:        res.Address.City,
		Town:        res.Address.Town,
		Address:     address,
		FullAddress: full,
	}
}

// Fill writes r into the tagged fields of form and emits input and change on each.
func Fill(form Container, r Resolved) {
	targets := []struct {
		name  string
		value string
	}{
		{FieldPref, r.Pref},
		{FieldCity, r.City},
		{FieldTown, r.Town},
		{FieldAddress, r.FullAddress},
	}

	for _, t := range targets {
		f, ok := form.Field(t.name)
		if !ok {
			continue
		}

		if c, ok := f.(Chooser); ok {
			for i, opt := range c.Options() {
				if opt.Text == t.value || opt.Value == t.value {
					c.Choose(i)
					break
				}
			}
		} else {
			f.SetValue(t.value)
		}

		f.Emit(EventInput)
		f.Emit(EventChange)
	}
}

// ExtractPostalCode pulls a 7-digit code out of free-form field input. Full-width
// characters are folded, and spaces and dash variants are ignored, matching what
// Client.Postal accepts.
func ExtractPostalCode(value string) (string, bool) {
	return postalcode.Extract(value)
}
