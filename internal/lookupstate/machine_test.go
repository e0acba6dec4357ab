package lookupstate

import (
	"context"
	"sync"
	"testing"

	"jusho-client/internal/apierror"
	"jusho-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockNormalizer is a mock implementation of the Normalizer interface
type MockNormalizer struct {
	mock.Mock
}

func (m *MockNormalizer) Normalize(ctx context.Context, address string) (models.NormalizationResult, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(models.NormalizationResult), args.Error(1)
}

func TestMachine_Submit(t *testing.T) {
	ambiguous := &models.AmbiguousMatch{
		Kind:       models.AmbiguousTownMatch,
		Message:    "複数の町域に一致しました",
		Candidates: []string{"府中市宮西町", "府中市宮町"},
	}

	tests := []struct {
		name       string
		address    string
		result     models.NormalizationResult
		err        error
		wantStatus Status
		wantErr    string
	}{
		{
			name:       "success",
			address:    "東京都渋谷区渋谷2-21-1",
			result:     models.NormalizationResult{FullAddress: "東京都渋谷区渋谷二丁目21-1"},
			wantStatus: Success,
		},
		{
			name:       "failure",
			address:    "存在しない住所",
			err:        apierror.Classify(404, nil, []byte(`{"detail":"Address not found"}`)),
			wantStatus: Failed,
			wantErr:    "Address not found",
		},
		{
			name:       "ambiguous",
			address:    "府中市宮",
			err:        ambiguous,
			wantStatus: Ambiguous,
		},
		{
			name:       "blank input",
			address:    "  　",
			wantStatus: Failed,
			wantErr:    EmptyInputMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockNorm := new(MockNormalizer)
			m := New(mockNorm)

			var seen []Status
			m.OnChange(func(s Snapshot) { seen = append(seen, s.Status) })

			blank := tt.wantErr == EmptyInputMessage
			if !blank {
				mockNorm.On("Normalize", mock.Anything, tt.address).Return(tt.result, tt.err)
			}

			got := m.Submit(context.Background(), tt.address)

			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantErr, got.Err)
			assert.Equal(t, got, m.Snapshot())

			switch tt.wantStatus {
			case Success:
				require.NotNil(t, got.Result)
				assert.Equal(t, tt.result, *got.Result)
				assert.Nil(t, got.Ambiguous)
			case Ambiguous:
				assert.Same(t, ambiguous, got.Ambiguous)
				assert.Nil(t, got.Result)
			default:
				assert.Nil(t, got.Result)
				assert.Nil(t, got.Ambiguous)
			}

			if blank {
				assert.Equal(t, []Status{Failed}, seen)
				mockNorm.AssertNotCalled(t, "Normalize", mock.Anything, mock.Anything)
			} else {
				assert.Equal(t, []Status{Loading, tt.wantStatus}, seen)
				mockNorm.AssertExpectations(t)
			}
		})
	}
}

// blockingNormalizer answers each address only when its channel is released.
type blockingNormalizer struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	started chan string
}

func (b *blockingNormalizer) gate(address string) chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.gates[address] == nil {
		b.gates[address] = make(chan struct{})
	}
	return b.gates[address]
}

func (b *blockingNormalizer) Normalize(_ context.Context, address string) (models.NormalizationResult, error) {
	g := b.gate(address)
	b.started <- address
	<-g
	return models.NormalizationResult{FullAddress: address}, nil
}

func TestMachine_DiscardsStaleResponse(t *testing.T) {
	norm := &blockingNormalizer{gates: map[string]chan struct{}{}, started: make(chan string, 2)}
	m := New(norm)

	firstDone := make(chan Snapshot, 1)
	go func() { firstDone <- m.Submit(context.Background(), "first") }()
	require.Equal(t, "first", <-norm.started)

	secondDone := make(chan Snapshot, 1)
	go func() { secondDone <- m.Submit(context.Background(), "second") }()
	require.Equal(t, "second", <-norm.started)

	close(norm.gate("second"))
	second := <-secondDone
	require.Equal(t, Success, second.Status)
	assert.Equal(t, "second", second.Result.FullAddress)

	close(norm.gate("first"))
	<-firstDone

	final := m.Snapshot()
	assert.Equal(t, Success, final.Status)
	assert.Equal(t, "second", final.Input)
	assert.Equal(t, "second", final.Result.FullAddress)
}

func TestMachine_ResetDiscardsInFlight(t *testing.T) {
	norm := &blockingNormalizer{gates: map[string]chan struct{}{}, started: make(chan string, 1)}
	m := New(norm)

	done := make(chan Snapshot, 1)
	go func() { done <- m.Submit(context.Background(), "slow") }()
	<-norm.started

	assert.Equal(t, Loading, m.Snapshot().Status)
	m.Reset()
	close(norm.gate("slow"))
	<-done

	assert.Equal(t, Snapshot{Status: Idle}, m.Snapshot())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "error", Failed.String())
	assert.Equal(t, "ambiguous", Ambiguous.String())
}
