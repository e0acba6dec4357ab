package autofill

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"jusho-client/internal/apierror"
	"jusho-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostalLookup is a mock implementation of the PostalLookup interface
type MockPostalLookup struct {
	mock.Mock
}

func (m *MockPostalLookup) Postal(ctx context.Context, code string) (models.PostalResult, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(models.PostalResult), args.Error(1)
}

type fakeField struct {
	mu     sync.Mutex
	value  string
	events []string
}

func (f *fakeField) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

func (f *fakeField) SetValue(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = v
}

func (f *fakeField) Emit(event string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeField) Events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

type fakeSelect struct {
	fakeField
	options []Option
	chosen  int
}

func (s *fakeSelect) Options() []Option { return s.options }

func (s *fakeSelect) Choose(i int) {
	s.chosen = i
	s.SetValue(s.options[i].Value)
}

type fakeForm map[string]Field

func (f fakeForm) Field(name string) (Field, bool) {
	field, ok := f[name]
	return field, ok
}

var shibuya = models.PostalResult{
	PostalCode: "1500002",
	Address:    models.AddressInfo{Full: "東京都渋谷区渋谷", Pref: "東京都", City: "渋谷区", Town: "渋谷"},
	Codes:      models.CodesInfo{PostCode: "1500002"},
}

func TestExtractPostalCode(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "150-0002", want: "1500002", wantOK: true},
		{in: "1500002", want: "1500002", wantOK: true},
		{in: "１５０００２", want: "", wantOK: false},
		{in: "１５００００２", want: "1500002", wantOK: true},
		{in: " 150 0002　", want: "1500002", wantOK: true},
		{in: "１５０－０００２", want: "1500002", wantOK: true},
		{in: "150ー0002", want: "1500002", wantOK: true},
		{in: "150-00", wantOK: false},
		{in: "15000021", wantOK: false},
		{in: "abc-defg", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ExtractPostalCode(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFill(t *testing.T) {
	pref := &fakeSelect{options: []Option{{Text: "北海道", Value: "01"}, {Text: "東京都", Value: "13"}}, chosen: -1}
	city := &fakeField{}
	address := &fakeField{}
	form := fakeForm{FieldPref: pref, FieldCity: city, FieldAddress: address}

	Fill(form, resolve("1500002", shibuya))

	assert.Equal(t, 1, pref.chosen)
	assert.Equal(t, "13", pref.Value())
	assert.Equal(t, "渋谷区", city.Value())
	assert.Equal(t, "東京都渋谷区渋谷", address.Value())
	for _, f := range []*fakeField{&pref.fakeField, city, address} {
		assert.Equal(t, []string{EventInput, EventChange}, f.Events())
	}
}

func TestResolve_Fallbacks(t *testing.T) {
	got := resolve("1000001", models.PostalResult{Address: models.AddressInfo{Pref: "東京都", City: "千代田区", Town: "千代田"}})

	assert.Equal(t, Resolved{
		PostCode:    "1000001",
		Pref:        "東京都",
		City:        "千代田区",
		Town:        "千代田",
		Address:     "東京都千代田区千代田",
		FullAddress: "東京都千代田区千代田",
	}, got)
}

func TestWidget_DebouncedLookup(t *testing.T) {
	lookup := new(MockPostalLookup)
	lookup.On("Postal", mock.Anything, "1500002").Return(shibuya, nil).Once()

	resolved := make(chan Resolved, 1)
	w := New(lookup, Options{
		Debounce:  20 * time.Millisecond,
		OnResolve: func(r Resolved) { resolved <- r },
	})

	postal := &fakeField{}
	town := &fakeField{}
	form := fakeForm{FieldPostal: postal, FieldTown: town}

	bindings := w.Initialize(form, fakeForm{})
	require.Len(t, bindings, 1)
	assert.Equal(t, 1, w.Len())

	for _, v := range []string{"1", "15", "150-", "150-0002"} {
		postal.SetValue(v)
		bindings[0].HandleInput()
	}

	select {
	case r := <-resolved:
		assert.Equal(t, "1500002", r.PostCode)
	case <-time.After(time.Second):
		t.Fatal("lookup never resolved")
	}

	assert.Equal(t, "渋谷", town.Value())
	lookup.AssertExpectations(t)
}

func TestWidget_LookupError(t *testing.T) {
	lookup := new(MockPostalLookup)
	notFound := apierror.Classify(404, nil, []byte(`{"detail":"Postal code not found"}`))
	lookup.On("Postal", mock.Anything, "9999999").Return(models.PostalResult{}, notFound)

	errs := make(chan error, 1)
	w := New(lookup, Options{Debounce: 5 * time.Millisecond, OnError: func(err error) { errs <- err }})

	postal := &fakeField{value: "999-9999"}
	b := w.Attach(postal, fakeForm{})
	b.HandleInput()

	select {
	case err := <-errs:
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.True(t, apierror.IsNotFound(err))
	case <-time.After(time.Second):
		t.Fatal("error callback never called")
	}
}

func TestWidget_IgnoresIncompleteCode(t *testing.T) {
	lookup := new(MockPostalLookup)
	w := New(lookup, Options{Debounce: 5 * time.Millisecond})

	postal := &fakeField{value: "150-00"}
	w.Attach(postal, fakeForm{}).HandleInput()

	time.Sleep(30 * time.Millisecond)
	lookup.AssertNotCalled(t, "Postal", mock.Anything, mock.Anything)
}

func TestWidget_Detach(t *testing.T) {
	lookup := new(MockPostalLookup)
	w := New(lookup, Options{Debounce: 20 * time.Millisecond})
	assert.Equal(t, DefaultDebounce, New(lookup, Options{}).opts.Debounce)

	postal := &fakeField{value: "1500002"}
	b := w.Attach(postal, fakeForm{})
	w.Attach(&fakeField{}, fakeForm{})
	require.Equal(t, 2, w.Len())

	b.HandleInput()
	b.Detach()
	b.Detach()
	assert.Equal(t, 1, w.Len())

	w.DetachAll()
	assert.Equal(t, 0, w.Len())

	time.Sleep(50 * time.Millisecond)
	lookup.AssertNotCalled(t, "Postal", mock.Anything, mock.Anything)
}
