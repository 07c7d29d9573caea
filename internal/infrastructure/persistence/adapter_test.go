package persistence

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grammeal/prefsync/internal/application/port"
	"github.com/grammeal/prefsync/internal/domain/entity"
)

type errorSink struct {
	mu   sync.Mutex
	errs []port.EngineError
}

func (s *errorSink) Reporter() port.Reporter {
	return func(e port.EngineError) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.errs = append(s.errs, e)
	}
}

func (s *errorSink) All() []port.EngineError {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]port.EngineError, len(s.errs))
	copy(out, s.errs)
	return out
}

func TestAdapterRoundTrip(t *testing.T) {
	sink := &errorSink{}
	a := NewAdapter(NewMemoryStore(), entity.KindTheme, sink.Reporter())

	_, ok := a.Get("preferred-theme")
	assert.False(t, ok)

	assert.True(t, a.Set("preferred-theme", "dark"))
	value, ok := a.Get("preferred-theme")
	require.True(t, ok)
	assert.Equal(t, "dark", value)

	assert.True(t, a.Remove("preferred-theme"))
	_, ok = a.Get("preferred-theme")
	assert.False(t, ok)

	assert.Empty(t, sink.All())
}

func TestAdapterNilStore(t *testing.T) {
	sink := &errorSink{}
	a := NewAdapter(nil, entity.KindTheme, sink.Reporter())

	_, ok := a.Get("preferred-theme")
	assert.False(t, ok)
	assert.False(t, a.Set("preferred-theme", "dark"))
	assert.False(t, a.Remove("preferred-theme"))

	// A missing store is a degraded mode, not an error.
	assert.Empty(t, sink.All())
}

func TestAdapterReportsRedactedFailures(t *testing.T) {
	sink := &errorSink{}
	store := NewMockStore()
	store.SetFunc = func(string, string) error {
		return errors.New("write denied: credentials for user=hunter2 expired")
	}
	a := NewAdapter(store, entity.KindLanguage, sink.Reporter())

	assert.False(t, a.Set("preferred-language", "ru"))

	errs := sink.All()
	require.Len(t, errs, 1)
	assert.Equal(t, port.ErrorStorage, errs[0].Category)
	assert.Equal(t, entity.KindLanguage, errs[0].Kind)
	assert.Equal(t, "set", errs[0].Op)
	assert.Equal(t, "key=preferred-language class=access", errs[0].Detail)
	// The raw error text never reaches the channel.
	assert.NotContains(t, errs[0].Error(), "hunter2")
}

func TestAdapterRecoversStorePanic(t *testing.T) {
	sink := &errorSink{}
	store := NewMockStore()
	store.GetFunc = func(string) (string, bool, error) { panic("store bug") }
	a := NewAdapter(store, entity.KindTheme, sink.Reporter())

	_, ok := a.Get("preferred-theme")
	assert.False(t, ok)

	errs := sink.All()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Detail, "class=panic")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "none"},
		{errPanic, "panic"},
		{errors.New("disk quota exceeded"), "quota"},
		{errors.New("database is FULL"), "quota"},
		{errors.New("permission denied"), "access"},
		{errors.New("attempt to write a readonly database"), "access"},
		{errors.New("database is locked"), "contention"},
		{errors.New("resource busy"), "contention"},
		{errors.New("sql: database is closed"), "unavailable"},
		{errors.New("no such table: preferences"), "unavailable"},
		{errors.New("something else entirely"), "io"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classify(tt.err), "error %v", tt.err)
	}
}

func TestKeysFor(t *testing.T) {
	keys := KeysFor(entity.KindInsets)
	assert.Equal(t, "preferred-insets", keys.Value)
	assert.Equal(t, "insets-source", keys.Source)
	assert.Equal(t, "insets-confidence", keys.Confidence)
}
