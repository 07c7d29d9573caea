package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocale(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"ru_RU.UTF-8", "ru-RU"},
		{"en_US", "en-US"},
		{"de_DE@euro", "de-DE"},
		{"fr", "fr"},
		{"  en_GB.UTF-8 ", "en-GB"},
		{"C", ""},
		{"POSIX", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeLocale(tt.raw), "raw %q", tt.raw)
	}
}

func TestLocalesPrecedenceAndDedup(t *testing.T) {
	t.Setenv("LC_ALL", "ru_RU.UTF-8")
	t.Setenv("LC_MESSAGES", "ru_RU.UTF-8")
	t.Setenv("LANG", "en_US.UTF-8")

	p := NewProbe()
	assert.Equal(t, []string{"ru-RU", "en-US"}, p.Locales())
}

func TestLocalesIgnoresPosixDefaults(t *testing.T) {
	t.Setenv("LC_ALL", "C")
	t.Setenv("LC_MESSAGES", "POSIX")
	t.Setenv("LANG", "")

	p := NewProbe()
	assert.Empty(t, p.Locales())
}

func TestProbeOnChange(t *testing.T) {
	p := NewProbe()

	calls := 0
	off := p.OnChange(func() { calls++ })
	p.OnChange(func() { calls += 10 })

	p.Emit()
	assert.Equal(t, 11, calls)

	off()
	p.Emit()
	assert.Equal(t, 21, calls)
}

func TestSupportsEnvInsets(t *testing.T) {
	assert.False(t, NewProbe().SupportsEnvInsets())
}
