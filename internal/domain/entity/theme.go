package entity

import (
	"fmt"
	"strings"
)

// Theme is the color scheme preference value.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// ThemeDomain implements Domain[Theme].
type ThemeDomain struct{}

// NewThemeDomain creates the theme value domain.
func NewThemeDomain() *ThemeDomain {
	return &ThemeDomain{}
}

// Kind implements Domain.
func (*ThemeDomain) Kind() Kind { return KindTheme }

// Validate implements Domain. Accepts anything Normalize maps into the
// supported set, so a value never fails validation only to normalize
// into a member.
func (*ThemeDomain) Validate(value Theme) error {
	switch Theme(strings.ToLower(strings.TrimSpace(string(value)))) {
	case ThemeLight, ThemeDark, ThemeAuto:
		return nil
	}
	return fmt.Errorf("theme %q is not one of light, dark, auto", value)
}

// Normalize implements Domain.
func (*ThemeDomain) Normalize(value Theme) Theme {
	return Theme(strings.ToLower(strings.TrimSpace(string(value))))
}

// Equal implements Domain.
func (d *ThemeDomain) Equal(a, b Theme) bool {
	return d.Normalize(a) == d.Normalize(b)
}

// Display implements Domain.
func (d *ThemeDomain) Display(value Theme) string {
	switch d.Normalize(value) {
	case ThemeDark:
		return "Dark theme"
	case ThemeLight:
		return "Light theme"
	default:
		return "System theme"
	}
}

// Encode implements Domain.
func (d *ThemeDomain) Encode(value Theme) string {
	return string(d.Normalize(value))
}

// Decode implements Domain.
func (d *ThemeDomain) Decode(raw string) (Theme, error) {
	v := Theme(raw)
	if err := d.Validate(v); err != nil {
		return "", err
	}
	return d.Normalize(v), nil
}

// Accepts implements Domain. Any source may supply a theme.
func (*ThemeDomain) Accepts(Source, Confidence) bool { return true }
