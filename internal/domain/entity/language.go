package entity

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// rtlLanguages is the fixed set of right-to-left primary subtags.
// Every language not listed here renders left-to-right.
var rtlLanguages = map[string]struct{}{
	"ar": {},
	"fa": {},
	"he": {},
	"ur": {},
}

// LanguageDomain implements Domain[string] for BCP-47 language codes.
// Membership in the supported set is tested against the primary subtag
// (en-US matches a supported "en"), but the full tag is preserved on
// the resolved value for locale-aware formatting by consumers.
type LanguageDomain struct {
	supported map[string]struct{}
	order     []string
}

// NewLanguageDomain builds a language domain from the configured
// supported set. Codes are reduced to their primary subtag.
func NewLanguageDomain(supported []string) (*LanguageDomain, error) {
	if len(supported) == 0 {
		return nil, fmt.Errorf("language domain: empty supported set")
	}
	d := &LanguageDomain{supported: make(map[string]struct{}, len(supported))}
	for _, code := range supported {
		base, err := primarySubtag(code)
		if err != nil {
			return nil, fmt.Errorf("language domain: unsupported code %q: %w", code, err)
		}
		if _, dup := d.supported[base]; !dup {
			d.supported[base] = struct{}{}
			d.order = append(d.order, base)
		}
	}
	return d, nil
}

// Supported returns the supported primary subtags in configuration order.
func (d *LanguageDomain) Supported() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Kind implements Domain.
func (*LanguageDomain) Kind() Kind { return KindLanguage }

// Validate implements Domain.
func (d *LanguageDomain) Validate(value string) error {
	base, err := primarySubtag(value)
	if err != nil {
		return fmt.Errorf("language %q is malformed: %w", value, err)
	}
	if _, ok := d.supported[base]; !ok {
		return fmt.Errorf("language %q is not in the supported set", value)
	}
	return nil
}

// Normalize implements Domain. The full tag is canonicalized but not
// reduced: zh-Hans-CN stays zh-Hans-CN.
func (*LanguageDomain) Normalize(value string) string {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(value))
	}
	return tag.String()
}

// Equal implements Domain.
func (d *LanguageDomain) Equal(a, b string) bool {
	return d.Normalize(a) == d.Normalize(b)
}

// Display implements Domain. It returns the language's autonym
// (display name in the language itself), falling back to the code.
func (d *LanguageDomain) Display(value string) string {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return value
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return tag.String()
}

// Encode implements Domain.
func (d *LanguageDomain) Encode(value string) string {
	return d.Normalize(value)
}

// Decode implements Domain.
func (d *LanguageDomain) Decode(raw string) (string, error) {
	if err := d.Validate(raw); err != nil {
		return "", err
	}
	return d.Normalize(raw), nil
}

// Accepts implements Domain. Host and persisted language candidates
// need at least medium confidence so that a malformed two-letter guess
// cannot silently override an explicit stored choice.
func (*LanguageDomain) Accepts(src Source, conf Confidence) bool {
	if src == SourceHostApp || src == SourcePersisted {
		return conf >= ConfidenceMedium
	}
	return true
}

// IsRTL reports whether the language renders right-to-left.
func IsRTL(code string) bool {
	base, err := primarySubtag(code)
	if err != nil {
		return false
	}
	_, ok := rtlLanguages[base]
	return ok
}

// Direction returns the text direction marker for the language.
func Direction(code string) string {
	if IsRTL(code) {
		return "rtl"
	}
	return "ltr"
}

// primarySubtag extracts the lowercase primary language subtag from a
// possibly region- or script-qualified code.
func primarySubtag(code string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return "", err
	}
	base, _ := tag.Base()
	return strings.ToLower(base.String()), nil
}
