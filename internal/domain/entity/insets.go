package entity

import (
	"encoding/json"
	"fmt"
)

// Insets are viewport safe-area offsets in device-independent pixels.
type Insets struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// InsetsDomain implements Domain[Insets].
type InsetsDomain struct{}

// NewInsetsDomain creates the layout-insets value domain.
func NewInsetsDomain() *InsetsDomain {
	return &InsetsDomain{}
}

// Kind implements Domain.
func (*InsetsDomain) Kind() Kind { return KindInsets }

// Validate implements Domain. A candidate with any negative component
// is invalid as a whole; clamping would hide detection bugs.
func (*InsetsDomain) Validate(value Insets) error {
	if value.Top < 0 || value.Bottom < 0 || value.Left < 0 || value.Right < 0 {
		return fmt.Errorf("insets contain a negative component")
	}
	return nil
}

// Normalize implements Domain.
func (*InsetsDomain) Normalize(value Insets) Insets { return value }

// Equal implements Domain.
func (*InsetsDomain) Equal(a, b Insets) bool { return a == b }

// Display implements Domain. Inset changes fire on every resize and
// orientation flip; announcing them would spam assistive technology,
// so the empty string suppresses announcements for this kind.
func (*InsetsDomain) Display(Insets) string { return "" }

// Encode implements Domain.
func (*InsetsDomain) Encode(value Insets) string {
	raw, err := json.Marshal(value)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

// Decode implements Domain.
func (d *InsetsDomain) Decode(raw string) (Insets, error) {
	var v Insets
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Insets{}, fmt.Errorf("stored insets are malformed: %w", err)
	}
	if err := d.Validate(v); err != nil {
		return Insets{}, err
	}
	return v, nil
}

// Accepts implements Domain. Any source may supply insets.
func (*InsetsDomain) Accepts(Source, Confidence) bool { return true }
