package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsetsDomainValidate(t *testing.T) {
	dom := NewInsetsDomain()

	assert.NoError(t, dom.Validate(Insets{}))
	assert.NoError(t, dom.Validate(Insets{Top: 44, Bottom: 34}))

	// One negative component invalidates the whole reading.
	assert.Error(t, dom.Validate(Insets{Top: -1}))
	assert.Error(t, dom.Validate(Insets{Top: 44, Right: -0.5}))
}

func TestInsetsDomainCodec(t *testing.T) {
	dom := NewInsetsDomain()

	raw := dom.Encode(Insets{Top: 44, Bottom: 34, Left: 0, Right: 0})
	got, err := dom.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, Insets{Top: 44, Bottom: 34}, got)

	_, err = dom.Decode("not json")
	assert.Error(t, err)

	// Stored negatives fail re-validation on decode.
	_, err = dom.Decode(`{"top":-5,"bottom":0,"left":0,"right":0}`)
	assert.Error(t, err)
}

func TestInsetsDomainDisplaySuppressed(t *testing.T) {
	dom := NewInsetsDomain()
	assert.Empty(t, dom.Display(Insets{Top: 44}))
}
