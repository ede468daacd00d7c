package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestParseImageSize(t *testing.T) {
	assert.Equal(t, SizeSmall, ParseImageSize("small"))
	assert.Equal(t, SizeMedium, ParseImageSize("medium"))
	assert.Equal(t, SizeLarge, ParseImageSize("large"))

	// anything else falls back to medium
	assert.Equal(t, SizeMedium, ParseImageSize(""))
	assert.Equal(t, SizeMedium, ParseImageSize("original"))
}

func TestVariantSetStates(t *testing.T) {
	empty := VariantSet{}
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.IsComplete())

	full := VariantSet{
		SmallID:  strPtr("s1"),
		MediumID: strPtr("m1"),
		LargeID:  strPtr("l1"),
		Mime:     strPtr("image/png"),
	}
	assert.False(t, full.IsEmpty())
	assert.True(t, full.IsComplete())

	partial := VariantSet{SmallID: strPtr("s1")}
	assert.False(t, partial.IsEmpty())
	assert.False(t, partial.IsComplete())
}

func TestVariantSetIDFor(t *testing.T) {
	set := VariantSet{
		SmallID:  strPtr("s1"),
		MediumID: strPtr("m1"),
		LargeID:  strPtr("l1"),
		Mime:     strPtr("image/png"),
	}

	assert.Equal(t, "s1", *set.IDFor(SizeSmall))
	assert.Equal(t, "m1", *set.IDFor(SizeMedium))
	assert.Equal(t, "l1", *set.IDFor(SizeLarge))

	assert.Nil(t, VariantSet{}.IDFor(SizeSmall))
}

func TestVariantSetObjectIDs(t *testing.T) {
	assert.Empty(t, VariantSet{}.ObjectIDs())

	set := VariantSet{
		SmallID: strPtr("s1"),
		LargeID: strPtr("l1"),
	}

	assert.Equal(t, []string{"s1", "l1"}, set.ObjectIDs())
}
