package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Linen Shirt":         "linen-shirt",
		"  Wool / Cashmere  ": "wool-cashmere",
		"T-Shirt 2.0":         "t-shirt-2-0",
		"---":                 "",
		"Überhemd":            "überhemd",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), input)
	}
}

func TestMakeSKU(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000")
	sku := MakeSKU(id)

	assert.Equal(t, "W-A1B2C3D4", sku)
	assert.Equal(t, sku, MakeSKU(id), "sku must be stable for the same id")
}

func TestUniqueSlug(t *testing.T) {
	id := uuid.New()
	slug := uniqueSlug("linen-shirt", id)

	assert.True(t, strings.HasPrefix(slug, "linen-shirt-"))
	assert.Len(t, slug, len("linen-shirt-")+8)
}
