package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr error
	}{
		{name: "simple", slug: "ca-phe-sua"},
		{name: "digits", slug: "blend-no2"},
		{name: "single word", slug: "espresso"},
		{name: "empty", slug: "", wantErr: ErrSlugRequired},
		{name: "whitespace only", slug: "   ", wantErr: ErrSlugRequired},
		{name: "uppercase", slug: "Espresso", wantErr: ErrSlugInvalid},
		{name: "spaces", slug: "ca phe", wantErr: ErrSlugInvalid},
		{name: "leading hyphen", slug: "-espresso", wantErr: ErrSlugInvalid},
		{name: "unicode", slug: "cà-phê", wantErr: ErrSlugInvalid},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlug(tt.slug)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSlugTaken(t *testing.T) {
	products := []Product{
		{ID: "p1", Slug: "espresso"},
		{ID: "p2", Slug: "latte"},
	}

	assert.True(t, SlugTaken(products, "espresso", "p2"), "another product owns the slug")
	assert.False(t, SlugTaken(products, "espresso", "p1"), "a product keeps its own slug")
	assert.False(t, SlugTaken(products, "mocha", ""), "unused slug is free")
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "vietnamese-iced-coffee", Slugify("Vietnamese Iced Coffee"))
	assert.Equal(t, "blend-no-2", Slugify("  Blend No. 2 "))
	assert.Equal(t, "", Slugify("日本語"))
}

func TestSortProducts_StableTiebreak(t *testing.T) {
	products := []Product{
		{ID: "c", Slug: "c-slug", SortOrder: 2},
		{ID: "b", Slug: "b-slug", SortOrder: 1},
		{ID: "a", Slug: "a-slug", SortOrder: 1},
	}

	SortProducts(products)

	require.Len(t, products, 3)
	assert.Equal(t, "a-slug", products[0].Slug, "duplicate sort order falls back to slug order")
	assert.Equal(t, "b-slug", products[1].Slug)
	assert.Equal(t, "c-slug", products[2].Slug)
}
