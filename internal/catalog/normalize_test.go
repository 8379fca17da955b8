package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLocalizedPrices(t *testing.T) {
	raw := map[string]any{
		"en": "3.5",
		"vi": 40000,
		"fr": "not a number",
		"de": math.NaN(),
	}

	got := NormalizeLocalizedPrices(raw)

	require.NotNil(t, got)
	assert.Equal(t, 3.5, got["en"])
	assert.Equal(t, 40000.0, got["vi"])
	assert.NotContains(t, got, "fr", "uncoercible entries are dropped, not zeroed")
	assert.NotContains(t, got, "de")
}

func TestNormalizeLocalizedPrices_AllInvalid(t *testing.T) {
	got := NormalizeLocalizedPrices(map[string]any{"en": "free"})
	assert.Nil(t, got)
}

func TestNormalizeSnapshot_FillsDefaults(t *testing.T) {
	var s Snapshot
	NormalizeSnapshot(&s)

	assert.Equal(t, DataVersion, s.DataVersion)
	assert.Equal(t, "vi", s.Language)
	assert.Equal(t, "light", s.Theme)
	assert.NotNil(t, s.Products)
	assert.NotNil(t, s.FAQArticles)
	assert.NotNil(t, s.SocialLinks)
}

func TestNormalizeSnapshot_RepairsProducts(t *testing.T) {
	s := Snapshot{
		Products: []Product{
			{
				Name: "Phin Filter",
				Options: []ProductOption{
					{
						Values: []OptionValue{
							{LocalizedPrice: map[string]float64{"en": math.Inf(1), "vi": 40000}},
						},
					},
				},
			},
		},
	}

	NormalizeSnapshot(&s)

	p := s.Products[0]
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "phin-filter", p.Slug)
	require.Len(t, p.Options, 1)
	assert.NotEmpty(t, p.Options[0].ID)
	assert.Equal(t, "select", p.Options[0].Type)

	lp := p.Options[0].Values[0].LocalizedPrice
	assert.NotContains(t, lp, "en", "infinite price removed")
	assert.Equal(t, 40000.0, lp["vi"])
}

func TestSnapshot_Clone_IsDeep(t *testing.T) {
	s := DefaultSnapshot()
	s.Products = []Product{
		{
			ID:            "p1",
			Slug:          "p1",
			LocalizedName: map[string]string{"en": "one"},
			Options: []ProductOption{
				{ID: "o1", Values: []OptionValue{{LocalizedPrice: map[string]float64{"en": 3.5}}}},
			},
		},
	}

	c := s.Clone()
	c.Products[0].LocalizedName["en"] = "changed"
	c.Products[0].Options[0].Values[0].LocalizedPrice["en"] = 99

	assert.Equal(t, "one", s.Products[0].LocalizedName["en"])
	assert.Equal(t, 3.5, s.Products[0].Options[0].Values[0].LocalizedPrice["en"])
}

func TestDefaultSnapshot(t *testing.T) {
	s := DefaultSnapshot()

	assert.Equal(t, DataVersion, s.DataVersion)
	assert.Equal(t, "vi", s.Language)
	assert.Equal(t, "Vietcombank", s.PaymentInfo.BankName)
	assert.NotEmpty(t, s.SiteConfig.SiteName)
	assert.Empty(t, s.Products)
}

func TestLocalizedAccessors_FallBack(t *testing.T) {
	p := Product{
		Name:          "Robusta Beans",
		LocalizedName: map[string]string{"vi": "Cà phê Robusta"},
	}

	assert.Equal(t, "Cà phê Robusta", p.NameIn("vi"))
	assert.Equal(t, "Robusta Beans", p.NameIn("en"), "missing language falls back to flat name")

	a := FAQArticle{Title: "Shipping", IsLocalized: false, LocalizedTitle: map[string]string{"vi": "Giao hàng"}}
	assert.Equal(t, "Shipping", a.TitleIn("vi"), "non-localized article ignores the map")
	a.IsLocalized = true
	assert.Equal(t, "Giao hàng", a.TitleIn("vi"))
}
