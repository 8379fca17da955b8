// Package catalog defines the storefront entity model: products with
// configurable options, FAQ articles, the flat site configuration records,
// and the Snapshot that bundles all of it for persistence and sync.
package catalog

import (
	"encoding/json"
	"sort"

	"github.com/google/uuid"
)

// Product is one catalog entry. Slug must be unique among products; the
// reactive store rejects saves that would collide.
type Product struct {
	ID                   string             `json:"id"`
	Slug                 string             `json:"slug"`
	Name                 string             `json:"name"`
	LocalizedName        map[string]string  `json:"localizedName,omitempty"`
	Description          string             `json:"description,omitempty"`
	LocalizedDescription map[string]string  `json:"localizedDescription,omitempty"`
	Image                string             `json:"image,omitempty"`
	Category             string             `json:"category,omitempty"`
	LocalizedCategory    map[string]string  `json:"localizedCategory,omitempty"`
	Price                float64            `json:"price,omitempty"`
	SortOrder            int                `json:"sortOrder"`
	Options              []ProductOption    `json:"options,omitempty"`
	RelatedFAQIDs        []string           `json:"relatedFaqIds,omitempty"`
	Tags                 []string           `json:"tags,omitempty"`
}

// ProductOption is one configurable axis of a product, e.g. "Duration".
// Only "select" semantics are exercised by the storefront.
type ProductOption struct {
	ID            string            `json:"id"`
	Name          string            `json:"name,omitempty"`
	LocalizedName map[string]string `json:"localizedName,omitempty"`
	Type          string            `json:"type,omitempty"`
	Values        []OptionValue     `json:"values"`
}

// OptionValue is one selectable value of an option. Value and Price are the
// legacy flat fields; LocalizedValue and LocalizedPrice carry the
// per-language display string and the currency-specific amount. Price is
// currency-ambiguous and serves only as a whole-product fallback.
type OptionValue struct {
	Value          string             `json:"value,omitempty"`
	Price          float64            `json:"price,omitempty"`
	LocalizedValue map[string]string  `json:"localizedValue,omitempty"`
	LocalizedPrice map[string]float64 `json:"localizedPrice,omitempty"`
	Description    string             `json:"description,omitempty"`
}

// UnmarshalJSON decodes an option value with a loosely-typed localizedPrice
// map. Stored documents from older admin builds carry prices as strings
// ("250000") and occasional nulls; those are coerced or dropped instead of
// failing the whole document.
func (v *OptionValue) UnmarshalJSON(data []byte) error {
	type alias OptionValue
	aux := struct {
		*alias
		LocalizedPrice map[string]any `json:"localizedPrice"`
	}{alias: (*alias)(v)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	v.LocalizedPrice = NormalizeLocalizedPrices(aux.LocalizedPrice)
	return nil
}

// NewID mints an opaque stable identifier for a new entity.
func NewID() string {
	return uuid.NewString()
}

// NameIn returns the product name for lang, falling back to the flat name.
func (p *Product) NameIn(lang string) string {
	if v, ok := p.LocalizedName[lang]; ok && v != "" {
		return v
	}
	return p.Name
}

// DescriptionIn returns the localized description, falling back to the flat one.
func (p *Product) DescriptionIn(lang string) string {
	if v, ok := p.LocalizedDescription[lang]; ok && v != "" {
		return v
	}
	return p.Description
}

// CategoryIn returns the localized category, falling back to the flat one.
func (p *Product) CategoryIn(lang string) string {
	if v, ok := p.LocalizedCategory[lang]; ok && v != "" {
		return v
	}
	return p.Category
}

// NameIn returns the option name for lang, falling back to the legacy name.
func (o *ProductOption) NameIn(lang string) string {
	if v, ok := o.LocalizedName[lang]; ok && v != "" {
		return v
	}
	return o.Name
}

// ValueIn returns the display string for lang, falling back to the legacy value.
func (v *OptionValue) ValueIn(lang string) string {
	if s, ok := v.LocalizedValue[lang]; ok && s != "" {
		return s
	}
	return v.Value
}

// SortProducts orders products for the catalog: ascending SortOrder, with a
// stable slug tiebreak so duplicate sort orders do not reshuffle between
// renders.
func SortProducts(products []Product) {
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].SortOrder != products[j].SortOrder {
			return products[i].SortOrder < products[j].SortOrder
		}
		return products[i].Slug < products[j].Slug
	})
}
