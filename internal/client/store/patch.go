package store

import "github.com/vietcraft/storefront/internal/catalog"

// ProductPatch is a partial product update: nil fields leave the existing
// value untouched, non-nil fields replace it wholesale.
type ProductPatch struct {
	Slug                 *string
	Name                 *string
	LocalizedName        map[string]string
	Description          *string
	LocalizedDescription map[string]string
	Image                *string
	Category             *string
	LocalizedCategory    map[string]string
	Price                *float64
	SortOrder            *int
	Options              []catalog.ProductOption
	RelatedFAQIDs        []string
	Tags                 []string
}

func (p ProductPatch) apply(dst *catalog.Product) {
	if p.Slug != nil {
		dst.Slug = *p.Slug
	}
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.LocalizedName != nil {
		dst.LocalizedName = p.LocalizedName
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.LocalizedDescription != nil {
		dst.LocalizedDescription = p.LocalizedDescription
	}
	if p.Image != nil {
		dst.Image = *p.Image
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.LocalizedCategory != nil {
		dst.LocalizedCategory = p.LocalizedCategory
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.SortOrder != nil {
		dst.SortOrder = *p.SortOrder
	}
	if p.Options != nil {
		dst.Options = p.Options
	}
	if p.RelatedFAQIDs != nil {
		dst.RelatedFAQIDs = p.RelatedFAQIDs
	}
	if p.Tags != nil {
		dst.Tags = p.Tags
	}
}

// FAQPatch is a partial FAQ article update with the same nil semantics as
// ProductPatch. UpdatedAt is maintained by the store.
type FAQPatch struct {
	Title            *string
	LocalizedTitle   map[string]string
	IsLocalized      *bool
	Content          *string
	LocalizedContent map[string]string
	Category         *string
	Slug             *string
	Tags             []string
}

func (p FAQPatch) apply(dst *catalog.FAQArticle) {
	if p.Title != nil {
		dst.Title = *p.Title
	}
	if p.LocalizedTitle != nil {
		dst.LocalizedTitle = p.LocalizedTitle
	}
	if p.IsLocalized != nil {
		dst.IsLocalized = *p.IsLocalized
	}
	if p.Content != nil {
		dst.Content = *p.Content
	}
	if p.LocalizedContent != nil {
		dst.LocalizedContent = p.LocalizedContent
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Slug != nil {
		dst.Slug = *p.Slug
	}
	if p.Tags != nil {
		dst.Tags = p.Tags
	}
}
