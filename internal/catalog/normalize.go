package catalog

import (
	"math"

	"github.com/spf13/cast"
)

// NormalizeLocalizedPrices coerces a loosely-typed localized price map, as
// the admin UI sometimes submits it (numbers as strings, nulls), into a
// clean map. Entries that cannot be coerced to a finite number are dropped
// rather than zeroed, so a broken price never reads as "free".
func NormalizeLocalizedPrices(raw map[string]any) map[string]float64 {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]float64, len(raw))
	for lang, v := range raw {
		f, err := cast.ToFloat64E(v)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		out[lang] = f
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// NormalizeSnapshot repairs a snapshot that crossed a JSON boundary:
// collections become non-nil, entities without IDs get one, and localized
// prices that are NaN or infinite are removed. It never invents prices.
func NormalizeSnapshot(s *Snapshot) {
	if s.DataVersion == 0 {
		s.DataVersion = DataVersion
	}
	if s.Language == "" {
		s.Language = "vi"
	}
	if s.Theme == "" {
		s.Theme = "light"
	}
	if s.Products == nil {
		s.Products = []Product{}
	}
	if s.FAQArticles == nil {
		s.FAQArticles = []FAQArticle{}
	}
	if s.SocialLinks == nil {
		s.SocialLinks = []SocialLink{}
	}
	for i := range s.Products {
		normalizeProduct(&s.Products[i])
	}
	for i := range s.FAQArticles {
		if s.FAQArticles[i].ID == "" {
			s.FAQArticles[i].ID = NewID()
		}
	}
}

func normalizeProduct(p *Product) {
	if p.ID == "" {
		p.ID = NewID()
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	for i := range p.Options {
		opt := &p.Options[i]
		if opt.ID == "" {
			opt.ID = NewID()
		}
		if opt.Type == "" {
			opt.Type = "select"
		}
		for j := range opt.Values {
			dropInvalidPrices(&opt.Values[j])
		}
	}
}

func dropInvalidPrices(v *OptionValue) {
	for lang, f := range v.LocalizedPrice {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			delete(v.LocalizedPrice, lang)
		}
	}
	if len(v.LocalizedPrice) == 0 {
		v.LocalizedPrice = nil
	}
}
