// Package pricing picks the currency-specific price for a selected product
// configuration and formats amounts for display. Each supported language
// maps to one currency: "en" to USD and "vi" to VND.
package pricing

import (
	"context"
	"math"

	"github.com/vietcraft/storefront/internal/catalog"
	"github.com/vietcraft/storefront/internal/logging"
)

// Selection maps an option ID to the index of the chosen value in that
// option's ordered value list.
type Selection map[string]int

// noPrice marks "no qualifying localized price found". It never leaves this
// package.
const noPrice = math.MaxFloat64

type Resolver struct {
	log logging.Logger
}

func NewResolver(log logging.Logger) *Resolver {
	return &Resolver{log: log}
}

// Resolve returns the price for the selected configuration in lang.
//
// Without options or without a selection the legacy flat product price is
// returned (zero when absent). Otherwise options are walked in order and
// the first selected value that carries a usable localized price for lang
// wins; the admin UI keeps one "active" axis at a time, the remaining axes
// are informational. A selected value lacking a localized price is never
// priced at zero: it is skipped with a warning and the legacy flat price
// serves as the whole-product fallback.
func (r *Resolver) Resolve(ctx context.Context, p *catalog.Product, sel Selection, lang string) float64 {
	if len(p.Options) == 0 || len(sel) == 0 {
		return p.Price
	}

	for i := range p.Options {
		opt := &p.Options[i]
		idx, ok := sel[opt.ID]
		if !ok {
			continue
		}
		if idx < 0 || idx >= len(opt.Values) {
			r.log.Warn(ctx, "selection index out of range",
				"product", p.Slug, "option", opt.ID, "index", idx)
			continue
		}
		if price, ok := localizedPrice(&opt.Values[idx], lang); ok {
			return price
		}
		r.log.Warn(ctx, "selected value has no localized price",
			"product", p.Slug, "option", opt.ID, "lang", lang)
	}

	return p.Price
}

// Lowest returns the minimum qualifying localized price for lang across
// every value of every option, used for "from ..." price tags. Values
// without a valid, finite, positive localized price are excluded. When no
// value qualifies the legacy flat product price is returned; the internal
// sentinel is never handed to callers.
func (r *Resolver) Lowest(ctx context.Context, p *catalog.Product, lang string) float64 {
	min := float64(noPrice)

	for i := range p.Options {
		for j := range p.Options[i].Values {
			price, ok := localizedPrice(&p.Options[i].Values[j], lang)
			if !ok {
				continue
			}
			if price < min {
				min = price
			}
		}
	}

	if min == noPrice {
		if len(p.Options) > 0 {
			r.log.Warn(ctx, "no localized price for language, using flat fallback",
				"product", p.Slug, "lang", lang)
		}
		return p.Price
	}
	return min
}

// localizedPrice reports the value's price for lang. Zero, negative and
// non-finite amounts do not qualify.
func localizedPrice(v *catalog.OptionValue, lang string) (float64, bool) {
	price, ok := v.LocalizedPrice[lang]
	if !ok {
		return 0, false
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, false
	}
	return price, true
}
