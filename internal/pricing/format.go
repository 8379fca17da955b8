package pricing

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// currencyByLang pins each storefront language to its display currency.
// USD renders with two fraction digits, VND with none.
var currencyByLang = map[string]currency.Unit{
	"en": currency.USD,
	"vi": currency.MustParseISO("VND"),
}

var tagByLang = map[string]language.Tag{
	"en": language.English,
	"vi": language.Vietnamese,
}

// Format renders amount as a locale-correct currency string for lang.
// Unknown languages fall back to English/USD.
func Format(amount float64, lang string) string {
	unit, ok := currencyByLang[lang]
	if !ok {
		unit = currency.USD
	}
	tag, ok := tagByLang[lang]
	if !ok {
		tag = language.English
	}

	p := message.NewPrinter(tag)
	return p.Sprint(currency.Symbol(unit.Amount(amount)))
}
