package catalog

// DataVersion is the version of the snapshot format and default dataset.
// A client whose cached snapshot carries a different version must discard
// its local mirror and re-pull from the server.
const DataVersion = 2

// Snapshot is the full serializable state of the storefront at a point in
// time: the unit of persistence, sync and backup. The reactive store owns
// the live objects; a Snapshot only ever holds copies.
type Snapshot struct {
	DataVersion int          `json:"dataVersion"`
	Language    string       `json:"language"`
	Theme       string       `json:"theme"`
	Products    []Product    `json:"products"`
	FAQArticles []FAQArticle `json:"faqArticles"`
	SocialLinks []SocialLink `json:"socialLinks"`
	PaymentInfo PaymentInfo  `json:"paymentInfo"`
	SiteConfig  SiteConfig   `json:"siteConfig"`
	TOSContent  string       `json:"tosContent,omitempty"`
}

// DefaultSnapshot returns the built-in dataset served before anything has
// been persisted. The literals here are the documented server defaults.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		DataVersion: DataVersion,
		Language:    "vi",
		Theme:       "light",
		Products:    []Product{},
		FAQArticles: []FAQArticle{},
		SocialLinks: []SocialLink{},
		PaymentInfo: PaymentInfo{
			BankName:      "Vietcombank",
			AccountName:   "VIETCRAFT STORE",
			AccountNumber: "0000000000",
			TransferNote:  "don hang",
		},
		SiteConfig: SiteConfig{
			SiteName: "Vietcraft Store",
			LocalizedSiteName: map[string]string{
				"en": "Vietcraft Store",
				"vi": "Cua hang Vietcraft",
			},
			Tagline: "Handcrafted goods, made to order",
		},
	}
}

// Clone returns a deep copy of the snapshot so callers can hand it out
// without sharing slices or maps with the store's live state.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Products = CloneProducts(s.Products)
	out.FAQArticles = CloneFAQArticles(s.FAQArticles)
	out.SocialLinks = append([]SocialLink(nil), s.SocialLinks...)
	out.SiteConfig.LocalizedSiteName = cloneStringMap(s.SiteConfig.LocalizedSiteName)
	return out
}

// CloneProducts deep-copies a product list including nested options.
func CloneProducts(products []Product) []Product {
	if products == nil {
		return nil
	}
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = CloneProduct(p)
	}
	return out
}

// CloneProduct deep-copies one product.
func CloneProduct(p Product) Product {
	out := p
	out.LocalizedName = cloneStringMap(p.LocalizedName)
	out.LocalizedDescription = cloneStringMap(p.LocalizedDescription)
	out.LocalizedCategory = cloneStringMap(p.LocalizedCategory)
	out.RelatedFAQIDs = append([]string(nil), p.RelatedFAQIDs...)
	out.Tags = append([]string(nil), p.Tags...)
	if p.Options != nil {
		out.Options = make([]ProductOption, len(p.Options))
		for i, o := range p.Options {
			opt := o
			opt.LocalizedName = cloneStringMap(o.LocalizedName)
			if o.Values != nil {
				opt.Values = make([]OptionValue, len(o.Values))
				for j, v := range o.Values {
					val := v
					val.LocalizedValue = cloneStringMap(v.LocalizedValue)
					val.LocalizedPrice = cloneFloatMap(v.LocalizedPrice)
					opt.Values[j] = val
				}
			}
			out.Options[i] = opt
		}
	}
	return out
}

// CloneFAQArticles deep-copies a FAQ article list.
func CloneFAQArticles(articles []FAQArticle) []FAQArticle {
	if articles == nil {
		return nil
	}
	out := make([]FAQArticle, len(articles))
	for i, a := range articles {
		c := a
		c.LocalizedTitle = cloneStringMap(a.LocalizedTitle)
		c.LocalizedContent = cloneStringMap(a.LocalizedContent)
		c.Tags = append([]string(nil), a.Tags...)
		out[i] = c
	}
	return out
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneFloatMap(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
