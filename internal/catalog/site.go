package catalog

// SocialLink is one entry of the site's social bar.
type SocialLink struct {
	ID       string `json:"id"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Label    string `json:"label,omitempty"`
	Icon     string `json:"icon,omitempty"`
}

// PaymentInfo holds the bank transfer details shown at checkout. The record
// is saved wholesale by the admin; QR rendering is an external concern.
type PaymentInfo struct {
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	TransferNote  string `json:"transferNote,omitempty"`
}

// SiteConfig holds the storefront-wide settings, saved wholesale.
type SiteConfig struct {
	SiteName          string            `json:"siteName"`
	LocalizedSiteName map[string]string `json:"localizedSiteName,omitempty"`
	Tagline           string            `json:"tagline,omitempty"`
	LogoURL           string            `json:"logoUrl,omitempty"`
	ContactEmail      string            `json:"contactEmail,omitempty"`
	ContactPhone      string            `json:"contactPhone,omitempty"`
	Address           string            `json:"address,omitempty"`
	MetaDescription   string            `json:"metaDescription,omitempty"`
}
