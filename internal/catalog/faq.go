package catalog

import "time"

// FAQArticle is an admin-edited help article. Content is markdown; rendering
// is an external concern. Articles are soft-deleted by removal from the
// collection, there are no tombstones.
type FAQArticle struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	LocalizedTitle   map[string]string `json:"localizedTitle,omitempty"`
	IsLocalized      bool              `json:"isLocalized,omitempty"`
	Content          string            `json:"content"`
	LocalizedContent map[string]string `json:"localizedContent,omitempty"`
	Category         string            `json:"category,omitempty"`
	Slug             string            `json:"slug,omitempty"`
	Tags             []string          `json:"tags,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// TitleIn returns the article title for lang when the article is localized,
// falling back to the flat title.
func (a *FAQArticle) TitleIn(lang string) string {
	if a.IsLocalized {
		if v, ok := a.LocalizedTitle[lang]; ok && v != "" {
			return v
		}
	}
	return a.Title
}

// ContentIn returns the article body for lang when the article is localized,
// falling back to the flat content.
func (a *FAQArticle) ContentIn(lang string) string {
	if a.IsLocalized {
		if v, ok := a.LocalizedContent[lang]; ok && v != "" {
			return v
		}
	}
	return a.Content
}
