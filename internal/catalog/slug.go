package catalog

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrSlugRequired = errors.New("slug is required")
	ErrSlugInvalid  = errors.New("slug must be lowercase letters, digits and hyphens")
	ErrSlugTaken    = errors.New("slug already in use by another product")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateSlug checks that slug is present and URL-safe.
func ValidateSlug(slug string) error {
	if strings.TrimSpace(slug) == "" {
		return ErrSlugRequired
	}
	if !slugPattern.MatchString(slug) {
		return ErrSlugInvalid
	}
	return nil
}

// SlugTaken reports whether slug is used by a product other than selfID.
func SlugTaken(products []Product, slug, selfID string) bool {
	for i := range products {
		if products[i].ID != selfID && products[i].Slug == slug {
			return true
		}
	}
	return false
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a display name. Non-ASCII characters
// are dropped, so names in the localized language should provide an explicit
// slug instead.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
