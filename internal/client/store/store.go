// Package store implements the observable in-memory container that owns the
// live storefront state. Mutations apply synchronously, subscribers are
// notified before any persistence starts, and persistence itself is left to
// whoever subscribes — a failed write downstream never rolls back memory.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/vietcraft/storefront/internal/catalog"
	"github.com/vietcraft/storefront/internal/logging"
)

var ErrNotFound = errors.New("not found")

// Store is an explicit state-container instance: construct one per
// application root and inject it, there is no ambient global.
type Store struct {
	mu            sync.RWMutex
	snap          catalog.Snapshot
	authenticated bool

	subMu   sync.Mutex
	subs    map[int]func(catalog.Snapshot)
	nextSub int

	log logging.Logger
}

// New returns a store seeded with the built-in defaults.
func New(log logging.Logger) *Store {
	return &Store{
		snap: catalog.DefaultSnapshot(),
		subs: make(map[int]func(catalog.Snapshot)),
		log:  log,
	}
}

// Subscribe registers fn to be called synchronously after every mutation,
// with a copy of the new state. Consumers must not assume persistence has
// completed when they observe the new state. The returned function removes
// the subscription.
func (s *Store) Subscribe(fn func(catalog.Snapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// notify snapshots the current state and invokes subscribers outside the
// state lock so a subscriber may read back from the store.
func (s *Store) notify() {
	snap := s.Snapshot()

	s.subMu.Lock()
	fns := make([]func(catalog.Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() catalog.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// ReplaceAll swaps in a whole snapshot, used by server pulls and cross-tab
// applies. Subscribers are notified like for any other mutation.
func (s *Store) ReplaceAll(snap catalog.Snapshot) {
	s.mu.Lock()
	s.snap = snap.Clone()
	s.mu.Unlock()
	s.notify()
}

// --- UI scalars ---

func (s *Store) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Language
}

func (s *Store) SetLanguage(lang string) {
	s.mu.Lock()
	s.snap.Language = lang
	s.mu.Unlock()
	s.notify()
}

func (s *Store) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Theme
}

func (s *Store) SetTheme(theme string) {
	s.mu.Lock()
	s.snap.Theme = theme
	s.mu.Unlock()
	s.notify()
}

// Authenticated is the in-memory admin flag. It is deliberately not part of
// the snapshot and never persisted or synced.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

func (s *Store) SetAuthenticated(v bool) {
	s.mu.Lock()
	s.authenticated = v
	s.mu.Unlock()
}

// --- products ---

func (s *Store) Products() []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.CloneProducts(s.snap.Products)
}

func (s *Store) SetProducts(products []catalog.Product) {
	s.mu.Lock()
	s.snap.Products = catalog.CloneProducts(products)
	s.mu.Unlock()
	s.notify()
}

// AddProduct validates the slug, rejects collisions with other products,
// assigns an ID when missing, and appends. Nothing is mutated on error.
func (s *Store) AddProduct(p catalog.Product) error {
	if err := catalog.ValidateSlug(p.Slug); err != nil {
		return err
	}

	s.mu.Lock()
	if catalog.SlugTaken(s.snap.Products, p.Slug, p.ID) {
		s.mu.Unlock()
		return catalog.ErrSlugTaken
	}
	if p.ID == "" {
		p.ID = catalog.NewID()
	}
	next := make([]catalog.Product, 0, len(s.snap.Products)+1)
	next = append(next, s.snap.Products...)
	next = append(next, catalog.CloneProduct(p))
	s.snap.Products = next
	s.mu.Unlock()

	s.notify()
	return nil
}

// UpdateProduct applies a partial update to the product with the given id.
// The products slice is regenerated but untouched entries are carried over
// unchanged. A patched slug that collides with another product is rejected
// before anything is applied.
func (s *Store) UpdateProduct(id string, patch ProductPatch) error {
	s.mu.Lock()

	idx := -1
	for i := range s.snap.Products {
		if s.snap.Products[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}

	if patch.Slug != nil {
		if err := catalog.ValidateSlug(*patch.Slug); err != nil {
			s.mu.Unlock()
			return err
		}
		if catalog.SlugTaken(s.snap.Products, *patch.Slug, id) {
			s.mu.Unlock()
			return catalog.ErrSlugTaken
		}
	}

	next := make([]catalog.Product, len(s.snap.Products))
	copy(next, s.snap.Products)
	updated := catalog.CloneProduct(next[idx])
	patch.apply(&updated)
	next[idx] = updated
	s.snap.Products = next
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *Store) RemoveProduct(id string) error {
	s.mu.Lock()

	next := make([]catalog.Product, 0, len(s.snap.Products))
	found := false
	for _, p := range s.snap.Products {
		if p.ID == id {
			found = true
			continue
		}
		next = append(next, p)
	}
	if !found {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.snap.Products = next
	s.mu.Unlock()

	s.notify()
	return nil
}

// --- FAQ articles ---

func (s *Store) FAQArticles() []catalog.FAQArticle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.CloneFAQArticles(s.snap.FAQArticles)
}

func (s *Store) SetFAQArticles(articles []catalog.FAQArticle) {
	s.mu.Lock()
	s.snap.FAQArticles = catalog.CloneFAQArticles(articles)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) AddFAQArticle(a catalog.FAQArticle) {
	now := time.Now()
	if a.ID == "" {
		a.ID = catalog.NewID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	s.mu.Lock()
	next := make([]catalog.FAQArticle, 0, len(s.snap.FAQArticles)+1)
	next = append(next, s.snap.FAQArticles...)
	next = append(next, a)
	s.snap.FAQArticles = next
	s.mu.Unlock()

	s.notify()
}

func (s *Store) UpdateFAQArticle(id string, patch FAQPatch) error {
	s.mu.Lock()

	idx := -1
	for i := range s.snap.FAQArticles {
		if s.snap.FAQArticles[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}

	next := make([]catalog.FAQArticle, len(s.snap.FAQArticles))
	copy(next, s.snap.FAQArticles)
	updated := next[idx]
	patch.apply(&updated)
	updated.UpdatedAt = time.Now()
	next[idx] = updated
	s.snap.FAQArticles = next
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *Store) RemoveFAQArticle(id string) error {
	s.mu.Lock()

	next := make([]catalog.FAQArticle, 0, len(s.snap.FAQArticles))
	found := false
	for _, a := range s.snap.FAQArticles {
		if a.ID == id {
			found = true
			continue
		}
		next = append(next, a)
	}
	if !found {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.snap.FAQArticles = next
	s.mu.Unlock()

	s.notify()
	return nil
}

// --- flat config records, saved wholesale ---

func (s *Store) SocialLinks() []catalog.SocialLink {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]catalog.SocialLink(nil), s.snap.SocialLinks...)
}

func (s *Store) SetSocialLinks(links []catalog.SocialLink) {
	s.mu.Lock()
	s.snap.SocialLinks = append([]catalog.SocialLink(nil), links...)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) PaymentInfo() catalog.PaymentInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.PaymentInfo
}

func (s *Store) SetPaymentInfo(info catalog.PaymentInfo) {
	s.mu.Lock()
	s.snap.PaymentInfo = info
	s.mu.Unlock()
	s.notify()
}

func (s *Store) SiteConfig() catalog.SiteConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg := s.snap.SiteConfig
	return cfg
}

func (s *Store) SetSiteConfig(cfg catalog.SiteConfig) {
	s.mu.Lock()
	s.snap.SiteConfig = cfg
	s.mu.Unlock()
	s.notify()
}

func (s *Store) TOSContent() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.TOSContent
}

func (s *Store) SetTOSContent(content string) {
	s.mu.Lock()
	s.snap.TOSContent = content
	s.mu.Unlock()
	s.notify()
}
