// Package session wires the client-side pieces together: reactive store,
// local mirror, cross-tab broadcast, and server sync. One Session per
// application context ("tab"); siblings share a Broadcaster.
package session

import (
	"context"

	"github.com/vietcraft/storefront/internal/catalog"
	"github.com/vietcraft/storefront/internal/client/config"
	"github.com/vietcraft/storefront/internal/client/mirror"
	"github.com/vietcraft/storefront/internal/client/store"
	"github.com/vietcraft/storefront/internal/client/syncer"
	"github.com/vietcraft/storefront/internal/client/tabsync"
	"github.com/vietcraft/storefront/internal/logging"
)

type Session struct {
	// Store is the live state container the UI reads and mutates.
	Store *store.Store

	mirror  *mirror.Mirror
	applier *tabsync.Applier
	syncer  *syncer.Syncer
	log     logging.Logger

	unsubscribe func()
}

func New(cfg *config.Config, bc tabsync.Broadcaster, log logging.Logger) (*Session, error) {
	st := store.New(log)

	mir, err := mirror.Open(cfg.MirrorPath, log)
	if err != nil {
		return nil, err
	}

	sy := syncer.New(cfg.ServerBaseURL, st, mir, log,
		syncer.WithPushDebounce(cfg.PushDebounce),
		syncer.WithPullThrottle(cfg.PullThrottle),
	)

	ap := tabsync.New(bc, st, log)
	ap.SetCooldown(cfg.TabApplyCooldown)

	return &Session{Store: st, mirror: mir, applier: ap, syncer: sy, log: log}, nil
}

// Start hydrates the store and begins reacting to mutations.
//
// Hydration order: the server snapshot is authoritative; when the pull
// fails the mirror's primary slot is the fallback, then its backup slot.
// Only after hydration does the session subscribe, so hydrating never
// pushes back to the server. From then on every mutation persists to the
// mirror, announces to sibling tabs, and schedules a debounced push.
func (s *Session) Start(ctx context.Context) error {
	if err := s.applier.Start(); err != nil {
		return err
	}

	if err := s.syncer.Pull(ctx); err != nil {
		s.log.Warn(ctx, "server pull failed, falling back to local mirror", "err", err)
		if snap := s.mirror.Rehydrate(); snap != nil {
			s.Store.ReplaceAll(*snap)
		} else if snap := s.mirror.RehydrateBackup(); snap != nil {
			s.log.Warn(ctx, "primary mirror empty, restored from backup slot")
			s.Store.ReplaceAll(*snap)
		}
	}

	s.unsubscribe = s.Store.Subscribe(s.onChange)
	return nil
}

func (s *Session) onChange(snap catalog.Snapshot) {
	ctx := context.Background()
	if err := s.mirror.Persist(snap); err != nil {
		s.log.Error(ctx, "mirror persist failed", "err", err)
	}
	s.applier.Announce(snap)
	s.syncer.SchedulePush()
}

// OnVisible is the hook for the page regaining visibility.
func (s *Session) OnVisible(ctx context.Context) {
	if err := s.syncer.PullOnVisible(ctx); err != nil {
		s.log.Warn(ctx, "visibility pull failed", "err", err)
	}
}

// Close stops reacting to mutations and releases the mirror. A push
// already in flight is left to finish.
func (s *Session) Close() error {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.applier.Stop()
	s.syncer.Stop()
	return s.mirror.Close()
}
