// Package syncer keeps the reactive store convergent with the server's
// canonical snapshot over the /api/store-data endpoint. Pulls hydrate the
// store on startup and when the page regains visibility; pushes mirror
// every local mutation back, debounced per burst and fire-and-forget.
package syncer

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/guonaihong/gout"
	"github.com/sethvargo/go-retry"

	"github.com/vietcraft/storefront/internal/catalog"
	"github.com/vietcraft/storefront/internal/client/mirror"
	"github.com/vietcraft/storefront/internal/client/store"
	"github.com/vietcraft/storefront/internal/logging"
)

const (
	DefaultPushDebounce = 500 * time.Millisecond
	DefaultPullThrottle = 10 * time.Second

	requestTimeout = 10 * time.Second
	endpointPath   = "/api/store-data"
)

type pushResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type Syncer struct {
	baseURL string
	store   *store.Store
	mirror  *mirror.Mirror
	log     logging.Logger

	pushDebounce time.Duration
	pullThrottle time.Duration

	mu        sync.Mutex
	pushTimer *time.Timer
	lastPull  time.Time
}

type Option func(*Syncer)

// WithPushDebounce overrides the push debounce window.
func WithPushDebounce(d time.Duration) Option {
	return func(s *Syncer) { s.pushDebounce = d }
}

// WithPullThrottle overrides the visibility pull throttle.
func WithPullThrottle(d time.Duration) Option {
	return func(s *Syncer) { s.pullThrottle = d }
}

func New(baseURL string, st *store.Store, mir *mirror.Mirror, log logging.Logger, opts ...Option) *Syncer {
	s := &Syncer{
		baseURL:      baseURL,
		store:        st,
		mirror:       mir,
		log:          log,
		pushDebounce: DefaultPushDebounce,
		pullThrottle: DefaultPullThrottle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pull fetches the canonical snapshot, runs the dataVersion gate against
// the cached mirror, and applies the result to the store. Transient
// failures are retried with exponential backoff before giving up.
func (s *Syncer) Pull(ctx context.Context) error {
	var snap catalog.Snapshot

	backoff := retry.WithMaxRetries(3, retry.NewExponential(300*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var code int
		err := gout.GET(s.baseURL + endpointPath).
			SetTimeout(requestTimeout).
			BindJSON(&snap).
			Code(&code).
			Do()
		if err != nil {
			return retry.RetryableError(err)
		}
		if code >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("server returned %d", code))
		}
		if code != http.StatusOK {
			return fmt.Errorf("server returned %d", code)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("pull snapshot: %w", err)
	}

	// Version gate: a cached snapshot from another format generation is
	// discarded outright rather than merged.
	if cached := s.mirror.Rehydrate(); cached != nil && cached.DataVersion != snap.DataVersion {
		s.log.Info(ctx, "data version changed, clearing local mirror",
			"cached", cached.DataVersion, "server", snap.DataVersion)
		if err := s.mirror.Clear(); err != nil {
			s.log.Warn(ctx, "mirror clear failed", "err", err)
		}
	}

	catalog.NormalizeSnapshot(&snap)
	s.store.ReplaceAll(snap)

	s.mu.Lock()
	s.lastPull = time.Now()
	s.mu.Unlock()

	s.log.Debug(ctx, "pulled snapshot", "dataVersion", snap.DataVersion)
	return nil
}

// PullOnVisible is the visibility-change hook: it pulls at most once per
// throttle window and silently skips otherwise.
func (s *Syncer) PullOnVisible(ctx context.Context) error {
	s.mu.Lock()
	tooSoon := time.Since(s.lastPull) < s.pullThrottle
	s.mu.Unlock()

	if tooSoon {
		s.log.Debug(ctx, "visibility pull skipped, throttled")
		return nil
	}
	return s.Pull(ctx)
}

// SchedulePush (re)arms the debounce timer; when it fires, the store's
// then-current snapshot is pushed. Callers never see push errors.
func (s *Syncer) SchedulePush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pushTimer != nil {
		s.pushTimer.Stop()
	}
	s.pushTimer = time.AfterFunc(s.pushDebounce, func() {
		s.push(context.Background())
	})
}

// Stop cancels any pending debounced push. An already in-flight push is
// not cancelled; its result is accepted whenever it lands.
func (s *Syncer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pushTimer != nil {
		s.pushTimer.Stop()
		s.pushTimer = nil
	}
}

// push sends the full current snapshot. Failures are logged and surfaced
// nowhere else: in-memory state remains the source of truth even while
// unpersisted.
func (s *Syncer) push(ctx context.Context) {
	snap := s.store.Snapshot()

	var resp pushResponse
	var code int
	err := gout.POST(s.baseURL + endpointPath).
		SetTimeout(requestTimeout).
		SetJSON(snap).
		BindJSON(&resp).
		Code(&code).
		Do()
	if err != nil {
		s.log.Error(ctx, "snapshot push failed", "err", err)
		return
	}
	if code != http.StatusOK || !resp.Success {
		s.log.Error(ctx, "snapshot push rejected", "code", code, "serverError", resp.Error)
		return
	}
	s.log.Debug(ctx, "snapshot pushed", "dataVersion", snap.DataVersion)
}
