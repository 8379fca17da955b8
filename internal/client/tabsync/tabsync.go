package tabsync

import (
	"context"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/vietcraft/storefront/internal/catalog"
	"github.com/vietcraft/storefront/internal/client/mirror"
	"github.com/vietcraft/storefront/internal/client/store"
	"github.com/vietcraft/storefront/internal/logging"
)

// DefaultCooldown is the minimum gap between two applied broadcasts.
// Concurrent mutating tabs re-broadcast whatever they apply, so without a
// cooldown two tabs can ping-pong the same payload indefinitely. Last
// writer wins, eventually consistent.
const DefaultCooldown = time.Second

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Applier subscribes to the broadcast channel and applies matching payloads
// to its own store.
type Applier struct {
	bc    Broadcaster
	store *store.Store
	log   logging.Logger

	mu        sync.Mutex
	cooldown  time.Duration
	lastApply time.Time

	handler Handler
}

func New(bc Broadcaster, st *store.Store, log logging.Logger) *Applier {
	a := &Applier{bc: bc, store: st, log: log, cooldown: DefaultCooldown}
	a.handler = a.onEvent
	return a
}

// SetCooldown overrides the apply cooldown (tests use short values).
func (a *Applier) SetCooldown(d time.Duration) {
	a.mu.Lock()
	a.cooldown = d
	a.mu.Unlock()
}

// Start subscribes to the channel.
func (a *Applier) Start() error {
	return a.bc.Subscribe(a.handler)
}

// Stop unsubscribes; pending events are dropped.
func (a *Applier) Stop() {
	if err := a.bc.Unsubscribe(a.handler); err != nil {
		a.log.Warn(context.Background(), "tabsync unsubscribe failed", "err", err)
	}
}

// Announce publishes the snapshot to sibling contexts. Called after the
// local mirror has persisted it.
func (a *Applier) Announce(s catalog.Snapshot) {
	payload, err := json.Marshal(s)
	if err != nil {
		a.log.Error(context.Background(), "tabsync marshal failed", "err", err)
		return
	}
	a.bc.Publish(mirror.PrimaryKey, payload)
}

func (a *Applier) onEvent(key string, payload []byte) {
	ctx := context.Background()

	if key != mirror.PrimaryKey {
		return
	}

	a.mu.Lock()
	if time.Since(a.lastApply) < a.cooldown {
		a.mu.Unlock()
		a.log.Debug(ctx, "tabsync apply skipped, cooling down", "key", key)
		return
	}
	a.lastApply = time.Now()
	a.mu.Unlock()

	var s catalog.Snapshot
	if err := json.Unmarshal(payload, &s); err != nil {
		a.log.Warn(ctx, "tabsync payload corrupt, ignoring", "key", key, "err", err)
		return
	}

	a.store.ReplaceAll(s)
	a.log.Debug(ctx, "tabsync applied sibling snapshot", "key", key)
}
