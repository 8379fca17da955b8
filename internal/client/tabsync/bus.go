// Package tabsync fans snapshot changes out to sibling contexts ("tabs") so
// they converge without a reload. The mechanism is a single well-defined
// event behind the Broadcaster interface; the EventBus implementation
// serves in-process siblings and can be swapped for a socket push without
// touching call sites.
package tabsync

import (
	"github.com/asaskevich/EventBus"
)

// TopicSnapshotChanged is the one event type of the channel. The payload is
// the storage key that changed plus the serialized snapshot.
const TopicSnapshotChanged = "storefront.snapshot.changed"

// Handler receives the changed storage key and the serialized snapshot.
type Handler func(key string, payload []byte)

// Broadcaster publishes and subscribes snapshot-changed notifications.
type Broadcaster interface {
	Publish(key string, payload []byte)
	Subscribe(h Handler) error
	Unsubscribe(h Handler) error
}

type busBroadcaster struct {
	bus EventBus.Bus
}

// NewBusBroadcaster returns a Broadcaster backed by an in-process event bus.
// All sessions sharing the instance see each other's writes, mimicking
// same-origin storage events between tabs.
func NewBusBroadcaster() Broadcaster {
	return &busBroadcaster{bus: EventBus.New()}
}

func (b *busBroadcaster) Publish(key string, payload []byte) {
	b.bus.Publish(TopicSnapshotChanged, key, payload)
}

func (b *busBroadcaster) Subscribe(h Handler) error {
	return b.bus.Subscribe(TopicSnapshotChanged, h)
}

func (b *busBroadcaster) Unsubscribe(h Handler) error {
	return b.bus.Unsubscribe(TopicSnapshotChanged, h)
}
