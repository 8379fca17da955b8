// Package mirror persists the snapshot to a local bbolt file — the durable
// per-context cache that survives restarts. One versioned primary key holds
// the current snapshot; a backup slot under a second key keeps the same
// payload plus a timestamp as a second line of defense when the primary is
// corrupted or cleared.
package mirror

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	bolt "go.etcd.io/bbolt"

	"github.com/vietcraft/storefront/internal/catalog"
	"github.com/vietcraft/storefront/internal/logging"
)

const (
	bucketName = "mirror"

	// PrimaryKey is versioned: bumping the snapshot format moves to a new
	// key, stranding stale payloads instead of misreading them.
	PrimaryKey = "snapshot:v2"
	backupKey  = "snapshot:v2:backup"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type backupEnvelope struct {
	SavedAt  string           `json:"savedAt"`
	Snapshot catalog.Snapshot `json:"snapshot"`
}

type Mirror struct {
	db  *bolt.DB
	log logging.Logger
}

// Open opens (creating if needed) the mirror database at path.
func Open(path string, log logging.Logger) (*Mirror, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open mirror %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init mirror bucket: %w", err)
	}
	return &Mirror{db: db, log: log}, nil
}

func (m *Mirror) Close() error {
	return m.db.Close()
}

// Persist writes the snapshot to the primary key and refreshes the backup
// slot with a timestamped copy of the same payload.
func (m *Mirror) Persist(s catalog.Snapshot) error {
	primary, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	backup, err := json.Marshal(backupEnvelope{
		SavedAt:  time.Now().UTC().Format(time.RFC3339),
		Snapshot: s,
	})
	if err != nil {
		return fmt.Errorf("marshal backup: %w", err)
	}

	return m.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if err := b.Put([]byte(PrimaryKey), primary); err != nil {
			return err
		}
		return b.Put([]byte(backupKey), backup)
	})
}

// Rehydrate returns the snapshot stored under the primary key, or nil when
// nothing is stored or the payload does not parse. It never returns an
// error to the caller: corrupt local data is treated as "no data".
func (m *Mirror) Rehydrate() *catalog.Snapshot {
	var raw []byte
	_ = m.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketName)).Get([]byte(PrimaryKey)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if raw == nil {
		return nil
	}

	var s catalog.Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		m.log.Warn(context.Background(), "mirror payload corrupt, ignoring", "key", PrimaryKey, "err", err)
		return nil
	}
	return &s
}

// RehydrateBackup reads the backup slot, used when the primary key is
// missing or corrupt. Same nil-on-failure contract as Rehydrate.
func (m *Mirror) RehydrateBackup() *catalog.Snapshot {
	var raw []byte
	_ = m.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketName)).Get([]byte(backupKey)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if raw == nil {
		return nil
	}

	var env backupEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		m.log.Warn(context.Background(), "mirror backup corrupt, ignoring", "err", err)
		return nil
	}
	return &env.Snapshot
}

// Clear deletes the primary key. The version gate calls this when the
// server declares a different dataVersion than the cached snapshot.
func (m *Mirror) Clear() error {
	return m.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(PrimaryKey))
	})
}
