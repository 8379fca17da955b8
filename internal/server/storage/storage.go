// Package storage provides snapshot persistence backends for the storefront
// server. The canonical snapshot is one JSON document; every successful
// write also rotates a bounded set of timestamped backups.
package storage

import (
	"context"

	"github.com/vietcraft/storefront/internal/catalog"
)

// SnapshotStore reads and writes the canonical storefront snapshot.
//
// Read never fails on a missing or unreadable document: it returns defaults
// so a fresh deployment serves a working storefront immediately. Write is
// atomic with respect to concurrent readers of the canonical document.
type SnapshotStore interface {
	Read(ctx context.Context) (catalog.Snapshot, error)
	Write(ctx context.Context, snap catalog.Snapshot) error
}

const (
	canonicalName = "store-data.json"
	backupPrefix  = "store-data-backup-"
	backupSuffix  = ".json"

	// DefaultBackupKeep bounds the rotated backup set.
	DefaultBackupKeep = 5
)
