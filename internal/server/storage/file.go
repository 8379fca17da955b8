package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/vietcraft/storefront/internal/catalog"
	"github.com/vietcraft/storefront/internal/logging"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FileStore keeps the canonical snapshot as a JSON file inside a data
// directory, alongside timestamped backup copies.
type FileStore struct {
	dir  string
	keep int
	log  logging.Logger

	// serializes writers; readers go through the atomic rename
	mu sync.Mutex
}

var _ SnapshotStore = (*FileStore)(nil)

// NewFileStore creates the data directory if needed. keep <= 0 falls back
// to DefaultBackupKeep.
func NewFileStore(dir string, keep int, log logging.Logger) (*FileStore, error) {
	if keep <= 0 {
		keep = DefaultBackupKeep
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &FileStore{dir: dir, keep: keep, log: log}, nil
}

// Read returns the canonical snapshot. A missing or corrupt file yields the
// default snapshot, never an error: the storefront must come up even when
// the data directory is empty or damaged.
func (f *FileStore) Read(ctx context.Context) (catalog.Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, canonicalName))
	if err != nil {
		if !os.IsNotExist(err) {
			f.log.Warn(ctx, "canonical snapshot unreadable, serving defaults", "err", err)
		}
		return catalog.DefaultSnapshot(), nil
	}

	var snap catalog.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		f.log.Warn(ctx, "canonical snapshot corrupt, serving defaults", "err", err)
		return catalog.DefaultSnapshot(), nil
	}
	return snap, nil
}

// Write persists snap as the canonical document and rotates backups.
// The canonical file is replaced atomically (temp file + rename) so a
// concurrent Read observes either the old or the new document, never a
// partial one. Backup failures are logged but do not fail the write.
func (f *FileStore) Write(ctx context.Context, snap catalog.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, canonicalName+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(f.dir, canonicalName)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing canonical snapshot: %w", err)
	}

	backup := fmt.Sprintf("%s%d%s", backupPrefix, time.Now().UnixMilli(), backupSuffix)
	if err := os.WriteFile(filepath.Join(f.dir, backup), data, 0o644); err != nil {
		f.log.Warn(ctx, "backup write failed", "err", err)
		return nil
	}
	if err := f.rotateBackups(); err != nil {
		f.log.Warn(ctx, "backup rotation failed", "err", err)
	}
	return nil
}

// rotateBackups deletes the oldest backups beyond the retention bound. The
// millisecond timestamps embedded in the names are fixed-width for any
// realistic clock, so a descending name sort is a descending age sort.
func (f *FileStore) rotateBackups() error {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return err
	}

	var backups []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && strings.HasPrefix(name, backupPrefix) && strings.HasSuffix(name, backupSuffix) {
			backups = append(backups, name)
		}
	}
	if len(backups) <= f.keep {
		return nil
	}

	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	for _, name := range backups[f.keep:] {
		if err := os.Remove(filepath.Join(f.dir, name)); err != nil {
			return err
		}
	}
	return nil
}
