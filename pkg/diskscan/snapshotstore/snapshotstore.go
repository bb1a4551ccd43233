// Package snapshotstore persists a compact summary of a finalized
// ScanSnapshot keyed by root path, and computes per-path size deltas
// against the most recently stored snapshot for the same root. It adapts
// the teacher's Badger-backed pkg/sweep/cache store to the scanning
// engine's parentless ScanNode tree: diffing walks a path map, never a
// parent pointer, so spec's "no back-references" invariant holds for
// stored snapshots too.
package snapshotstore

import (
	"bytes"
	"encoding/gob"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/mdemirhan/dux/pkg/diskscan/types"
)

// ErrNotFound is returned when no snapshot is stored for a root path.
var ErrNotFound = errors.New("snapshotstore: snapshot not found")

// Entry is one path's recorded size at the time of a scan.
type Entry struct {
	SizeBytes int64
	DiskUsage int64
	IsDir     bool
}

// Snapshot is the compact, persisted form of a ScanSnapshot: every node's
// path, size, and disk usage, keyed by path rather than nested in a tree.
type Snapshot struct {
	RunID    string
	RootPath string
	ScanTime time.Time
	Entries  map[string]Entry
}

// encode serializes the snapshot using gob, matching the teacher's
// CachedEntry encoding.
func (s *Snapshot) encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Snapshot) decode(data []byte) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(s)
}

// BuildSnapshot flattens a finalized ScanSnapshot's tree into a path-keyed
// Snapshot, ready to persist.
func BuildSnapshot(scan *types.ScanSnapshot, rootPath string) *Snapshot {
	entries := make(map[string]Entry)
	var visit func(node *types.ScanNode)
	visit = func(node *types.ScanNode) {
		entries[node.Path] = Entry{
			SizeBytes: node.SizeBytes,
			DiskUsage: node.DiskUsage,
			IsDir:     node.IsDir(),
		}
		for _, child := range node.Children {
			visit(child)
		}
	}
	visit(scan.Root)

	return &Snapshot{
		RunID:    uuid.NewString(),
		RootPath: rootPath,
		ScanTime: time.Now(),
		Entries:  entries,
	}
}

// Store wraps Badger for snapshot persistence, one key per root path
// holding that root's most recent Snapshot.
type Store struct {
	db *badger.DB
}

// Open opens or creates a snapshot store at the given filesystem path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists snap, overwriting any snapshot previously stored for the
// same root path.
func (s *Store) Save(snap *Snapshot) error {
	value, err := snap.encode()
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(snap.RootPath), value)
	})
}

// Load retrieves the most recently stored snapshot for rootPath.
func (s *Store) Load(rootPath string) (*Snapshot, error) {
	var snap Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(rootPath))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(snap.decode)
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// PathDiff is one path's size delta between two snapshots of the same
// root.
type PathDiff struct {
	Path          string
	CurrSizeBytes int64
	PrevSizeBytes int64
	SizeChange    int64
	IsNew         bool
	IsDeleted     bool
}

// Diff compares current against previous, returning one PathDiff per path
// present in either snapshot. A nil previous treats every path in current
// as new, mirroring the teacher's diff tool's behavior on a first scan.
func Diff(current, previous *Snapshot) []PathDiff {
	if previous == nil {
		diffs := make([]PathDiff, 0, len(current.Entries))
		for path, entry := range current.Entries {
			diffs = append(diffs, PathDiff{
				Path:          path,
				CurrSizeBytes: entry.SizeBytes,
				SizeChange:    entry.SizeBytes,
				IsNew:         true,
			})
		}
		return diffs
	}

	seen := make(map[string]bool, len(current.Entries))
	diffs := make([]PathDiff, 0, len(current.Entries))

	for path, curr := range current.Entries {
		seen[path] = true
		prev, existed := previous.Entries[path]
		d := PathDiff{Path: path, CurrSizeBytes: curr.SizeBytes}
		if existed {
			d.PrevSizeBytes = prev.SizeBytes
			d.SizeChange = curr.SizeBytes - prev.SizeBytes
		} else {
			d.IsNew = true
			d.SizeChange = curr.SizeBytes
		}
		diffs = append(diffs, d)
	}

	for path, prev := range previous.Entries {
		if seen[path] {
			continue
		}
		diffs = append(diffs, PathDiff{
			Path:          path,
			PrevSizeBytes: prev.SizeBytes,
			SizeChange:    -prev.SizeBytes,
			IsDeleted:     true,
		})
	}

	return diffs
}
