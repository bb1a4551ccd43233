package snapshotstore_test

import (
	"path/filepath"
	"testing"

	"github.com/mdemirhan/dux/pkg/diskscan/snapshotstore"
	"github.com/mdemirhan/dux/pkg/diskscan/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildScan(rootPath string, size int64) *types.ScanSnapshot {
	root := types.NewDirNode(rootPath, "root")
	f := types.NewFileNode(filepath.Join(rootPath, "a.txt"), "a.txt", size, size)
	root.Children = []*types.ScanNode{f}
	root.SizeBytes = size
	root.DiskUsage = size
	return &types.ScanSnapshot{Root: root}
}

func TestStore_SaveAndLoad(t *testing.T) {
	dbDir := t.TempDir()
	store, err := snapshotstore.Open(filepath.Join(dbDir, "db"))
	require.NoError(t, err)
	defer store.Close()

	rootPath := "/scanned/root"
	snap := snapshotstore.BuildSnapshot(buildScan(rootPath, 100), rootPath)
	require.NoError(t, store.Save(snap))

	loaded, err := store.Load(rootPath)
	require.NoError(t, err)
	assert.Equal(t, rootPath, loaded.RootPath)
	assert.Equal(t, snap.Entries, loaded.Entries)
}

func TestStore_LoadMissingReturnsErrNotFound(t *testing.T) {
	dbDir := t.TempDir()
	store, err := snapshotstore.Open(filepath.Join(dbDir, "db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load("/never/scanned")
	assert.ErrorIs(t, err, snapshotstore.ErrNotFound)
}

func TestDiff_NilPreviousMarksEverythingNew(t *testing.T) {
	rootPath := "/r"
	snap := snapshotstore.BuildSnapshot(buildScan(rootPath, 100), rootPath)

	diffs := snapshotstore.Diff(snap, nil)
	for _, d := range diffs {
		assert.True(t, d.IsNew)
	}
}

func TestDiff_DetectsGrowth(t *testing.T) {
	rootPath := "/r"
	prev := snapshotstore.BuildSnapshot(buildScan(rootPath, 100), rootPath)
	curr := snapshotstore.BuildSnapshot(buildScan(rootPath, 500), rootPath)

	diffs := snapshotstore.Diff(curr, prev)

	var rootDiff *snapshotstore.PathDiff
	for i := range diffs {
		if diffs[i].Path == rootPath {
			rootDiff = &diffs[i]
		}
	}
	require.NotNil(t, rootDiff)
	assert.Equal(t, int64(400), rootDiff.SizeChange)
	assert.False(t, rootDiff.IsNew)
}
