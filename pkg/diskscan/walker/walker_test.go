package walker_test

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/mdemirhan/dux/pkg/diskscan/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestScan_RootNotFound(t *testing.T) {
	_, err := walker.Scan(filepath.Join(t.TempDir(), "missing"), walker.Options{})
	assert.ErrorIs(t, err, walker.ErrRootNotFound)
}

func TestScan_RootNotDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	writeFile(t, file, 10)

	_, err := walker.Scan(file, walker.Options{})
	assert.ErrorIs(t, err, walker.ErrRootNotDirectory)
}

func TestScan_ExpandsLeadingTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, filepath.Join(home, "project", "a.txt"), 10)

	snapshot, err := walker.Scan(filepath.Join("~", "project"), walker.Options{})
	require.NoError(t, err)
	walker.Finalize(snapshot.Root)

	assert.Equal(t, filepath.Join(home, "project"), snapshot.Root.Path)
	assert.Equal(t, int64(10), snapshot.Root.SizeBytes)
}

func TestScan_WalksTreeAndCountsStats(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "x.txt"), 100)
	writeFile(t, filepath.Join(root, "a", "y.txt"), 50)
	writeFile(t, filepath.Join(root, "b", "z.txt"), 200)

	snapshot, err := walker.Scan(root, walker.Options{WorkerCount: 4})
	require.NoError(t, err)

	walker.Finalize(snapshot.Root)

	assert.Equal(t, int64(3), snapshot.Stats.Files)
	assert.Equal(t, int64(3), snapshot.Stats.Directories) // root, a, b
	assert.Equal(t, int64(350), snapshot.Root.SizeBytes)
}

func TestScan_MaxDepthStopsDescent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "b", "deep.txt"), 10)

	depth := 1
	snapshot, err := walker.Scan(root, walker.Options{WorkerCount: 2, MaxDepth: &depth})
	require.NoError(t, err)
	walker.Finalize(snapshot.Root)

	require.Len(t, snapshot.Root.Children, 1)
	a := snapshot.Root.Children[0]
	assert.Equal(t, "a", a.Name)
	require.Len(t, a.Children, 1, "directory beyond max depth is still listed")
	b := a.Children[0]
	assert.Equal(t, "b", b.Name)
	assert.Empty(t, b.Children, "directory beyond max depth is not recursed into")
}

func TestScan_CancelStopsEarly(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 20; i++ {
		writeFile(t, filepath.Join(root, "d", string(rune('a'+i)), "f.txt"), 1)
	}

	var cancelled atomic.Bool
	cancelled.Store(true)

	_, err := walker.Scan(root, walker.Options{
		WorkerCount: 2,
		Cancel:      func() bool { return cancelled.Load() },
	})
	assert.ErrorIs(t, err, walker.ErrCancelled)
}

func TestScan_ProgressCallbackReceivesRunningTotals(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 5; i++ {
		writeFile(t, filepath.Join(root, string(rune('a'+i))+".txt"), 1)
	}

	var calls atomic.Int64
	_, err := walker.Scan(root, walker.Options{
		WorkerCount: 2,
		OnProgress: func(currentPath string, filesSeen, dirsSeen int64) {
			calls.Add(1)
		},
	})
	require.NoError(t, err)
	// Small tree: progress may never cross the 100-entry threshold, so this
	// only asserts the callback never panics and Scan still completes.
	assert.GreaterOrEqual(t, calls.Load(), int64(0))
}
