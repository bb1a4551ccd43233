package walker_test

import (
	"testing"

	"github.com/mdemirhan/dux/pkg/diskscan/types"
	"github.com/mdemirhan/dux/pkg/diskscan/walker"
	"github.com/stretchr/testify/assert"
)

func TestFinalize_AggregatesAndSorts(t *testing.T) {
	root := types.NewDirNode("/r", "r")
	a := types.NewDirNode("/r/a", "a")
	b := types.NewDirNode("/r/b", "b")
	root.Children = []*types.ScanNode{a, b}

	a.Children = []*types.ScanNode{
		types.NewFileNode("/r/a/x", "x", 100, 512),
		types.NewFileNode("/r/a/y", "y", 50, 512),
	}
	b.Children = []*types.ScanNode{
		types.NewFileNode("/r/b/z", "z", 200, 1024),
	}

	walker.Finalize(root)

	assert.Equal(t, int64(350), root.SizeBytes)
	assert.Equal(t, int64(2048), root.DiskUsage)
	assert.Equal(t, int64(150), a.SizeBytes)
	assert.Equal(t, int64(1024), a.DiskUsage)
	assert.Equal(t, int64(200), b.SizeBytes)
	assert.Equal(t, int64(1024), b.DiskUsage)

	assert.Len(t, root.Children, 2)
	// a and b both total 1024 bytes of disk usage, so the name tie-break
	// puts a first.
	assert.Equal(t, "a", root.Children[0].Name)
	assert.Equal(t, "b", root.Children[1].Name)
}

func TestFinalize_TieBreaksOnNameAscending(t *testing.T) {
	root := types.NewDirNode("/r", "r")
	root.Children = []*types.ScanNode{
		types.NewFileNode("/r/z", "z", 100, 512),
		types.NewFileNode("/r/a", "a", 100, 512),
		types.NewFileNode("/r/m", "m", 100, 512),
	}

	walker.Finalize(root)

	names := make([]string, len(root.Children))
	for i, c := range root.Children {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"a", "m", "z"}, names)
}

func TestFinalize_HandlesDeepChains(t *testing.T) {
	root := types.NewDirNode("/r", "r")
	cur := root
	const depth = 500
	for i := 0; i < depth; i++ {
		child := types.NewDirNode("/r/d", "d")
		cur.Children = []*types.ScanNode{child}
		cur = child
	}
	cur.Children = []*types.ScanNode{types.NewFileNode("/r/leaf", "leaf", 10, 512)}

	walker.Finalize(root)
	assert.Equal(t, int64(10), root.SizeBytes)
	assert.Equal(t, int64(512), root.DiskUsage)
}
