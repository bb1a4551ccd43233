package insights_test

import (
	"testing"

	"github.com/mdemirhan/dux/pkg/diskscan/insights"
	"github.com/mdemirhan/dux/pkg/diskscan/rules"
	"github.com/mdemirhan/dux/pkg/diskscan/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dir(path, name string, children ...*types.ScanNode) *types.ScanNode {
	n := types.NewDirNode(path, name)
	n.Children = children
	var size int64
	for _, c := range children {
		size += c.SizeBytes
	}
	n.SizeBytes = size
	n.DiskUsage = size
	return n
}

func file(path, name string, size int64) *types.ScanNode {
	return types.NewFileNode(path, name, size, size)
}

func TestGenerate_ClassifiesMatchedNodes(t *testing.T) {
	root := dir("/r", "r",
		dir("/r/tmp", "tmp",
			file("/r/tmp/a.txt", "a.txt", 100),
		),
		file("/r/app.log", "app.log", 50),
		file("/r/keep.txt", "keep.txt", 10),
	)

	rs := rules.Compile([]types.PatternRule{
		{Name: "System Temp", Pattern: "**/tmp/**", Category: types.Temp, ApplyTo: types.ApplyBoth},
		{Name: "Log Files", Pattern: "**/*.log", Category: types.Temp, ApplyTo: types.ApplyFile},
	}, nil)

	bundle := insights.Generate(root, rs, insights.Limits{})

	var paths []string
	for _, ins := range bundle.Insights {
		paths = append(paths, ins.Path)
	}
	assert.Contains(t, paths, "/r/tmp")
	assert.Contains(t, paths, "/r/app.log")
	assert.NotContains(t, paths, "/r/keep.txt")
	assert.NotContains(t, paths, "/r/tmp/a.txt", "descendant of a matched temp dir should not be separately classified")

	stats := bundle.ByCategory[types.Temp]
	require.NotNil(t, stats)
	assert.Equal(t, int64(2), stats.Count)
}

func TestGenerate_StopRecursionPrunesDescendants(t *testing.T) {
	root := dir("/r", "r",
		dir("/r/node_modules", "node_modules",
			dir("/r/node_modules/pkg", "pkg",
				file("/r/node_modules/pkg/index.js", "index.js", 1000),
			),
		),
	)

	rs := rules.Compile([]types.PatternRule{
		{Name: "node_modules", Pattern: "**/node_modules/**", Category: types.BuildArtifact, ApplyTo: types.ApplyBoth, StopRecursion: true},
	}, nil)

	bundle := insights.Generate(root, rs, insights.Limits{})

	require.Len(t, bundle.Insights, 1)
	assert.Equal(t, "/r/node_modules", bundle.Insights[0].Path)
}

func TestGenerate_BoundedHeapKeepsLargestPerCategory(t *testing.T) {
	root := dir("/r", "r",
		file("/r/a.log", "a.log", 10),
		file("/r/b.log", "b.log", 50),
		file("/r/c.log", "c.log", 30),
	)

	rs := rules.Compile([]types.PatternRule{
		{Name: "Log Files", Pattern: "**/*.log", Category: types.Temp, ApplyTo: types.ApplyFile},
	}, nil)

	bundle := insights.Generate(root, rs, insights.Limits{MaxInsightsPerCategory: 2})

	require.Len(t, bundle.Insights, 2)
	assert.Equal(t, int64(50), bundle.Insights[0].DiskUsage)
	assert.Equal(t, int64(30), bundle.Insights[1].DiskUsage)

	stats := bundle.ByCategory[types.Temp]
	assert.Equal(t, int64(3), stats.Count, "aggregate stats count every match, not just heap survivors")
}

func TestGenerate_SortedByDiskUsageDescending(t *testing.T) {
	root := dir("/r", "r",
		dir("/r/tmp", "tmp", file("/r/tmp/big.bin", "big.bin", 1000)),
		file("/r/small.log", "small.log", 5),
	)

	rs := rules.Compile([]types.PatternRule{
		{Name: "System Temp", Pattern: "**/tmp/**", Category: types.Temp, ApplyTo: types.ApplyBoth},
		{Name: "Log Files", Pattern: "**/*.log", Category: types.Temp, ApplyTo: types.ApplyFile},
	}, nil)

	bundle := insights.Generate(root, rs, insights.Limits{})

	require.Len(t, bundle.Insights, 2)
	for i := 1; i < len(bundle.Insights); i++ {
		assert.GreaterOrEqual(t, bundle.Insights[i-1].DiskUsage, bundle.Insights[i].DiskUsage)
	}
}

func TestGenerate_NoMatchesReturnsEmptyBundle(t *testing.T) {
	root := dir("/r", "r", file("/r/keep.txt", "keep.txt", 10))
	rs := rules.Compile(nil, nil)

	bundle := insights.Generate(root, rs, insights.Limits{})

	assert.Empty(t, bundle.Insights)
	for _, c := range types.AllCategories {
		assert.Equal(t, int64(0), bundle.ByCategory[c].Count)
	}
}
