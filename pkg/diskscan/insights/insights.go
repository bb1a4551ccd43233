// Package insights walks a finalized scan tree and classifies nodes with a
// compiled rule set, producing a bounded, ranked InsightBundle of temp,
// cache, and build-artifact paths worth surfacing to a user deciding what
// to delete.
package insights

import (
	"container/heap"
	"sort"
	"strings"

	"github.com/mdemirhan/dux/pkg/diskscan/rules"
	"github.com/mdemirhan/dux/pkg/diskscan/types"
)

// DefaultMaxInsightsPerCategory bounds the per-category heap when the
// caller does not override it.
const DefaultMaxInsightsPerCategory = 1000

// Limits configures insight generation.
type Limits struct {
	// MaxInsightsPerCategory bounds each category's top-K heap. Zero uses
	// DefaultMaxInsightsPerCategory.
	MaxInsightsPerCategory int
}

func (l Limits) maxPerCategory() int {
	if l.MaxInsightsPerCategory <= 0 {
		return DefaultMaxInsightsPerCategory
	}
	return l.MaxInsightsPerCategory
}

// heapEntry is one item in a category's bounded min-heap, keyed by disk
// usage so the smallest sits at the top for O(log K) eviction.
type heapEntry struct {
	diskUsage int64
	path      string
	insight   types.Insight
}

type minHeap []heapEntry

func (h minHeap) Len() int            { return len(h) }
func (h minHeap) Less(i, j int) bool  { return h[i].diskUsage < h[j].diskUsage }
func (h minHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x interface{}) { *h = append(*h, x.(heapEntry)) }
func (h *minHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// heapPush inserts insight into the category's bounded min-heap,
// deduplicating by path: a later, larger disk usage for the same path
// supersedes the earlier entry; a later, smaller one is dropped. Stale
// entries already sitting in the heap are filtered out at extraction time.
func heapPush(h *minHeap, seen map[string]int64, insight types.Insight, maxSize int) {
	if prev, ok := seen[insight.Path]; ok && insight.DiskUsage <= prev {
		return
	}
	seen[insight.Path] = insight.DiskUsage

	entry := heapEntry{diskUsage: insight.DiskUsage, path: insight.Path, insight: insight}
	if h.Len() < maxSize {
		heap.Push(h, entry)
		return
	}
	if maxSize > 0 && insight.DiskUsage > (*h)[0].diskUsage {
		heap.Pop(h)
		heap.Push(h, entry)
	}
}

// stackEntry carries the DFS traversal state the generator needs per node:
// whether an ancestor already matched TEMP or CACHE, in which case this
// node's own size is already covered by that ancestor's aggregate and must
// not be classified again.
type stackEntry struct {
	node          *types.ScanNode
	inTempOrCache bool
}

// Generate walks root (already finalized) with ruleset, returning the
// bounded, ranked InsightBundle.
func Generate(root *types.ScanNode, ruleset *rules.CompiledRuleSet, limits Limits) *types.InsightBundle {
	maxSize := limits.maxPerCategory()

	heaps := make(map[types.Category]*minHeap, len(types.AllCategories))
	seen := make(map[types.Category]map[string]int64, len(types.AllCategories))
	byCategory := make(map[types.Category]*types.CategoryStats, len(types.AllCategories))
	for _, c := range types.AllCategories {
		h := minHeap{}
		heaps[c] = &h
		seen[c] = make(map[string]int64)
		byCategory[c] = &types.CategoryStats{}
	}

	record := func(insight types.Insight) {
		cs := byCategory[insight.Category]
		cs.Count++
		cs.SizeBytes += insight.SizeBytes
		cs.DiskUsage += insight.DiskUsage
		heapPush(heaps[insight.Category], seen[insight.Category], insight, maxSize)
	}

	stack := []stackEntry{{node: root, inTempOrCache: false}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.inTempOrCache {
			continue
		}
		node := top.node

		lpath := strings.ToLower(node.Path)
		lbase := strings.ToLower(node.Name)
		matched := rules.MatchAll(ruleset, lpath, lbase, node.IsDir(), node.Path)

		localInTempOrCache := false
		stopRecursion := false
		for _, rule := range matched {
			record(insightFromRule(node, rule))
			if rule.Category == types.Temp || rule.Category == types.Cache {
				localInTempOrCache = true
			}
			if rule.StopRecursion {
				stopRecursion = true
			}
		}

		if !node.IsDir() {
			continue
		}
		if stopRecursion {
			continue
		}
		for _, child := range node.Children {
			stack = append(stack, stackEntry{node: child, inTempOrCache: localInTempOrCache})
		}
	}

	return &types.InsightBundle{
		Insights:   extract(heaps),
		ByCategory: byCategory,
	}
}

func insightFromRule(node *types.ScanNode, rule *types.PatternRule) types.Insight {
	return types.Insight{
		Path:      node.Path,
		Name:      node.Name,
		SizeBytes: node.SizeBytes,
		DiskUsage: node.DiskUsage,
		Kind:      node.Kind,
		Category:  rule.Category,
		Summary:   rule.Name,
	}
}

// extract drains every category's heap, discards stale duplicate-path
// entries, and returns the merged list sorted by disk usage descending.
func extract(heaps map[types.Category]*minHeap) []types.Insight {
	var all []types.Insight
	for _, c := range types.AllCategories {
		h := heaps[c]
		entries := make([]heapEntry, len(*h))
		copy(entries, *h)

		best := make(map[string]int64, len(entries))
		for _, e := range entries {
			if e.diskUsage > best[e.path] {
				best[e.path] = e.diskUsage
			}
		}

		catSeen := make(map[string]bool, len(entries))
		for _, e := range entries {
			if e.diskUsage < best[e.path] {
				continue
			}
			if catSeen[e.path] {
				continue
			}
			catSeen[e.path] = true
			all = append(all, e.insight)
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].DiskUsage > all[j].DiskUsage })
	return all
}
