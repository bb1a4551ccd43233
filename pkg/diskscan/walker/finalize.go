package walker

import (
	"sort"

	"github.com/mdemirhan/dux/pkg/diskscan/types"
)

// Finalize aggregates directory sizes bottom-up and sorts every directory's
// children by disk usage, descending. It is iterative rather than
// recursive so it does not blow the goroutine stack on pathologically deep
// trees, and it makes two passes: one to collect directories in a
// traversal order, one to fold sizes from that order reversed (children
// are always visited, and therefore finalized, before their parents).
func Finalize(root *types.ScanNode) {
	var dirs []*types.ScanNode
	visit := []*types.ScanNode{root}
	for len(visit) > 0 {
		node := visit[len(visit)-1]
		visit = visit[:len(visit)-1]
		if !node.IsDir() {
			continue
		}
		dirs = append(dirs, node)
		visit = append(visit, node.Children...)
	}

	for i := len(dirs) - 1; i >= 0; i-- {
		node := dirs[i]
		var size, disk int64
		for _, child := range node.Children {
			size += child.SizeBytes
			disk += child.DiskUsage
		}
		node.SizeBytes = size
		node.DiskUsage = disk
		children := node.Children
		sort.SliceStable(children, func(a, b int) bool {
			if children[a].DiskUsage != children[b].DiskUsage {
				return children[a].DiskUsage > children[b].DiskUsage
			}
			return children[a].Name < children[b].Name
		})
	}
}
