// Package engine composes the platform scanner, walker, rule compiler, and
// insight generator into the four entry points non-core code calls (spec
// §6.1), the way the teacher's cmd/sweep/scan.go composes
// scanner.New(...).Scan(...) into one call site.
package engine

import (
	"github.com/mdemirhan/dux/pkg/diskscan/insights"
	"github.com/mdemirhan/dux/pkg/diskscan/rules"
	"github.com/mdemirhan/dux/pkg/diskscan/tuner"
	"github.com/mdemirhan/dux/pkg/diskscan/types"
	"github.com/mdemirhan/dux/pkg/diskscan/walker"
)

// ProgressFunc and CancelFunc re-export the walker's callback types so
// callers only need to import engine.
type ProgressFunc = walker.ProgressFunc
type CancelFunc = walker.CancelFunc

// Re-exported sentinel errors, matching spec §7's taxonomy.
var (
	ErrRootNotFound     = walker.ErrRootNotFound
	ErrRootNotDirectory = walker.ErrRootNotDirectory
	ErrCancelled        = walker.ErrCancelled
)

// ScanOptions configures a scan. WorkerCount of zero asks the tuner to
// pick a worker count from detected system resources.
type ScanOptions struct {
	WorkerCount int
	MaxDepth    *int
	OnProgress  ProgressFunc
	Cancel      CancelFunc
}

// Scan walks rootPath and returns the unfinalized tree plus scan
// statistics. Call Finalize on the result's Root before generating
// insights or reading aggregate sizes.
func Scan(rootPath string, opts ScanOptions) (*types.ScanSnapshot, error) {
	workerCount := opts.WorkerCount
	if workerCount <= 0 {
		resources, err := tuner.Detect()
		if err != nil {
			workerCount = tuner.DefaultWorkers
		} else {
			workerCount = tuner.Calculate(resources)
		}
	}

	return walker.Scan(rootPath, walker.Options{
		WorkerCount: workerCount,
		MaxDepth:    opts.MaxDepth,
		OnProgress:  opts.OnProgress,
		Cancel:      opts.Cancel,
	})
}

// Finalize aggregates sizes bottom-up and sorts every directory's children.
// Idempotent: calling it again on an already-finalized tree recomputes the
// same totals and produces the same order.
func Finalize(root *types.ScanNode) {
	walker.Finalize(root)
}

// CompileRuleSet compiles a pattern rule list plus additional category
// paths into a frozen, fast-dispatch CompiledRuleSet.
func CompileRuleSet(ruleList []types.PatternRule, additional rules.AdditionalPaths) *rules.CompiledRuleSet {
	return rules.Compile(ruleList, additional)
}

// GenerateInsights walks a finalized tree and returns the bounded, ranked
// InsightBundle for presentation.
func GenerateInsights(snapshot *types.ScanSnapshot, ruleset *rules.CompiledRuleSet, limits insights.Limits) *types.InsightBundle {
	return insights.Generate(snapshot.Root, ruleset, limits)
}
