package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdemirhan/dux/pkg/diskscan/config"
	"github.com/mdemirhan/dux/pkg/diskscan/engine"
	"github.com/mdemirhan/dux/pkg/diskscan/insights"
	"github.com/mdemirhan/dux/pkg/diskscan/types"
)

var (
	scanWorkers  int
	scanMaxDepth int
	scanTopN     int
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a directory and print a disk-usage and insight summary",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().IntVarP(&scanWorkers, "workers", "w", 0, "worker pool size (0 = auto-detect)")
	scanCmd.Flags().IntVarP(&scanMaxDepth, "max-depth", "d", 0, "maximum descent depth (0 = unlimited)")
	scanCmd.Flags().IntVarP(&scanTopN, "top", "t", 10, "number of top insights to print")
}

func runScan(_ *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	opts := engine.ScanOptions{WorkerCount: scanWorkers}
	if scanWorkers <= 0 {
		opts.WorkerCount = cfg.ScanWorkers
	}
	if scanMaxDepth > 0 {
		opts.MaxDepth = &scanMaxDepth
	} else if cfg.MaxDepth > 0 {
		opts.MaxDepth = &cfg.MaxDepth
	}

	snapshot, err := engine.Scan(root, opts)
	if err != nil {
		if errors.Is(err, engine.ErrRootNotFound) || errors.Is(err, engine.ErrRootNotDirectory) {
			return err
		}
		return fmt.Errorf("scan failed: %w", err)
	}

	engine.Finalize(snapshot.Root)

	ruleList, err := cfg.RuleSet()
	if err != nil {
		return fmt.Errorf("failed to build rule set: %w", err)
	}
	ruleset := engine.CompileRuleSet(ruleList, cfg.AdditionalPaths())

	limits := insights.Limits{MaxInsightsPerCategory: cfg.MaxInsightsPerCategory}
	bundle := engine.GenerateInsights(snapshot, ruleset, limits)

	printSummary(snapshot, bundle)
	return nil
}

func printSummary(snapshot *types.ScanSnapshot, bundle *types.InsightBundle) {
	fmt.Printf("Scanned %s: %d files, %d directories, %d access errors\n",
		snapshot.Root.Path, snapshot.Stats.Files, snapshot.Stats.Directories, snapshot.Stats.AccessErrors)
	fmt.Printf("Total size: %s\n\n", types.FormatSize(snapshot.Root.DiskUsage))

	for _, cat := range types.AllCategories {
		stats := bundle.ByCategory[cat]
		fmt.Printf("%-14s count=%-6d size=%s\n", cat.String(), stats.Count, types.FormatSize(stats.DiskUsage))
	}

	fmt.Println()
	fmt.Printf("Top %d insights:\n", scanTopN)
	n := scanTopN
	if n > len(bundle.Insights) {
		n = len(bundle.Insights)
	}
	for i := 0; i < n; i++ {
		ins := bundle.Insights[i]
		fmt.Printf("  %-10s %10s  %s\n", ins.Category.String(), types.FormatSize(ins.DiskUsage), ins.Path)
	}
}
