// Package types provides the core data model for the disk-usage scanning
// and classification engine: the scanned tree (ScanNode), scan statistics,
// pattern rules, and the insight bundle produced by classification.
package types

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Size constants for binary (IEC) units.
const (
	KiB int64 = 1024
	MiB int64 = 1024 * KiB
	GiB int64 = 1024 * MiB
	TiB int64 = 1024 * GiB
)

// NodeKind enumerates the two kinds of filesystem entry a ScanNode models.
type NodeKind int

const (
	// File is a regular file (or a symlink, which is never followed and is
	// treated as a zero-size file of its own type).
	File NodeKind = iota
	// Directory is a directory entry.
	Directory
)

// String returns the lowercase name of the kind, used in logs and insights.
func (k NodeKind) String() string {
	if k == Directory {
		return "directory"
	}
	return "file"
}

// emptyChildren is the single shared, immutable children slice used by every
// FILE node process-wide. Sharing it avoids a per-leaf allocation on trees
// with millions of files.
var emptyChildren = []*ScanNode{}

// ScanNode is one filesystem entry visited during a scan.
//
// Ownership: a node is created by the worker that visits its parent
// directory and appended to that parent's Children by that same worker.
// Once its directory has been fully processed, a node is never mutated
// again except by Finalize, which only touches SizeBytes, DiskUsage, and
// the order of Children. After Finalize the tree is immutable and may be
// read concurrently from any goroutine without synchronization.
type ScanNode struct {
	Path      string
	Name      string
	Kind      NodeKind
	SizeBytes int64
	DiskUsage int64
	Children  []*ScanNode
}

// NewFileNode creates a FILE node sharing the process-wide empty children
// slice.
func NewFileNode(path, name string, size, diskUsage int64) *ScanNode {
	return &ScanNode{
		Path:      path,
		Name:      name,
		Kind:      File,
		SizeBytes: size,
		DiskUsage: diskUsage,
		Children:  emptyChildren,
	}
}

// NewDirNode creates a DIRECTORY node with an empty, growable children
// slice. Sizes are zero until Finalize aggregates them.
func NewDirNode(path, name string) *ScanNode {
	return &ScanNode{
		Path:     path,
		Name:     name,
		Kind:     Directory,
		Children: []*ScanNode{},
	}
}

// IsDir reports whether the node is a directory.
func (n *ScanNode) IsDir() bool { return n.Kind == Directory }

// ScanStats are global counters updated during a scan.
type ScanStats struct {
	Files        int64
	Directories  int64
	AccessErrors int64
}

// ScanSnapshot is the result of a completed scan: the scanned tree plus the
// counters accumulated while building it. Scan returns the tree
// un-finalized; sizes are aggregated once Finalize has run on Root.
type ScanSnapshot struct {
	Root  *ScanNode
	Stats ScanStats
}

// ApplyTo is a bitmask selecting which node kinds a PatternRule applies to.
type ApplyTo int

const (
	ApplyFile ApplyTo = 1 << iota
	ApplyDir
	ApplyBoth = ApplyFile | ApplyDir
)

// ParseApplyTo parses "file", "dir", or "both" (case-insensitive),
// defaulting to ApplyBoth for unrecognized input.
func ParseApplyTo(s string) ApplyTo {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file":
		return ApplyFile
	case "dir", "directory":
		return ApplyDir
	default:
		return ApplyBoth
	}
}

// Category classifies a matched insight.
type Category int

const (
	Temp Category = iota
	Cache
	BuildArtifact
)

// String returns the lowercase wire form of the category.
func (c Category) String() string {
	switch c {
	case Temp:
		return "temp"
	case Cache:
		return "cache"
	case BuildArtifact:
		return "build_artifact"
	default:
		return "unknown"
	}
}

// ErrUnknownCategory is returned by ParseCategory for unrecognized input.
var ErrUnknownCategory = errors.New("unknown insight category")

// ParseCategory parses "temp", "cache", or "build_artifact"
// (case-insensitive).
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "temp":
		return Temp, nil
	case "cache":
		return Cache, nil
	case "build_artifact", "build-artifact", "buildartifact":
		return BuildArtifact, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// AllCategories lists every category, in a stable order used when
// initializing per-category maps.
var AllCategories = []Category{Temp, Cache, BuildArtifact}

// PatternRule is compile-time input to the rule compiler (spec §3).
type PatternRule struct {
	Name          string
	Pattern       string
	Category      Category
	ApplyTo       ApplyTo
	StopRecursion bool
}

// Insight is one classified path recorded for presentation.
type Insight struct {
	Path      string
	Name      string
	SizeBytes int64
	DiskUsage int64
	Kind      NodeKind
	Category  Category
	Summary   string
}

// CategoryStats aggregates every classified entry in a category, regardless
// of whether it survived the bounded top-K heap.
type CategoryStats struct {
	Count     int64
	SizeBytes int64
	DiskUsage int64
}

// InsightBundle is the final output of the insight generator.
type InsightBundle struct {
	Insights   []Insight
	ByCategory map[Category]*CategoryStats
}

// sizePattern matches size strings like "100M", "2G", "500K", "1.5GB".
var sizePattern = regexp.MustCompile(`(?i)^\s*([0-9]+(?:\.[0-9]+)?)\s*([KMGT]?(?:i?B)?)\s*$`)

// ErrInvalidSize indicates that the size string could not be parsed.
var ErrInvalidSize = errors.New("invalid size format")

// ErrNegativeSize indicates that a negative size value was provided.
var ErrNegativeSize = errors.New("size cannot be negative")

// ParseSize parses a human-readable size string ("512", "100K", "2.5GiB")
// into a byte count.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidSize)
	}
	if strings.HasPrefix(s, "-") {
		return 0, ErrNegativeSize
	}

	matches := sizePattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	suffix := strings.ToUpper(matches[2])
	suffix = strings.TrimSuffix(suffix, "IB")
	suffix = strings.TrimSuffix(suffix, "B")

	var multiplier int64
	switch suffix {
	case "":
		multiplier = 1
	case "K":
		multiplier = KiB
	case "M":
		multiplier = MiB
	case "G":
		multiplier = GiB
	case "T":
		multiplier = TiB
	default:
		return 0, fmt.Errorf("%w: unknown suffix %q", ErrInvalidSize, suffix)
	}

	return int64(value * float64(multiplier)), nil
}

// FormatSize renders a byte count using binary (IEC) units.
func FormatSize(bytes int64) string {
	return humanize.IBytes(uint64(bytes))
}
