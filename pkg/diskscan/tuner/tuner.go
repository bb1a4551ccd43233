// Package tuner picks a worker pool size for the walker from detected
// system resources, the way the teacher's sweep tuner sizes its
// directory/file worker pools from CPU and RAM.
package tuner

// SystemResources holds detected system resources.
type SystemResources struct {
	// CPUCores is the number of logical CPU cores available.
	CPUCores int

	// TotalRAM is the total physical RAM in bytes.
	TotalRAM int64

	// AvailableRAM is the available (free) RAM in bytes, possibly an
	// estimate depending on platform support.
	AvailableRAM int64
}

// Worker pool size limits.
const (
	// DefaultWorkers is the floor used when resource detection is
	// unavailable or yields nothing useful (spec's "fixed-size pool
	// sized by configuration, default 4").
	DefaultWorkers = 4

	// maxWorkers caps the pool regardless of detected CPU count, to
	// avoid excessive goroutine context switching on very large hosts.
	maxWorkers = 64

	// minWorkers is the floor below which a worker pool stops scaling
	// with detected resources and simply uses DefaultWorkers.
	minWorkers = DefaultWorkers
)

// Calculate returns the worker count sized from detected resources: the
// walker is metadata-heavy (directory listings, not bulk file I/O), so
// unlike the teacher's file-worker pool it does not scale past NumCPU.
func Calculate(resources SystemResources) int {
	workers := resources.CPUCores
	workers = max(workers, minWorkers)
	workers = min(workers, maxWorkers)
	return workers
}

// CalculateWithOverride returns override if positive (capped at
// maxWorkers), otherwise falls back to Calculate.
func CalculateWithOverride(resources SystemResources, override int) int {
	if override > 0 {
		return min(override, maxWorkers)
	}
	return Calculate(resources)
}
