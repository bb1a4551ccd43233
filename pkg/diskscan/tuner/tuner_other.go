//go:build !darwin

package tuner

import "runtime"

// defaultTotalRAM is the fallback used when platform-specific memory
// detection is not implemented.
const defaultTotalRAM = 8 * 1024 * 1024 * 1024

// Detect detects available system resources on non-darwin platforms.
//
// TODO: read /proc/meminfo on linux instead of falling back to
// defaultTotalRAM.
func Detect() (SystemResources, error) {
	return SystemResources{
		CPUCores:     runtime.NumCPU(),
		TotalRAM:     defaultTotalRAM,
		AvailableRAM: defaultTotalRAM / 2,
	}, nil
}
