//go:build darwin

package tuner

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// Detect detects available system resources on darwin using sysctl for
// memory and runtime.NumCPU for CPU cores.
func Detect() (SystemResources, error) {
	resources := SystemResources{CPUCores: runtime.NumCPU()}

	totalRAM, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return resources, fmt.Errorf("sysctl hw.memsize: %w", err)
	}
	resources.TotalRAM = int64(totalRAM)
	// macOS uses the page cache aggressively; half of total RAM is a
	// conservative estimate of what's actually free for our purposes.
	resources.AvailableRAM = resources.TotalRAM / 2

	return resources, nil
}
