//go:build windows

package platform

import "os"

// ScanOne is the pure fallback scanner: it uses the language runtime's own
// directory iterator and whatever stat info os.DirEntry caches, without a
// platform-specific batch syscall. Disk usage is approximated as the
// logical size since no portable allocation-size syscall is used here;
// Windows is out of scope for this engine (see spec Non-goals) but this
// keeps the package compiling everywhere.
func ScanOne(dirPath string) (entries []Entry, errorCount int) {
	dirEntries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, 1
	}

	for _, de := range dirEntries {
		name := de.Name()
		if name == "." || name == ".." {
			continue
		}
		if de.IsDir() {
			entries = append(entries, Entry{Name: name, IsDir: true})
			continue
		}
		if de.Type()&os.ModeSymlink != 0 {
			entries = append(entries, Entry{Name: name, IsDir: false})
			continue
		}

		info, err := de.Info()
		if err != nil {
			errorCount++
			continue
		}
		size := info.Size()
		entries = append(entries, Entry{Name: name, IsDir: false, SizeBytes: size, DiskUsage: size})
	}
	return entries, errorCount
}
