//go:build !darwin && !windows

package platform

import (
	"os"
	"syscall"
)

// ScanOne lists dirPath's entry names followed by one lstat per entry,
// matching the classic opendir/readdir + lstat POSIX sequence. lstat
// failures increment errorCount and skip the entry rather than aborting the
// whole directory.
func ScanOne(dirPath string) (entries []Entry, errorCount int) {
	dir, err := os.Open(dirPath)
	if err != nil {
		return nil, 1
	}
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return nil, 1
	}

	for _, name := range names {
		if name == "." || name == ".." {
			continue
		}

		var st syscall.Stat_t
		if err := syscall.Lstat(dirPath+"/"+name, &st); err != nil {
			errorCount++
			continue
		}

		isDir := st.Mode&syscall.S_IFMT == syscall.S_IFDIR
		if isDir {
			entries = append(entries, Entry{Name: name, IsDir: true})
			continue
		}
		if st.Mode&syscall.S_IFMT == syscall.S_IFLNK {
			entries = append(entries, Entry{Name: name, IsDir: false})
			continue
		}

		entries = append(entries, Entry{
			Name:      name,
			IsDir:     false,
			SizeBytes: st.Size,
			DiskUsage: diskUsageFromBlocks(int64(st.Blocks)),
		})
	}
	return entries, errorCount
}
