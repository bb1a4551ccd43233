package walker

import (
	"os"
	"path/filepath"
	"strings"
)

// expandHome expands a leading ~ or ~/ to the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, path[1:]), nil
}

// resolveRoot expands a leading ~, resolves rootPath to an absolute path,
// and verifies it exists and is a directory.
func resolveRoot(rootPath string) (string, error) {
	expanded, err := expandHome(rootPath)
	if err != nil {
		return "", err
	}

	root, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrRootNotFound
		}
		return "", err
	}
	if !info.IsDir() {
		return "", ErrRootNotDirectory
	}
	return root, nil
}
