// Package modifier holds the reusable building blocks version scripts are written with.
// Every modifier embeds an *upgrade.Step, so each one is named, skippable, and dry-run aware.
// Paths are relative to the project root unless absolute.
package modifier

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/zubzet/tooling/internal/upgrade"
)

func isDir(sys upgrade.System, path string) bool {
	info, err := sys.Stat(path)
	return err == nil && info.IsDir()
}

func isRegular(sys upgrade.System, path string) bool {
	info, err := sys.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func exists(sys upgrade.System, path string) (bool, error) {
	_, err := sys.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func fileMode(sys upgrade.System, path string, fallback os.FileMode) os.FileMode {
	info, err := sys.Stat(path)
	if err != nil {
		return fallback
	}
	return info.Mode().Perm()
}

func trimSeparator(path string) string {
	trimmed := strings.TrimRight(path, `/\`)
	if trimmed == "" {
		return path
	}
	return trimmed
}

// realPath resolves symlinks on the longest existing prefix of path, so a
// destination that does not exist yet still compares correctly against its source.
func realPath(sys upgrade.System, path string) string {
	clean := filepath.Clean(path)
	rest := ""
	current := clean
	for {
		resolved, err := sys.EvalSymlinks(current)
		if err == nil {
			if rest == "" {
				return resolved
			}
			return filepath.Join(resolved, rest)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return clean
		}
		rest = filepath.Join(filepath.Base(current), rest)
		current = parent
	}
}

func plural(n int, singular string, many string) string {
	if n == 1 {
		return singular
	}
	return many
}
