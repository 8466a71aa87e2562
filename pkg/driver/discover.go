package driver

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/modup/pkg/errors"
	"github.com/arthur-debert/modup/pkg/types"
	"github.com/gobwas/glob"
)

// DefaultPattern matches the archives modup knows how to read.
const DefaultPattern = "*.zip"

// Discover returns the regular files directly inside dir whose names match
// pattern, sorted by name. Subdirectories are not searched.
func Discover(fs types.FS, dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid archive pattern %q", pattern)
	}

	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to list %s", dir).
			WithDetail("path", dir)
	}

	var archives []string
	for _, entry := range entries {
		if entry.IsDir() || !entry.Type().IsRegular() {
			continue
		}
		if matcher.Match(entry.Name()) {
			archives = append(archives, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(archives)
	return archives, nil
}
