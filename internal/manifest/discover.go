package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// DefaultPattern is the base-name pattern manifest files are matched against.
const DefaultPattern = "*.json"

// Discover walks root recursively and returns every regular file whose base
// name matches pattern, sorted lexically. Base names listed in exclude are
// never returned (the index file lives in the same tree as its inputs).
func Discover(root, pattern string, exclude ...string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid manifest pattern %q: %w", pattern, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot stat build directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("build path is not a directory: %s", root)
	}

	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	var out []string
	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		name := d.Name()
		if skip[name] {
			return nil
		}
		if ok, _ := filepath.Match(pattern, name); !ok {
			return nil
		}
		out = append(out, path)
		return nil
	}
	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, fmt.Errorf("cannot scan %s: %w", root, err)
	}

	sort.Strings(out)
	return out, nil
}
