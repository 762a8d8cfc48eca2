// Package match decides which discovered manifest files belong to the set of
// build configurations being indexed.
package match

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher reports whether a manifest path belongs to one configuration.
// Paths are slash-separated and relative to the scanned build directory.
type Matcher interface {
	Match(path string) bool
	String() string
}

// Modes accepted by NewSet.
const (
	ModeSubstring = "substring"
	ModeDir       = "dir"
	ModeGlob      = "glob"
)

type substring string

// Substring matches any path containing name.
func Substring(name string) Matcher { return substring(name) }

func (s substring) Match(path string) bool {
	return s != "" && strings.Contains(path, string(s))
}

func (s substring) String() string { return "contains " + string(s) }

type directory string

// Directory matches paths with a directory component equal to name.
func Directory(name string) Matcher { return directory(name) }

func (d directory) Match(path string) bool {
	if d == "" {
		return false
	}
	dir := filepath.ToSlash(filepath.Dir(filepath.FromSlash(path)))
	for _, part := range strings.Split(dir, "/") {
		if part == string(d) {
			return true
		}
	}
	return false
}

func (d directory) String() string { return "dir " + string(d) }

type glob string

// Glob matches paths against a doublestar pattern such as "**/Android/*.json".
func Glob(pattern string) (Matcher, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}
	return glob(pattern), nil
}

func (g glob) Match(path string) bool {
	ok, err := doublestar.Match(string(g), path)
	return err == nil && ok
}

func (g glob) String() string { return "glob " + string(g) }

// Set is the configuration filter. A path is included when any member
// matches; an empty Set includes nothing.
type Set []Matcher

// Match returns the first member matching path.
func (s Set) Match(path string) (Matcher, bool) {
	path = filepath.ToSlash(path)
	for _, m := range s {
		if m.Match(path) {
			return m, true
		}
	}
	return nil, false
}

// NewSet builds a Set with one matcher per configuration name using mode.
// An empty mode means ModeSubstring. Blank names are ignored.
func NewSet(mode string, names []string) (Set, error) {
	var out Set
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		switch mode {
		case "", ModeSubstring:
			out = append(out, Substring(name))
		case ModeDir:
			out = append(out, Directory(name))
		case ModeGlob:
			g, err := Glob(name)
			if err != nil {
				return nil, err
			}
			out = append(out, g)
		default:
			return nil, fmt.Errorf("unknown match mode %q (want %s, %s or %s)", mode, ModeSubstring, ModeDir, ModeGlob)
		}
	}
	return out, nil
}
