package search

import (
	"strings"

	"github.com/kamusis/assetindex/internal/nameindex"
)

// Find searches idx by case-insensitive keyword matching over short name and
// full path. All query tokens must match (AND semantics).
func Find(idx nameindex.Index, query string, limit int) []Match {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return []Match{}
	}

	var out []Match
	for name, path := range idx {
		blob := strings.ToLower(name + "\n" + path)
		ok := true
		for _, tok := range tokens {
			if !strings.Contains(blob, tok) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		out = append(out, Match{Name: name, Path: path})
	}

	SortMatches(out)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func tokenize(q string) []string {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	parts := strings.Fields(q)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
