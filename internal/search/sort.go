package search

import "sort"

// SortMatches sorts matches by name, then by path.
func SortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Name == matches[j].Name {
			return matches[i].Path < matches[j].Path
		}
		return matches[i].Name < matches[j].Name
	})
}
