// Package search finds index entries by keyword.
package search

// Match is one index entry matched by a query.
type Match struct {
	Name string
	Path string
}
