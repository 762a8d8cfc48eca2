package nameindex

import (
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff between two encoded indexes, or "" when they
// are identical.
func Diff(oldData, newData []byte, oldName, newName string) (string, error) {
	u := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(oldData)),
		B:        difflib.SplitLines(string(newData)),
		FromFile: oldName,
		ToFile:   newName,
		Context:  2,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(s, "\n"), nil
}
