package nameindex

import "strings"

// Derive maps a full asset path to its lookup key.
type Derive func(assetPath string) string

// BaseName returns the final path segment of assetPath. Both '/' and '\'
// are treated as separators because manifests may be produced on Windows.
func BaseName(assetPath string) string {
	if i := strings.LastIndexAny(assetPath, `/\`); i >= 0 {
		return assetPath[i+1:]
	}
	return assetPath
}

// LowerBaseName is BaseName folded to lower case.
func LowerBaseName(assetPath string) string {
	return strings.ToLower(BaseName(assetPath))
}

// DeriveByName returns the derivation rule registered under name.
// The empty name selects BaseName.
func DeriveByName(name string) (Derive, bool) {
	switch name {
	case "", "basename":
		return BaseName, true
	case "lower":
		return LowerBaseName, true
	}
	return nil, false
}
