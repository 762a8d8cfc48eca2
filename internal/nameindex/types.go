// Package nameindex builds, persists and resolves the flat asset-name index:
// a mapping from an asset's short name to the full path recorded in the
// bundle manifests.
package nameindex

import "sort"

// FileName is the well-known name of the index file, shared by the builder
// (written under the build path) and the resolver (read from the data path).
const FileName = "asset_name_index.json"

// Index maps a short asset name to its full path.
type Index map[string]string

// Lookup returns the path mapped to name.
func (idx Index) Lookup(name string) (string, bool) {
	p, ok := idx[name]
	return p, ok
}

// Len returns the number of names in the index.
func (idx Index) Len() int { return len(idx) }

// Names returns all short names in ascending order.
func (idx Index) Names() []string {
	out := make([]string, 0, len(idx))
	for name := range idx {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Collision records a short name seen more than once. Kept is the path
// already in the index; Rejected is the later one that was dropped. Both are
// equal when a manifest lists the same path again.
type Collision struct {
	Name         string `json:"name"`
	Kept         string `json:"kept"`
	Rejected     string `json:"rejected"`
	KeptFile     string `json:"kept_file"`
	RejectedFile string `json:"rejected_file"`
}

// Repeat reports whether the rejected entry is the kept path listed again.
func (c Collision) Repeat() bool { return c.Kept == c.Rejected }

// UnnamedAsset is an asset path from which no short name could be derived,
// such as a path ending in a separator. It is left out of the index.
type UnnamedAsset struct {
	Path string `json:"path"`
	File string `json:"file"`
}

// FileError is a manifest that contributed nothing because it could not be
// read or decoded.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e FileError) Unwrap() error { return e.Err }

// Encrypter seals encoded index bytes before they are written.
type Encrypter func(plaintext []byte) ([]byte, error)

// Decrypter opens index bytes read from disk before they are decoded.
type Decrypter func(ciphertext []byte) ([]byte, error)
