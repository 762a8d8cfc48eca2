// Package manifest decodes the per-bundle manifest files written by the
// asset-bundle build and discovers them on disk.
package manifest

// Record is one bundle entry of a manifest file.
//
// Only Assets is consumed by the indexer. The remaining fields are carried so
// callers can inspect them, but nothing in this module interprets them.
type Record struct {
	Name      string   `json:"n"`
	Assets    []string `json:"a"`
	IsRawFile bool     `json:"IsRawFile"`
	Size      int64    `json:"s"`
	Hash      string   `json:"h"`
}

// Root is the top-level object of a manifest file.
type Root struct {
	Bundles []Record `json:"manifestBundleInfoList"`
}
