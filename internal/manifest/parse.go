package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tidwall/jsonc"
)

// Parse decodes a manifest document into its bundle records.
//
// Comments and trailing commas are stripped before decoding and unknown
// fields are ignored, so newer manifest producers keep working. A document
// without a bundle list, or with an empty one, returns ErrNoBundles.
func Parse(data []byte) ([]Record, error) {
	var root Root
	if err := json.Unmarshal(jsonc.ToJSON(data), &root); err != nil {
		return nil, fmt.Errorf("invalid manifest JSON: %w", err)
	}
	if len(root.Bundles) == 0 {
		return nil, ErrNoBundles
	}
	return root.Bundles, nil
}

// ParseFile reads and parses the manifest at path. Returned errors do not
// name the file; callers attach it.
func ParseFile(path string) ([]Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		var pe *fs.PathError
		if errors.As(err, &pe) {
			err = pe.Err
		}
		return nil, fmt.Errorf("cannot read manifest: %w", err)
	}
	return Parse(b)
}
