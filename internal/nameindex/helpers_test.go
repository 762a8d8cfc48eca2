package nameindex

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kamusis/assetindex/internal/manifest"
	"github.com/kamusis/assetindex/internal/manifest/match"
)

// writeManifest writes a manifest under root/rel with one bundle per
// element of bundles.
func writeManifest(t *testing.T, root, rel string, bundles ...[]string) {
	t.Helper()
	var r manifest.Root
	for i, assets := range bundles {
		r.Bundles = append(r.Bundles, manifest.Record{
			Name:   filepath.Base(rel) + "_" + string(rune('a'+i)),
			Assets: assets,
			Size:   int64(len(assets)),
			Hash:   "h",
		})
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, b, 0o644); err != nil {
		t.Fatal(err)
	}
}

func mustSet(t *testing.T, names ...string) match.Set {
	t.Helper()
	s, err := match.NewSet(match.ModeSubstring, names)
	if err != nil {
		t.Fatal(err)
	}
	return s
}
