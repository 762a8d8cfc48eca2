package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_IgnoresUnknownFieldsAndComments(t *testing.T) {
	data := []byte(`{
  // produced by build 42
  "manifestBundleInfoList": [
    {"n": "chars", "a": ["Assets/Characters/player.prefab"], "IsRawFile": false, "s": 120, "h": "abc", "future": 1},
  ],
  "version": 7
}`)
	records, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.Name != "chars" || r.Size != 120 || r.Hash != "abc" || r.IsRawFile {
		t.Fatalf("unexpected record: %+v", r)
	}
	if len(r.Assets) != 1 || r.Assets[0] != "Assets/Characters/player.prefab" {
		t.Fatalf("unexpected assets: %v", r.Assets)
	}
}

func TestParse_EmptyBundleList(t *testing.T) {
	for _, in := range []string{`{}`, `{"manifestBundleInfoList": []}`, `{"manifestBundleInfoList": null}`} {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrNoBundles) {
			t.Fatalf("Parse(%s): expected ErrNoBundles, got %v", in, err)
		}
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte(`{"manifestBundleInfoList": [`)); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := Parse([]byte(`{"manifestBundleInfoList": "nope"}`)); err == nil {
		t.Fatalf("expected error for wrong type")
	}
}

func TestParseFile_Missing(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nope.json")
	_, err := ParseFile(p)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	if strings.Contains(err.Error(), p) {
		t.Fatalf("error repeats the path: %v", err)
	}
}

func TestParseFile_InvalidDoesNotNamePath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(p, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ParseFile(p)
	if err == nil || strings.Contains(err.Error(), p) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDiscover_SortedAndFiltered(t *testing.T) {
	root := t.TempDir()
	files := []string{
		filepath.Join("b", "Main.json"),
		filepath.Join("a", "Main.json"),
		filepath.Join("a", "readme.txt"),
		"asset_name_index.json",
	}
	for _, f := range files {
		p := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Discover(root, "", "asset_name_index.json")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{
		filepath.Join(root, "a", "Main.json"),
		filepath.Join(root, "b", "Main.json"),
	}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestDiscover_NotADirectory(t *testing.T) {
	p := filepath.Join(t.TempDir(), "file.json")
	if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Discover(p, ""); err == nil {
		t.Fatalf("expected error")
	}
}
