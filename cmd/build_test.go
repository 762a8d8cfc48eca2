package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/kamusis/assetindex/internal/config"
	"github.com/kamusis/assetindex/internal/manifest"
	"github.com/kamusis/assetindex/internal/nameindex"
	"github.com/kamusis/assetindex/internal/sealed"
)

// setupProject writes a config and a build tree with two configured
// manifests and one unrelated JSON file.
func setupProject(t *testing.T) (*config.Config, string) {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("ASSETINDEX_ENCRYPT", "")
	t.Setenv("ASSETINDEX_IDENTITY", "")

	build := filepath.Join(tmp, "Build", "Android")
	writeTestManifest(t, filepath.Join(build, "Main", "Main.json"), "Assets/Characters/player.prefab", "Assets/UI/icon.png")
	writeTestManifest(t, filepath.Join(build, "DLC", "DLC.json"), "Assets/DLC/UI/icon.png", "Assets/DLC/boss.prefab")
	writeTestManifest(t, filepath.Join(build, "Tools", "settings.json"), "Assets/Tools/hidden.asset")

	cfg := config.DefaultConfig()
	cfg.BuildPath = build
	cfg.DataPath = filepath.Join(tmp, "StreamingAssets")
	cfg.Configurations = []string{"DLC", "Main"}
	cfgPath := filepath.Join(tmp, "assetindex.yaml")
	if err := config.Save(cfgPath, cfg); err != nil {
		t.Fatal(err)
	}

	resetFlags()
	flagConfig = cfgPath
	t.Cleanup(resetFlags)
	return cfg, tmp
}

func resetFlags() {
	flagConfig = ""
	flagVerbose = false
	flagBuildRoot = ""
	flagBuildDiff = false
	flagBuildStrict = false
	flagBuildDryRun = false
	flagDeployDestName = ""
	flagResolveIndex = ""
	flagResolveLiteral = false
}

func writeTestManifest(t *testing.T, path string, assets ...string) {
	t.Helper()
	b, err := json.Marshal(manifest.Root{Bundles: []manifest.Record{{Name: filepath.Base(path), Assets: assets}}})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}
}

func testCmd() *cobra.Command {
	c := &cobra.Command{}
	c.SetContext(context.Background())
	return c
}

func TestBuildDeployResolve(t *testing.T) {
	cfg, _ := setupProject(t)

	if err := runBuild(testCmd(), nil); err != nil {
		t.Fatalf("runBuild: %v", err)
	}
	built, err := nameindex.LoadFile(filepath.Join(cfg.BuildPath, nameindex.FileName), nil)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	// DLC/DLC.json sorts before Main/Main.json, so the DLC icon wins.
	if built["icon.png"] != "Assets/DLC/UI/icon.png" {
		t.Fatalf("unexpected icon.png mapping: %q", built["icon.png"])
	}
	if _, ok := built["hidden.asset"]; ok {
		t.Fatalf("unconfigured manifest was indexed")
	}

	if err := runDeploy(testCmd(), nil); err != nil {
		t.Fatalf("runDeploy: %v", err)
	}
	path, err := selectIndexPath(cfg, "")
	if err != nil {
		t.Fatalf("selectIndexPath: %v", err)
	}
	if path != filepath.Join(cfg.DataPath, nameindex.FileName) {
		t.Fatalf("expected deployed index to be preferred, got %s", path)
	}

	r, err := newResolver(cfg, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if got := r.ResolveOrLiteral("player.prefab"); got != "Assets/Characters/player.prefab" {
		t.Fatalf("unexpected path %q", got)
	}
	if err := runResolve(testCmd(), []string{"player.prefab", "missing.png"}); err != nil {
		t.Fatalf("runResolve: %v", err)
	}
}

func TestBuild_StrictFailsOnCollision(t *testing.T) {
	setupProject(t)
	flagBuildStrict = true
	err := runBuild(testCmd(), nil)
	if err == nil || !strings.Contains(err.Error(), "1 duplicate name") {
		t.Fatalf("expected strict failure, got %v", err)
	}
}

func TestDeploy_MissingIndexIsNotAnError(t *testing.T) {
	setupProject(t)
	if err := runDeploy(testCmd(), nil); err != nil {
		t.Fatalf("runDeploy: %v", err)
	}
}

func TestBuild_EncryptedEndToEnd(t *testing.T) {
	cfg, tmp := setupProject(t)

	keyFile := filepath.Join(tmp, "keys", "index.key")
	flagKeygenOut = keyFile
	t.Cleanup(func() { flagKeygenOut = "" })
	if err := runKeygen(testCmd(), nil); err != nil {
		t.Fatalf("runKeygen: %v", err)
	}
	if err := runKeygen(testCmd(), nil); err == nil {
		t.Fatalf("keygen must not overwrite an identity")
	}
	identity, err := sealed.LoadIdentityFile(keyFile)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(keyFile)
	pub := strings.TrimPrefix(strings.SplitN(string(b), "\n", 2)[0], "# public key: ")

	cfg.EncryptManifest = true
	cfg.Recipients = []string{pub}
	cfg.IdentityFile = keyFile
	if err := config.Save(flagConfig, cfg); err != nil {
		t.Fatal(err)
	}

	if err := runBuild(testCmd(), nil); err != nil {
		t.Fatalf("runBuild: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(cfg.BuildPath, nameindex.FileName))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "player.prefab") {
		t.Fatalf("encrypted index contains plaintext")
	}

	dec, err := sealed.NewDecrypter(identity)
	if err != nil {
		t.Fatal(err)
	}
	idx, err := nameindex.LoadFile(filepath.Join(cfg.BuildPath, nameindex.FileName), dec)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if idx["boss.prefab"] != "Assets/DLC/boss.prefab" {
		t.Fatalf("unexpected mapping %v", idx)
	}
}

func TestPathTree(t *testing.T) {
	tr := newPathTree("index")
	tr.insert("Assets/UI/icon.png")
	tr.insert("Assets/UI/logo.png")
	tr.insert("Assets/Characters/player.prefab")
	out := tr.render()
	for _, want := range []string{"index", "Assets", "UI", "icon.png", "logo.png", "player.prefab"} {
		if !strings.Contains(out, want) {
			t.Fatalf("tree missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "Assets") != 1 {
		t.Fatalf("directory repeated:\n%s", out)
	}
}

func TestBuild_ConfigurationNameInRootMatchesNothing(t *testing.T) {
	cfg, _ := setupProject(t)
	// BuildPath ends in Build/Android.
	cfg.Configurations = []string{"Android"}
	if err := config.Save(flagConfig, cfg); err != nil {
		t.Fatal(err)
	}

	if err := runBuild(testCmd(), nil); err != nil {
		t.Fatalf("runBuild: %v", err)
	}
	idx, err := nameindex.LoadFile(filepath.Join(cfg.BuildPath, nameindex.FileName), nil)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if idx.Len() != 0 {
		t.Fatalf("root path must not satisfy a configuration, got %v", idx)
	}
	if !strings.Contains(buildCmd.Long, "relative to\nthe scanned root") {
		t.Fatalf("build help does not describe relative matching")
	}
}
