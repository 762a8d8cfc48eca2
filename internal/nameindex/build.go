package nameindex

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/zeebo/blake3"

	"github.com/kamusis/assetindex/internal/manifest"
	"github.com/kamusis/assetindex/internal/manifest/match"
)

// DefaultLockTimeout bounds how long Build waits for a concurrent build.
const DefaultLockTimeout = 30 * time.Second

// BuildOptions controls an index build.
type BuildOptions struct {
	// Root is the build output directory scanned for manifests.
	Root string
	// Configurations selects which discovered manifests are indexed.
	Configurations match.Set
	// Pattern is the manifest base-name pattern; defaults to *.json.
	Pattern string
	// Derive maps asset paths to short names; defaults to BaseName.
	Derive Derive
	// Workers bounds parallel manifest parsing; defaults to GOMAXPROCS.
	Workers int
	// OutPath is the index file; defaults to Root/FileName.
	OutPath string
	// Encrypt, when set, seals the encoded index before it is written.
	Encrypt Encrypter
	// DryRun skips writing the output file.
	DryRun      bool
	LockTimeout time.Duration
	Logger      *slog.Logger
}

// Report summarizes one build. Skipped, Failures, Collisions and Unnamed
// are the non-fatal events; Index is what was written.
type Report struct {
	OutPath    string
	Included   []string
	Skipped    []string
	Failures   []FileError
	Collisions []Collision
	Unnamed    []UnnamedAsset
	Index      Index
	// Encoded is the plaintext encoding of Index.
	Encoded []byte
	// Digest is the blake3 hex digest of the bytes written to OutPath.
	Digest  string
	Written bool
}

type parsed struct {
	records []manifest.Record
	err     error
}

// Build scans opts.Root for manifests, merges every asset path into one
// name index and writes it to opts.OutPath.
//
// Manifests are parsed in parallel but merged in sorted path order, so when
// a short name is seen again the entry from the lexically first manifest
// (and earlier within that manifest) is kept and every later one is reported
// as a Collision, even when it repeats the same path. Unreadable manifests
// are reported in Failures and asset paths that yield no name in Unnamed.
// Only a failure to write the output is returned as an error.
func Build(ctx context.Context, opts BuildOptions) (*Report, error) {
	if opts.Root == "" {
		return nil, fmt.Errorf("build path is required")
	}
	derive := opts.Derive
	if derive == nil {
		derive = BaseName
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	outPath := opts.OutPath
	if outPath == "" {
		outPath = filepath.Join(opts.Root, FileName)
	}

	files, err := manifest.Discover(opts.Root, opts.Pattern, filepath.Base(outPath))
	if err != nil {
		return nil, err
	}

	report := &Report{OutPath: outPath}
	for _, f := range files {
		rel, err := filepath.Rel(opts.Root, f)
		if err != nil {
			rel = f
		}
		if m, ok := opts.Configurations.Match(rel); ok {
			log.Info("processing manifest", "file", f, "matched", m.String())
			report.Included = append(report.Included, f)
			continue
		}
		log.Debug("skipping manifest", "file", f)
		report.Skipped = append(report.Skipped, f)
	}

	results, err := parseAll(ctx, report.Included, opts.Workers)
	if err != nil {
		return nil, err
	}

	idx := Index{}
	origin := map[string]string{}
	for i, file := range report.Included {
		res := results[i]
		if res.err != nil {
			log.Error("cannot process manifest", "file", file, "err", res.err)
			report.Failures = append(report.Failures, FileError{Path: file, Err: res.err})
			continue
		}
		for _, rec := range res.records {
			for _, assetPath := range rec.Assets {
				name := derive(assetPath)
				if name == "" {
					log.Warn("asset path has no name", "file", file, "path", assetPath)
					report.Unnamed = append(report.Unnamed, UnnamedAsset{Path: assetPath, File: file})
					continue
				}
				existing, ok := idx[name]
				if !ok {
					idx[name] = assetPath
					origin[name] = file
					continue
				}
				log.Error("duplicate asset name", "name", name, "kept", existing, "rejected", assetPath)
				report.Collisions = append(report.Collisions, Collision{
					Name:         name,
					Kept:         existing,
					Rejected:     assetPath,
					KeptFile:     origin[name],
					RejectedFile: file,
				})
			}
		}
	}
	report.Index = idx

	encoded, err := Encode(idx)
	if err != nil {
		return nil, err
	}
	report.Encoded = encoded

	data := encoded
	if opts.Encrypt != nil {
		data, err = opts.Encrypt(encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: encrypt: %v", ErrWrite, err)
		}
	}
	sum := blake3.Sum256(data)
	report.Digest = hex.EncodeToString(sum[:])

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.DryRun {
		return report, nil
	}

	timeout := opts.LockTimeout
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	unlock, err := Lock(outPath, timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer unlock()

	if err := WriteFile(outPath, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	report.Written = true
	log.Info("name index written", "path", outPath, "names", len(idx), "digest", report.Digest)
	return report, nil
}

// parseAll parses files with at most workers goroutines. results[i] belongs
// to files[i] regardless of completion order.
func parseAll(ctx context.Context, files []string, workers int) ([]parsed, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]parsed, len(files))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, f string) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := ctx.Err(); err != nil {
				results[i] = parsed{err: err}
				return
			}
			records, err := manifest.ParseFile(f)
			results[i] = parsed{records: records, err: err}
		}(i, f)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// IsEmptyManifest reports whether err came from a manifest that decoded to
// no bundles, as opposed to an I/O or syntax error.
func IsEmptyManifest(err error) bool {
	return errors.Is(err, manifest.ErrNoBundles)
}
