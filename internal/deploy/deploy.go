// Package deploy stages a built index file into the runtime data directory,
// skipping the copy when the destination already holds identical bytes.
package deploy

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/kamusis/assetindex/internal/nameindex"
)

// Status is the outcome of CopyIndex.
type Status string

const (
	StatusCopied    Status = "copied"
	StatusUnchanged Status = "unchanged"
	// StatusMissing means the source does not exist; nothing was done.
	StatusMissing Status = "missing"
)

// Result is returned by CopyIndex.
type Result struct {
	Status Status
	Source string
	Dest   string
	Digest string // blake3 of the source, empty when missing
}

// CopyIndex copies buildPath/fromName to dataPath/destName. fromName
// defaults to nameindex.FileName and destName to fromName. Intermediate
// directories are created.
//
// A missing source is not an error: the Result carries StatusMissing so the
// caller can warn and carry on without the index.
func CopyIndex(buildPath, dataPath, fromName, destName string) (Result, error) {
	if fromName == "" {
		fromName = nameindex.FileName
	}
	if destName == "" {
		destName = fromName
	}
	res := Result{
		Source: filepath.Join(buildPath, fromName),
		Dest:   filepath.Join(dataPath, destName),
	}

	info, err := os.Stat(res.Source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			res.Status = StatusMissing
			return res, nil
		}
		return res, fmt.Errorf("cannot stat %s: %w", res.Source, err)
	}
	if info.IsDir() {
		return res, fmt.Errorf("source is a directory: %s", res.Source)
	}

	srcSum, err := fileDigest(res.Source)
	if err != nil {
		return res, fmt.Errorf("digest %s: %w", res.Source, err)
	}
	res.Digest = srcSum

	if _, err := os.Stat(res.Dest); err == nil {
		dstSum, err := fileDigest(res.Dest)
		if err != nil {
			return res, fmt.Errorf("digest %s: %w", res.Dest, err)
		}
		if dstSum == srcSum {
			res.Status = StatusUnchanged
			return res, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(res.Dest), 0o755); err != nil {
		return res, fmt.Errorf("cannot create %s: %w", filepath.Dir(res.Dest), err)
	}
	if err := copyFile(res.Source, res.Dest); err != nil {
		return res, fmt.Errorf("copy %s → %s: %w", res.Source, res.Dest, err)
	}
	res.Status = StatusCopied
	return res, nil
}

// fileDigest returns the hex-encoded blake3 digest of the file at path.
func fileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile copies src to dst, preserving permissions.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
