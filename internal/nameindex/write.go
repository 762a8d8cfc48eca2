package nameindex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// WriteFile atomically replaces path with data.
//
// The bytes go to path.tmp first and are synced. Any previous file is moved
// to path.bak, the temp file is renamed into place and the backup removed.
// On rename failure the backup is restored.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create index dir %s: %w", filepath.Dir(path), err)
	}

	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("cannot create temp index %s: %w", tmp, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("cannot write temp index %s: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("cannot sync temp index %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	backup := path + ".bak"
	_ = cleanupBackup(backup)
	hadPrevious := false
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, backup); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("cannot move previous index aside: %w", err)
		}
		hadPrevious = true
	}
	if err := os.Rename(tmp, path); err != nil {
		// rollback best-effort
		if hadPrevious {
			_ = os.Rename(backup, path)
		}
		_ = os.Remove(tmp)
		return fmt.Errorf("cannot replace index %s: %w", path, err)
	}
	if hadPrevious {
		_ = cleanupBackup(backup)
	}
	return nil
}

// removeBackup deletes a leftover backup; an absent one is fine.
func removeBackup(backup string) error {
	if err := os.Remove(backup); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Lock takes an exclusive lock on path.lock, polling until timeout.
// The returned func releases it.
func Lock(path string, timeout time.Duration) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return func() {}, fmt.Errorf("cannot create lock dir: %w", err)
	}
	lockPath := path + ".lock"
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return func() {}, fmt.Errorf("cannot acquire index lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return func() {}, fmt.Errorf("%w (lock: %s)", ErrLockTimeout, lockPath)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
