//go:build !windows

package nameindex

// POSIX rename does not care about open handles, so one attempt is enough.
func cleanupBackup(backup string) error {
	if backup == "" {
		return nil
	}
	return removeBackup(backup)
}
