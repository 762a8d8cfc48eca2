//go:build windows

package nameindex

import (
	"time"

	"golang.org/x/sys/windows"
)

const (
	backupRemoveAttempts = 10
	backupRemoveDelay    = 100 * time.Millisecond
)

// cleanupBackup deletes the previous index after a swap. The editor or a
// running player may still hold it open, in which case deletion is handed
// to the OS for the next reboot.
func cleanupBackup(backup string) error {
	if backup == "" {
		return nil
	}
	var err error
	for range backupRemoveAttempts {
		if err = removeBackup(backup); err == nil {
			return nil
		}
		time.Sleep(backupRemoveDelay)
	}
	name, perr := windows.UTF16PtrFromString(backup)
	if perr != nil {
		return err
	}
	if windows.MoveFileEx(name, nil, windows.MOVEFILE_DELAY_UNTIL_REBOOT) != nil {
		return err
	}
	return nil
}
