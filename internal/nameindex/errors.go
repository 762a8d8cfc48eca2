package nameindex

import "errors"

var (
	// ErrWrite indicates the index file could not be produced.
	ErrWrite = errors.New("cannot write name index")

	// ErrLoad indicates the index file could not be read, decrypted or decoded.
	ErrLoad = errors.New("cannot load name index")

	// ErrLockTimeout indicates another build holds the output lock.
	ErrLockTimeout = errors.New("another build holds the index lock")
)
