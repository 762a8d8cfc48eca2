package manifest

import "errors"

// ErrNoBundles indicates a manifest decoded cleanly but carried no bundle list.
var ErrNoBundles = errors.New("manifest has no bundle list")
