package nameindex

import (
	"fmt"
	"os"
)

// ReadFunc reads the raw bytes of an index file.
type ReadFunc func(path string) ([]byte, error)

// LoadFile reads, optionally decrypts and decodes the index at path.
// A nil decrypt means the file is plaintext.
func LoadFile(path string, decrypt Decrypter) (Index, error) {
	return load(os.ReadFile, path, decrypt)
}

func load(read ReadFunc, path string, decrypt Decrypter) (Index, error) {
	data, err := read(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read %s: %w", ErrLoad, path, err)
	}
	if decrypt != nil {
		data, err = decrypt(data)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot decrypt %s: %w", ErrLoad, path, err)
		}
	}
	idx, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	return idx, nil
}
