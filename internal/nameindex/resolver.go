package nameindex

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// ResolverOptions configures a Resolver.
type ResolverOptions struct {
	// Path is the index file; defaults to FileName in the working directory.
	Path string
	// Encrypted marks the file as sealed at rest. Decrypt must then be set.
	Encrypted bool
	Decrypt   Decrypter
	// ReadFile defaults to os.ReadFile.
	ReadFile ReadFunc
}

// Resolver answers name to path lookups from an index loaded once, on
// demand. The loaded index is never modified, so Resolve takes no lock.
type Resolver struct {
	opts  ResolverOptions
	index atomic.Pointer[Index]

	mu      sync.Mutex
	loading *loadCall
}

type loadCall struct {
	done chan struct{}
	err  error
}

// NewResolver returns a Resolver that has not loaded anything yet.
func NewResolver(opts ResolverOptions) *Resolver {
	if opts.Path == "" {
		opts.Path = FileName
	}
	if opts.ReadFile == nil {
		opts.ReadFile = os.ReadFile
	}
	return &Resolver{opts: opts}
}

// NewDataResolver returns a Resolver for the index deployed under dataDir.
func NewDataResolver(dataDir string, encrypted bool, decrypt Decrypter) *Resolver {
	return NewResolver(ResolverOptions{
		Path:      filepath.Join(dataDir, FileName),
		Encrypted: encrypted,
		Decrypt:   decrypt,
	})
}

// Initialize loads the index unless it is already loaded.
//
// Concurrent callers share a single load: one of them reads the file and the
// rest wait for its result. A failed load leaves the Resolver empty and the
// next call tries again. ctx only bounds how long a caller waits.
func (r *Resolver) Initialize(ctx context.Context) error {
	if r.index.Load() != nil {
		return nil
	}

	r.mu.Lock()
	if r.index.Load() != nil {
		r.mu.Unlock()
		return nil
	}
	if c := r.loading; c != nil {
		r.mu.Unlock()
		select {
		case <-c.done:
			return c.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		r.mu.Unlock()
		return err
	}
	c := &loadCall{done: make(chan struct{})}
	r.loading = c
	r.mu.Unlock()

	idx, err := r.load()

	r.mu.Lock()
	if err == nil {
		r.index.Store(&idx)
	}
	r.loading = nil
	r.mu.Unlock()

	c.err = err
	close(c.done)
	return err
}

func (r *Resolver) load() (Index, error) {
	var decrypt Decrypter
	if r.opts.Encrypted {
		if r.opts.Decrypt == nil {
			return nil, fmt.Errorf("%w: %s is encrypted but no decrypter is configured", ErrLoad, r.opts.Path)
		}
		decrypt = r.opts.Decrypt
	}
	return load(r.opts.ReadFile, r.opts.Path, decrypt)
}

// Loaded reports whether Initialize has succeeded.
func (r *Resolver) Loaded() bool { return r.index.Load() != nil }

// Len returns the number of loaded names, 0 before Initialize succeeds.
func (r *Resolver) Len() int {
	if p := r.index.Load(); p != nil {
		return len(*p)
	}
	return 0
}

// Resolve returns the full path for name. The second result is false when
// name is not in the index or the index has not been loaded.
func (r *Resolver) Resolve(name string) (string, bool) {
	p := r.index.Load()
	if p == nil {
		return "", false
	}
	return p.Lookup(name)
}

// ResolveOrLiteral returns the mapped path for name, or name itself when
// the index does not know it, so it can still be used as a direct path.
func (r *Resolver) ResolveOrLiteral(name string) string {
	if path, ok := r.Resolve(name); ok {
		return path
	}
	return name
}
