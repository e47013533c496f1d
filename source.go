package qrouter

import (
	"errors"
	"path"
	"strings"
)

// ErrOutsideBase is returned by a NavSource when the browser path is not under
// the configured base.  The router treats such a path as not found.
var ErrOutsideBase = errors.New("path is outside of base")

// NavSource provides the current logical path and notifies when it changes.
// BrowserSource is the implementation used in the browser; MemorySource
// can be used outside of it.
type NavSource interface {
	// CurrentPath returns the path to resolve, without query or fragment.
	CurrentPath() (string, error)
	// Listen registers f to be called after each navigation.
	Listen(f func()) error
}

// MemorySource is a NavSource which keeps the path in memory.
// Go changes the path and calls the listeners synchronously.
type MemorySource struct {
	p         string
	listeners []func()
}

// NewMemorySource returns a MemorySource positioned at p.
func NewMemorySource(p string) *MemorySource {
	return &MemorySource{p: p}
}

// CurrentPath implements NavSource.
func (s *MemorySource) CurrentPath() (string, error) { return s.p, nil }

// Listen implements NavSource.
func (s *MemorySource) Listen(f func()) error {
	s.listeners = append(s.listeners, f)
	return nil
}

// Go sets the path and notifies listeners, like a popstate would in a browser.
func (s *MemorySource) Go(p string) {
	s.p = p
	for _, f := range s.listeners {
		f()
	}
}

// fragmentPath turns a location hash like "#/about?x=1" into "/about".
func fragmentPath(hash string) string {
	p := strings.TrimPrefix(hash, "#")
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return path.Clean("/" + p)
}

// stripBase removes base from the front of p.  It reports false, with p
// unchanged, when p is not under base.
func stripBase(base, p string) (string, bool) {
	if base == "" || base == "/" {
		return p, true
	}
	if p == base {
		return "/", true
	}
	if strings.HasPrefix(p, base+"/") {
		return p[len(base):], true
	}
	return p, false
}

// cleanBase normalizes a configured base to "" or "/something" without a trailing slash.
func cleanBase(base string) string {
	if base == "" {
		return ""
	}
	b := path.Clean("/" + base)
	if b == "/" {
		return ""
	}
	return b
}
