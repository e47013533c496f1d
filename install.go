package qrouter

import (
	"sync"

	"github.com/vugu/vugu"
)

// RouterRef can be embedded in a component to have the Router injected
// by the wire function set up by Install.
type RouterRef struct {
	*Router
}

// RouterSet implements RouterSetter.
func (h *RouterRef) RouterSet(r *Router) {
	h.Router = r
}

// RouterSetter is implemented by components which want the Router.
type RouterSetter interface {
	RouterSet(*Router)
}

// Wirer is implemented by *vugu.BuildEnv.
type Wirer interface {
	SetWireFunc(f func(c vugu.Builder))
}

var (
	installMu sync.Mutex
	installed bool
)

// Install sets the wire function of w so every component created afterward
// that implements RouterSetter, View and Link included, receives r.
// Only the first call has any effect; later calls return false.
func Install(w Wirer, r *Router) bool {
	installMu.Lock()
	defer installMu.Unlock()

	if installed {
		return false
	}
	installed = true

	w.SetWireFunc(func(c vugu.Builder) {
		if s, ok := c.(RouterSetter); ok {
			s.RouterSet(r)
		}
	})

	return true
}
