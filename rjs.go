package qrouter

import (
	"errors"
	"fmt"

	"github.com/vugu/vugu/js"
)

var (
	// ErrNotInBrowser is returned by BrowserSource when there is no js environment.
	ErrNotInBrowser = errors.New("not in browser (js) environment")

	errListenerSet = errors.New("navigation listener already set")
)

// BrowserSource is a NavSource backed by window.location.
// In history mode the path comes from location.pathname and changes are
// signaled by popstate.  In hash mode the path comes from location.hash
// and changes are signaled by hashchange.  Both also listen for load.
type BrowserSource struct {
	mode Mode
	base string

	changeEvent string
	listenFunc  js.Func
}

// NewBrowserSource returns a BrowserSource for the given mode.  For history mode,
// base is removed from the front of location.pathname.
func NewBrowserSource(mode Mode, base string) *BrowserSource {
	s := &BrowserSource{
		mode:        mode,
		base:        cleanBase(base),
		changeEvent: "popstate",
	}
	if mode == ModeHash {
		s.changeEvent = "hashchange"
	}
	return s
}

// CurrentPath implements NavSource.
func (s *BrowserSource) CurrentPath() (string, error) {

	g := js.Global()
	if !g.Truthy() {
		return "", ErrNotInBrowser
	}

	loc := g.Get("window").Get("location")

	if s.mode == ModeHash {
		return fragmentPath(loc.Get("hash").String()), nil
	}

	pathname := loc.Get("pathname").String()
	p, ok := stripBase(s.base, pathname)
	if !ok {
		return pathname, fmt.Errorf("%w: %q (base %q)", ErrOutsideBase, pathname, s.base)
	}
	return p, nil
}

// Listen implements NavSource.  Only one listener can be registered per BrowserSource.
// f is called on its own goroutine so it may block on locks held by the render loop.
func (s *BrowserSource) Listen(f func()) error {

	g := js.Global()
	if !g.Truthy() {
		return ErrNotInBrowser
	}

	if !s.listenFunc.IsUndefined() {
		return errListenerSet
	}

	jf := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		go f()
		return nil
	})

	w := g.Get("window")
	w.Call("addEventListener", s.changeEvent, jf)
	w.Call("addEventListener", "load", jf)

	s.listenFunc = jf

	return nil
}

// Release removes the event listeners added by Listen.
func (s *BrowserSource) Release() error {

	g := js.Global()
	if !g.Truthy() {
		return ErrNotInBrowser
	}

	if s.listenFunc.IsUndefined() {
		return errors.New("navigation listener not set")
	}

	w := g.Get("window")
	w.Call("removeEventListener", s.changeEvent, s.listenFunc)
	w.Call("removeEventListener", "load", s.listenFunc)

	s.listenFunc.Release()
	s.listenFunc = js.Func{}

	return nil
}
