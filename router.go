package qrouter

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// EventEnv is our view of a Vugu EventEnv
type EventEnv interface {
	Lock()         // acquire write lock
	UnlockOnly()   // release write lock
	UnlockRender() // release write lock and request re-render
}

// Mode selects where the logical path is kept in the browser URL.
type Mode string

const (
	// ModeHistory uses the URL path, e.g. "/app/about".
	ModeHistory Mode = "history"
	// ModeHash uses the URL fragment, e.g. "/index.html#/about".
	ModeHash Mode = "hash"
)

// ErrInvalidMode is returned for a Mode other than ModeHistory or ModeHash.
var ErrInvalidMode = errors.New("invalid router mode")

// ParseMode converts s to a Mode.  An empty string means ModeHistory.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeHistory:
		return ModeHistory, nil
	case ModeHash:
		return ModeHash, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Options configures a Router.
type Options struct {
	Mode   Mode       // ModeHistory if empty
	Base   string     // prefix of the app in history mode, e.g. "/app"
	Routes []RouteDef // route tree, order is match precedence

	// Source provides the current path.  If nil a BrowserSource is created for Mode and Base.
	Source NavSource

	// EventEnv, if set, is locked while the route changes and asked to re-render afterward.
	EventEnv EventEnv

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Router keeps the current route for the application and the render pass used by Views.
type Router struct {
	mode Mode
	base string

	table  *RouteTable
	source NavSource

	eventEnv        EventEnv
	notFoundHandler RouteHandler
	logger          *slog.Logger

	route *CurrentRoute
	pass  *RenderPass
}

// MustNew is like New but panics upon error.
func MustNew(opts Options) *Router {
	r, err := New(opts)
	if err != nil {
		panic(err)
	}
	return r
}

// New builds the route table, subscribes to navigation events of the source
// and resolves the current path.  If the current path cannot be read "/" is used.
func New(opts Options) (*Router, error) {

	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}

	table, err := BuildTable(opts.Routes)
	if err != nil {
		return nil, err
	}

	r := &Router{
		mode:     mode,
		base:     cleanBase(opts.Base),
		table:    table,
		source:   opts.Source,
		eventEnv: opts.EventEnv,
		logger:   opts.Logger,
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.source == nil {
		r.source = NewBrowserSource(mode, r.base)
	}

	if err := r.source.Listen(r.handleNavigation); err != nil {
		return nil, fmt.Errorf("listening for navigation: %w", err)
	}

	r.resolve()

	return r, nil
}

// Table returns the route table built from Options.Routes.
func (r *Router) Table() *RouteTable { return r.table }

// Mode returns the mode the router was created with.
func (r *Router) Mode() Mode { return r.mode }

// Route returns the current route.  It is never nil after New returns;
// an unmatched path gives a route with NotFound set.
func (r *Router) Route() *CurrentRoute { return r.route }

// SetNotFound assigns the handler called when the current path matches no route.
func (r *Router) SetNotFound(rh RouteHandler) {
	r.notFoundHandler = rh
}

// Href returns the anchor target for path p according to the router mode.
func (r *Router) Href(p string) string {
	if r.mode == ModeHash {
		return "#" + p
	}
	if r.base != "" && strings.HasPrefix(p, "/") {
		return r.base + p
	}
	return p
}

// handleNavigation is called by the NavSource for each navigation event.
func (r *Router) handleNavigation() {
	if r.eventEnv != nil {
		r.eventEnv.Lock()
		defer r.eventEnv.UnlockRender()
	}
	r.resolve()
}

// resolve reads the current path and replaces the route.  The render pass is
// reset first so the next View rendered starts at depth 0.
func (r *Router) resolve() {

	r.pass = nil

	p, err := r.source.CurrentPath()
	if errors.Is(err, ErrOutsideBase) {
		r.logger.Warn("path outside of base", "path", p, "base", r.base)
		r.notFound(p)
		return
	}
	if err != nil || p == "" {
		if err != nil {
			r.logger.Warn("reading current path", "error", err)
		}
		p = "/"
	}

	route, ok := Resolve(r.table, p)
	if !ok {
		r.logger.Warn("no route matched", "path", p)
		r.notFound(p)
		return
	}

	r.logger.Debug("route resolved", "path", p, "route", route.RealPath, "depth", len(route.Matched))
	r.route = route
	r.pass = newRenderPass(route)
}

func (r *Router) notFound(p string) {
	r.route = notFoundRoute(p)
	r.pass = newRenderPass(r.route)
	if r.notFoundHandler != nil {
		r.notFoundHandler.RouteHandle(r.route)
	}
}

// RouteHandler implementations are called in response to a route change.
type RouteHandler interface {
	RouteHandle(cr *CurrentRoute)
}

// RouteHandlerFunc implements RouteHandler as a function.
type RouteHandlerFunc func(cr *CurrentRoute)

// RouteHandle implements the RouteHandler interface.
func (f RouteHandlerFunc) RouteHandle(cr *CurrentRoute) { f(cr) }
