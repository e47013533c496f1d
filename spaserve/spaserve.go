// Package spaserve serves a Vugu application built for qrouter's history mode.
// Deep links like /app/about/detail/42 have no file behind them, so any GET
// under the base path that does not name a file is answered with the index page
// and the router resolves it in the browser.
package spaserve

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Options configures the handler returned by New.
type Options struct {
	Base   string       // path the app is served under, "/" if empty
	Index  string       // index file name, "index.html" if empty
	Logger *slog.Logger // request log, slog.Default() if nil
}

type handler struct {
	fsys  fs.FS
	index string
	log   *slog.Logger
}

// New returns an http.Handler serving fsys under opts.Base.
// Existing files are served as-is, a missing path with a file extension gives 404,
// everything else gives the index page.  Requests outside of the base path give 404.
func New(fsys fs.FS, opts Options) http.Handler {

	h := &handler{
		fsys:  fsys,
		index: opts.Index,
		log:   opts.Logger,
	}
	if h.index == "" {
		h.index = "index.html"
	}
	if h.log == nil {
		h.log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.GetHead)
	r.Use(h.logRequests)

	base := path.Clean("/" + opts.Base)
	if base == "/" {
		r.Get("/*", h.serve)
		return r
	}

	r.Route(base, func(r chi.Router) {
		r.Get("/*", h.serve)
	})
	return r
}

func (h *handler) serve(w http.ResponseWriter, r *http.Request) {

	rel := strings.TrimPrefix(path.Clean("/"+chi.URLParam(r, "*")), "/")
	if rel == "" {
		h.serveIndex(w, r)
		return
	}

	if !fs.ValidPath(rel) {
		http.NotFound(w, r)
		return
	}

	fi, err := fs.Stat(h.fsys, rel)
	switch {
	case err == nil && !fi.IsDir():
		http.ServeFileFS(w, r, h.fsys, rel)
		return
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		h.log.Error("stat failed", "path", rel, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	case err != nil && path.Ext(rel) != "":
		http.NotFound(w, r)
		return
	}

	h.serveIndex(w, r)
}

func (h *handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	b, err := fs.ReadFile(h.fsys, h.index)
	if err != nil {
		h.log.Error("reading index", "index", h.index, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(b)
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
