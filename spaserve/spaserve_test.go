package spaserve

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html":     {Data: []byte("<html>app</html>")},
		"main.wasm":      {Data: []byte("wasm")},
		"assets/app.css": {Data: []byte("body{}")},
	}
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServeRoot(t *testing.T) {

	h := New(testFS(), Options{Logger: quietLogger})

	tclist := []struct {
		target string
		status int
		body   string
	}{
		{"/", http.StatusOK, "<html>app</html>"},
		{"/about", http.StatusOK, "<html>app</html>"},
		{"/about/detail/42", http.StatusOK, "<html>app</html>"},
		{"/assets", http.StatusOK, "<html>app</html>"},
		{"/main.wasm", http.StatusOK, "wasm"},
		{"/assets/app.css", http.StatusOK, "body{}"},
		{"/assets/missing.css", http.StatusNotFound, ""},
	}

	for _, tc := range tclist {
		t.Run(tc.target, func(t *testing.T) {
			rec := get(h, tc.target)
			assert.Equal(t, tc.status, rec.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, rec.Body.String())
			}
		})
	}
}

func TestServeBase(t *testing.T) {
	assert := assert.New(t)

	h := New(testFS(), Options{Base: "/app/", Logger: quietLogger})

	rec := get(h, "/app/about/detail/42")
	assert.Equal(http.StatusOK, rec.Code)
	assert.Equal("<html>app</html>", rec.Body.String())
	assert.Equal("text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	rec = get(h, "/app/main.wasm")
	assert.Equal(http.StatusOK, rec.Code)
	assert.Equal("wasm", rec.Body.String())

	rec = get(h, "/elsewhere")
	assert.Equal(http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/app/about", nil))
	assert.Equal(http.StatusMethodNotAllowed, rec.Code)
}

func TestServeMissingIndex(t *testing.T) {
	h := New(fstest.MapFS{}, Options{Index: "shell.html", Logger: quietLogger})
	rec := get(h, "/about")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
