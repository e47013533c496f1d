package rgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleManifest = `package: routes
imports:
  - github.com/example/app/pages
  - about github.com/example/app/pages/about-section
routes:
  - path: /
    name: Home
    component: pages.Home
  - path: /about
    component: about.About
    children:
      - path: detail/:id
        component: about.Detail
  - path: /plain
`

func TestManifestSource(t *testing.T) {
	assert := assert.New(t)

	m, err := ParseManifest(strings.NewReader(exampleManifest))
	require.NoError(t, err)
	require.Len(t, m.Routes, 3)
	assert.Equal("detail/:id", m.Routes[1].Children[0].Path)

	b, err := m.Source()
	require.NoError(t, err)
	src := string(b)
	t.Logf("OUTPUT:\n%s", src)

	assert.True(strings.HasPrefix(src, "package routes\n"))
	assert.Contains(src, `"github.com/example/app/pages"`)
	assert.Contains(src, `about "github.com/example/app/pages/about-section"`)
	assert.Contains(src, "func MakeRoutes() []qrouter.RouteDef {")
	assert.Contains(src, `{Path: "/", Name: "Home", Component: &pages.Home{}}`)
	assert.Contains(src, `Path: "/about", Component: &about.About{}, Children: []qrouter.RouteDef{`)
	assert.Contains(src, `{Path: "detail/:id", Component: &about.Detail{}}`)
	assert.Contains(src, `{Path: "/plain"}`)
}

func TestManifestInvalid(t *testing.T) {

	tclist := []struct {
		name string
		in   string
	}{
		{"no package", "routes:\n  - path: /\n"},
		{"bad package", "package: 9lives\n"},
		{"unknown field", "package: routes\nroutez: []\n"},
		{"unknown qualifier", "package: routes\nroutes:\n  - path: /\n    component: other.Home\n"},
		{"bad component", "package: routes\nroutes:\n  - path: /\n    component: Home-Page\n"},
		{"bad child pattern", "package: routes\nroutes:\n  - path: /a\n    children:\n      - path: ':id/:id'\n"},
		{"duplicate import name", "package: routes\nimports:\n  - example.com/a/x\n  - example.com/b/x\n"},
		{"bad import", "package: routes\nimports:\n  - a b c\n"},
		{"unused import", "package: routes\nimports:\n  - github.com/example/app/pages\nroutes:\n  - path: /\n    component: Home\n"},
	}

	for _, tc := range tclist {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseManifest(strings.NewReader(tc.in))
			assert.Error(t, err)
		})
	}
}

func TestManifestUnusedImport(t *testing.T) {
	m := &Manifest{
		Package: "routes",
		Imports: []string{"github.com/example/app/pages", "about github.com/example/app/about"},
		Routes:  []ManifestRoute{{Path: "/", Component: "pages.Home"}},
	}
	err := m.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, errManifest)
	assert.Contains(t, err.Error(), "github.com/example/app/about")

	_, err = m.Source()
	assert.ErrorIs(t, err, errManifest)

	m.Routes = append(m.Routes, ManifestRoute{Path: "/about", Component: "about.About"})
	assert.NoError(t, m.Validate())
}

func TestGenerateManifest(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "routes.yaml")
	out := filepath.Join(dir, "routes_qrgen.go")
	require.NoError(t, os.WriteFile(in, []byte(exampleManifest), 0644))

	require.NoError(t, GenerateManifest(in, out))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), "&about.Detail{}")

	assert.Error(t, GenerateManifest(filepath.Join(dir, "missing.yaml"), out))
}
