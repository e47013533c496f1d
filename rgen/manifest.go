package rgen

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/vugu/qrouter"
	"gopkg.in/yaml.v3"
	"mvdan.cc/gofumpt/format"
)

// Manifest is a route tree declared in YAML, e.g.:
//
//	package: routes
//	imports:
//	  - github.com/example/app/pages
//	  - about github.com/example/app/pages/about-section
//	routes:
//	  - path: /
//	    name: Home
//	    component: pages.Home
//	  - path: /about
//	    component: about.About
//	    children:
//	      - path: detail/:id
//	        component: about.Detail
//
// Each import is a package path optionally preceded by an alias.  Components
// are type names, qualified by an import alias (or the last element of the
// import path) when they live in another package.
type Manifest struct {
	Package string          `yaml:"package"`
	Imports []string        `yaml:"imports"`
	Routes  []ManifestRoute `yaml:"routes"`
}

// ManifestRoute is one node of the route tree.
type ManifestRoute struct {
	Path      string          `yaml:"path"`
	Name      string          `yaml:"name"`
	Component string          `yaml:"component"`
	Children  []ManifestRoute `yaml:"children"`
}

var errManifest = errors.New("invalid route manifest")

// ParseManifest reads a Manifest from r and validates it.
func ParseManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

type manifestImport struct {
	alias string
	path  string
}

func (m *Manifest) imports() ([]manifestImport, error) {
	ret := make([]manifestImport, 0, len(m.Imports))
	seen := make(map[string]bool, len(m.Imports))
	for _, imp := range m.Imports {
		fields := strings.Fields(imp)
		var mi manifestImport
		switch len(fields) {
		case 1:
			mi = manifestImport{alias: goPackageName(path.Base(fields[0])), path: fields[0]}
		case 2:
			mi = manifestImport{alias: fields[0], path: fields[1]}
		default:
			return nil, fmt.Errorf("%w: import %q", errManifest, imp)
		}
		if !token.IsIdentifier(mi.alias) {
			return nil, fmt.Errorf("%w: import %q has no usable name", errManifest, imp)
		}
		if seen[mi.alias] {
			return nil, fmt.Errorf("%w: import name %q used twice", errManifest, mi.alias)
		}
		seen[mi.alias] = true
		ret = append(ret, mi)
	}
	return ret, nil
}

// Validate checks the package name, imports, components and route patterns.
func (m *Manifest) Validate() error {

	if !token.IsIdentifier(m.Package) {
		return fmt.Errorf("%w: package %q", errManifest, m.Package)
	}

	imps, err := m.imports()
	if err != nil {
		return err
	}
	aliases := make(map[string]bool, len(imps))
	for _, mi := range imps {
		aliases[mi.alias] = true
	}

	used := make(map[string]bool, len(imps))

	var walk func(routes []ManifestRoute, parentPath string) error
	walk = func(routes []ManifestRoute, parentPath string) error {
		for _, rt := range routes {
			full := rt.Path
			if parentPath != "" {
				full = parentPath + "/" + rt.Path
			}
			if err := qrouter.ValidatePattern(full); err != nil {
				return fmt.Errorf("%w: route %q: %v", errManifest, full, err)
			}
			if rt.Component != "" {
				qual, typ, found := strings.Cut(rt.Component, ".")
				if !found {
					qual, typ = "", qual
				}
				if !token.IsIdentifier(typ) || (found && !aliases[qual]) {
					return fmt.Errorf("%w: route %q: component %q", errManifest, full, rt.Component)
				}
				if found {
					used[qual] = true
				}
			}
			if err := walk(rt.Children, full); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(m.Routes, ""); err != nil {
		return err
	}

	// the generated file would not compile with an unused import
	for _, mi := range imps {
		if !used[mi.alias] {
			return fmt.Errorf("%w: import %q is not used by any component", errManifest, mi.path)
		}
	}

	return nil
}

// Source returns the formatted Go source declaring MakeRoutes for the manifest.
func (m *Manifest) Source() ([]byte, error) {

	if err := m.Validate(); err != nil {
		return nil, err
	}

	imps, err := m.imports()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "package %s\n\n", m.Package)
	buf.WriteString("// WARNING: This file was generated by qrouter/rgen. Do not modify.\n\n")
	buf.WriteString("import (\n\t\"github.com/vugu/qrouter\"\n")
	for _, mi := range imps {
		if mi.alias == path.Base(mi.path) {
			fmt.Fprintf(&buf, "\t%s\n", strconv.Quote(mi.path))
			continue
		}
		fmt.Fprintf(&buf, "\t%s %s\n", mi.alias, strconv.Quote(mi.path))
	}
	buf.WriteString(")\n\n")

	buf.WriteString("// MakeRoutes returns the route tree declared in the manifest.\n")
	buf.WriteString("func MakeRoutes() []qrouter.RouteDef {\n\treturn ")
	writeRouteDefs(&buf, m.Routes)
	buf.WriteString("\n}\n")

	b, err := format.Source(buf.Bytes(), format.Options{})
	if err != nil {
		return nil, fmt.Errorf("error formatting manifest routes: %w; full output:\n%s", err, buf.Bytes())
	}
	return b, nil
}

func writeRouteDefs(buf *bytes.Buffer, routes []ManifestRoute) {
	buf.WriteString("[]qrouter.RouteDef{\n")
	for _, rt := range routes {
		fmt.Fprintf(buf, "{Path: %s", strconv.Quote(rt.Path))
		if rt.Name != "" {
			fmt.Fprintf(buf, ", Name: %s", strconv.Quote(rt.Name))
		}
		if rt.Component != "" {
			fmt.Fprintf(buf, ", Component: &%s{}", rt.Component)
		}
		if len(rt.Children) > 0 {
			buf.WriteString(", Children: ")
			writeRouteDefs(buf, rt.Children)
		}
		buf.WriteString("},\n")
	}
	buf.WriteString("}")
}

// GenerateManifest reads the manifest at inFile and writes the generated Go source to outFile.
func GenerateManifest(inFile, outFile string) error {

	f, err := os.Open(inFile)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := ParseManifest(f)
	if err != nil {
		return fmt.Errorf("%s: %w", inFile, err)
	}

	b, err := m.Source()
	if err != nil {
		return err
	}

	return os.WriteFile(outFile, b, 0644)
}
