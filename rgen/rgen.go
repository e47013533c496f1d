package rgen

import (
	"bytes"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/mod/modfile"
	"mvdan.cc/gofumpt/format"
)

// OutputFileName is the name of the file written into each package directory.
const OutputFileName = "0_routes_qrgen.go"

// LayoutFileName marks a directory as a nested route.  Its component becomes the parent
// of the routes in the directory and should contain a qrouter.View.
const LayoutFileName = "layout.vugu"

// ErrIndexWithLayout is returned when a directory has both layout.vugu and index.vugu.
// The index route would be shadowed by the layout route, which is registered first.
var ErrIndexWithLayout = errors.New("index.vugu cannot be used next to " + LayoutFileName)

// New returns a new Generator instance.
func New() *Generator {
	return &Generator{}
}

// Generator performs route generation on a given directory (and optionally sub-directories)
type Generator struct {
	dir         string                           // starting directory
	recursive   bool                             // if true we will descend into directories
	packageName string                           // fully qualified package name corresponding to dir
	pathFunc    func(fileName string) string     // function derive path from file or struct name
	includeFunc func(path, fileName string) bool // function to determine if a file should be included
}

// SetDir assigns the directory to start generating in.
func (g *Generator) SetDir(dir string) *Generator {
	g.dir = dir
	return g
}

// SetRecursive if passed true will enable the generator recursing
// into sub-directories.
func (g *Generator) SetRecursive(recursive bool) *Generator {
	g.recursive = recursive
	return g
}

// SetPackageName sets the fully qualified package name that corresponds
// with the directory set with SetDir.
func (g *Generator) SetPackageName(packageName string) *Generator {
	g.packageName = packageName
	return g
}

// SetPathFunc sets a function which transforms a file name into a route path.
// If not set, DefaultPathFunc will be used.
func (g *Generator) SetPathFunc(f func(fileName string) string) *Generator {
	g.pathFunc = f
	return g
}

// SetIncludeFunc sets the function which determines which files become routes.
// The include function will be passed the path relative to the dir set by SetDir (and will be empty
// for files in that directory) and fileName will contain the base file name.  E.g. given SetDir("/a")
// "/a/b.vugu" will result in a call with ("", "b.vugu"), and "/a/b/c.vugu" will result in a call
// with ("b", "c.vugu"), "/a/b/c/d.vugu" with ("b/c", "d.vugu") and so on.
// Layout files are detected separately and never passed here.
func (g *Generator) SetIncludeFunc(f func(path, fileName string) bool) *Generator {
	g.includeFunc = f
	return g
}

// DefaultPathFunc will return the fileName with any suffix removed and a slash prepended.
// E.g. file name "example.vugu" will return "/example".  The special case of index.vugu
// will return "/".
func DefaultPathFunc(fileName string) string {
	if fileName == "index.vugu" {
		return "/"
	}
	return "/" + strings.TrimSuffix(fileName, path.Ext(fileName))
}

// DefaultIncludeFunc will return true for any file which ends with .vugu.
func DefaultIncludeFunc(path, fileName string) bool {
	return strings.HasSuffix(fileName, ".vugu")
}

// Generate does the route generation.
func (g *Generator) Generate() error {

	// to keep our sanity we need to guarantee that g.dir is absolute
	dir, err := filepath.Abs(g.dir)
	if err != nil {
		return err
	}
	g.dir = dir

	// auto-detect g.packageName as needed
	if g.packageName == "" {
		g.packageName, err = guessImportPath(dir)
		if err != nil {
			return err
		}
	}

	df, err := g.readDirf(g.dir)
	if err != nil {
		return err
	}

	return g.writeRoutes(df)
}

func (g *Generator) readDirf(dirPath string) (*dirf, error) {

	includeFunc := g.includeFunc
	if includeFunc == nil {
		includeFunc = DefaultIncludeFunc
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(g.dir, dirPath)
	if err != nil {
		return nil, fmt.Errorf("relative path conversion failed: %w", err)
	}
	rel = strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(rel)), "/")

	ret := &dirf{
		path: rel,
	}

	for _, fi := range entries {

		if fi.IsDir() {
			if !g.recursive {
				continue
			}
			subdirf, err := g.readDirf(filepath.Join(dirPath, fi.Name()))
			if err != nil {
				return nil, err
			}
			if subdirf.empty() {
				continue
			}
			if ret.subdirs == nil {
				ret.subdirs = make(map[string]*dirf)
			}
			ret.subdirs[fi.Name()] = subdirf
			continue
		}

		if fi.Name() == LayoutFileName {
			ret.hasLayout = true
			continue
		}

		if includeFunc(rel, fi.Name()) {
			ret.fileNames = append(ret.fileNames, fi.Name())
		}
	}

	if ret.hasLayout && rel != "" {
		for _, fn := range ret.fileNames {
			if fn == "index.vugu" {
				return nil, fmt.Errorf("directory %q: %w", rel, ErrIndexWithLayout)
			}
		}
	}

	return ret, nil

}

type dirf struct {
	path      string           // path relative to g.dir
	fileNames []string         // list of included files
	hasLayout bool             // true if the directory contains LayoutFileName
	subdirs   map[string]*dirf // children
}

func (df *dirf) Path() string { return df.path }

func (df *dirf) HasLayout() bool { return df.hasLayout }

// empty is true if nothing would be generated for df.
func (df *dirf) empty() bool {
	return len(df.fileNames) == 0 && !df.hasLayout && len(df.subdirs) == 0
}

var routesTmpl = template.Must(template.New(OutputFileName).Funcs(template.FuncMap{
	"StructName": structName,
	"HashIdent": func(s string) string {
		return fmt.Sprintf("ident%x", md5.Sum([]byte(s)))
	},
	"PathBase": path.Base,
}).Parse(`package {{.LocalPackage}}

// WARNING: This file was generated by qrouter/rgen. Do not modify.

import (
	"path"
	"strings"

	"github.com/vugu/qrouter"
{{if .Recursive}}{{range $k, $subdir := .Subdirs}}	{{HashIdent (printf "%s/%s" $.PackageName $subdir.Path)}} "{{$.PackageName}}/{{$subdir.Path}}"
{{end}}{{end}})

type qrroutes struct {
	prefix    string
	recursive bool
	relative  bool
}

// WithRecursive includes the routes of sub-packages.
func (r qrroutes) WithRecursive(v bool) qrroutes {
	r.recursive = v
	return r
}

// WithPrefix puts v in front of every path.
func (r qrroutes) WithPrefix(v string) qrroutes {
	r.prefix = v
	return r
}

// WithRelative returns paths without the leading slash, for use as child routes.
func (r qrroutes) WithRelative(v bool) qrroutes {
	r.relative = v
	return r
}

func (r qrroutes) join(p string) string {
	ret := path.Join("/", r.prefix, p)
	if r.relative {
		ret = strings.TrimPrefix(ret, "/")
	}
	return ret
}

// Defs returns the route definitions for this package.
func (r qrroutes) Defs() []qrouter.RouteDef {
	ret := []qrouter.RouteDef{
{{range $k, $v := .Files}}		{Path: r.join({{printf "%q" $v.Path}}), Component: &{{$v.Struct}}{}},
{{end}}	}
{{if .Recursive}}
	if r.recursive {
{{range $k, $subdir := .Subdirs}}{{$ident := HashIdent (printf "%s/%s" $.PackageName $subdir.Path)}}{{if $subdir.HasLayout}}		ret = append(ret, qrouter.RouteDef{
			Path:      r.join({{printf "%q" (PathBase $subdir.Path)}}),
			Component: &{{$ident}}.Layout{},
			Children:  {{$ident}}.MakeRoutes().WithRecursive(true).WithRelative(true).Defs(),
		})
{{else}}		ret = append(ret, {{$ident}}.MakeRoutes().WithRecursive(true).WithRelative(r.relative).WithPrefix(path.Join(r.prefix, {{printf "%q" (PathBase $subdir.Path)}})).Defs()...)
{{end}}{{end}}	}
{{end}}
	return ret
}

// MakeRoutes returns the routes for this package and any sub-packages as applicable.
func MakeRoutes() qrroutes {
	return qrroutes{}
}
`))

type fileRoute struct {
	Path   string
	Struct string
}

func (g *Generator) writeRoutes(df *dirf) error {

	_, localPackage := path.Split(df.path)
	if localPackage == "" {
		_, localPackage = filepath.Split(g.dir)
	}

	pf := g.pathFunc
	if pf == nil {
		pf = DefaultPathFunc
	}

	files := make([]fileRoute, 0, len(df.fileNames))
	for _, fn := range df.fileNames {
		files = append(files, fileRoute{Path: pf(fn), Struct: structName(fn)})
	}

	cm := map[string]interface{}{
		"LocalPackage": goPackageName(localPackage),
		"PackageName":  g.packageName,
		"Files":        files,
		"Subdirs":      df.subdirs,
		"Recursive":    g.recursive,
	}

	var buf bytes.Buffer
	err := routesTmpl.Execute(&buf, cm)
	if err != nil {
		return err
	}

	b, err := format.Source(buf.Bytes(), format.Options{})
	if err != nil {
		return fmt.Errorf("error formatting routes for %q: %w; full output:\n%s", df.path, err, buf.Bytes())
	}

	fullRouteMapPath := filepath.Join(g.dir, df.path, OutputFileName)

	err = os.WriteFile(fullRouteMapPath, b, 0644)
	if err != nil {
		return err
	}

	if g.recursive {
		// recurse into subdirs
		for _, subdf := range df.subdirs {
			err := g.writeRoutes(subdf)
			if err != nil {
				return fmt.Errorf("error in writeRoutes for %q: %w", subdf.path, err)
			}
		}
	}

	return nil
}

func structName(s string) string {
	return fnameToGoTypeName(s)
}

func fnameToGoTypeName(s string) string {
	s = strings.Split(s, ".")[0] // remove file extension if present
	parts := strings.Split(s, "-")
	for i := range parts {
		p := parts[i]
		if len(p) > 0 {
			p = strings.ToUpper(p[:1]) + p[1:]
		}
		parts[i] = p
	}
	return strings.Join(parts, "")
}

// goPackageName turns a directory name into a usable package clause name.
func goPackageName(dir string) string {
	return strings.ReplaceAll(strings.ReplaceAll(dir, "-", ""), ".", "")
}

func guessImportPath(dir string) (string, error) {

	after := ""
	lastDir := dir

	for {
		f, err := os.Open(filepath.Join(dir, "go.mod"))
		if err == nil {
			defer f.Close()
			ret, err := readModuleEntry(f)
			return ret + after, err
		}

		after = "/" + filepath.Base(dir) + after

		lastDir, dir = dir, filepath.Dir(dir)

		if dir == lastDir { // we hit the root dir
			return "", fmt.Errorf("no go.mod file found, cannot guess import path")
		}
	}

}

func readModuleEntry(r io.Reader) (string, error) {

	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	ret := modfile.ModulePath(b)
	if ret == "" {
		return "", errors.New("unable to determine module path from go.mod")
	}

	return ret, nil
}
