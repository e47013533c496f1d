package qrouter

import (
	"fmt"

	"github.com/vugu/vugu"
)

// RouteDef is a route definition as supplied by the application.
// Children paths are relative to their parent, e.g. a child "detail/:id"
// of "/about" is registered as "/about/detail/:id".
type RouteDef struct {
	Path      string       // path segment (or full path at the top level)
	Name      string       // optional name, carried onto the record and the resolved route
	Component vugu.Builder // component rendered by the View at this record's depth, may be nil
	Children  []RouteDef   // nested routes
}

// RouteRecord is the flattened form of a RouteDef.
// Records live in their RouteTable and refer to their parent by index.
type RouteRecord struct {
	FullPath  string
	Segment   string
	Name      string
	Component vugu.Builder

	parent int // index of the enclosing record, -1 for top-level records
}

// IsRoot returns true if the record came from a top-level RouteDef.
func (rr *RouteRecord) IsRoot() bool { return rr.parent < 0 }

// RouteTable maps full path patterns to route records.
// Keys keep the order in which they were first registered,
// and that order is the match precedence.
type RouteTable struct {
	records []RouteRecord
	keys    []string
	entries map[string]tableEntry
}

type tableEntry struct {
	rec   int
	mpath mpath
}

// MustBuildTable is like BuildTable but panics upon error.
func MustBuildTable(defs []RouteDef) *RouteTable {
	t, err := BuildTable(defs)
	if err != nil {
		panic(err)
	}
	return t
}

// BuildTable flattens defs into a RouteTable. Every node of the tree gets one
// entry keyed by the concatenation of its ancestors' segments joined with "/".
// A later definition with the same full path replaces the earlier record
// but keeps its position.
func BuildTable(defs []RouteDef) (*RouteTable, error) {
	t := &RouteTable{
		entries: make(map[string]tableEntry, len(defs)),
	}
	for i := range defs {
		if err := t.add(&defs[i], defs[i].Path, -1); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *RouteTable) add(def *RouteDef, fullPath string, parent int) error {

	mp, err := parseMpath(fullPath)
	if err != nil {
		return fmt.Errorf("route %q: %w", fullPath, err)
	}

	idx := len(t.records)
	t.records = append(t.records, RouteRecord{
		FullPath:  fullPath,
		Segment:   def.Path,
		Name:      def.Name,
		Component: def.Component,
		parent:    parent,
	})

	if _, exists := t.entries[fullPath]; !exists {
		t.keys = append(t.keys, fullPath)
	}
	t.entries[fullPath] = tableEntry{rec: idx, mpath: mp}

	for i := range def.Children {
		child := &def.Children[i]
		if err := t.add(child, fullPath+"/"+child.Path, idx); err != nil {
			return err
		}
	}

	return nil
}

// Len returns the number of entries in the table.
func (t *RouteTable) Len() int { return len(t.keys) }

// Keys returns the full path patterns in match order.
func (t *RouteTable) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Lookup returns the record registered under fullPath.
func (t *RouteTable) Lookup(fullPath string) (*RouteRecord, bool) {
	e, ok := t.entries[fullPath]
	if !ok {
		return nil, false
	}
	return &t.records[e.rec], true
}

// Parent returns the record enclosing rr, or nil for a top-level record.
func (t *RouteTable) Parent(rr *RouteRecord) *RouteRecord {
	if rr == nil || rr.parent < 0 {
		return nil
	}
	return &t.records[rr.parent]
}
