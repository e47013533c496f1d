package qrouter

// CurrentRoute is the result of resolving a path against a RouteTable.
// A new CurrentRoute is produced for every resolution; it is never modified afterward.
type CurrentRoute struct {
	Path     string         // the path that was resolved
	RealPath string         // the winning route pattern, e.g. "/about/detail/:id"
	Name     string         // name of the matched record, if any
	Params   PathParamList  // values for the params in RealPath
	Matched  []*RouteRecord // root record first, matched record last
	NotFound bool           // true if no route matched Path
}

// Leaf returns the matched record, or nil for a not-found route.
func (cr *CurrentRoute) Leaf() *RouteRecord {
	if cr == nil || len(cr.Matched) == 0 {
		return nil
	}
	return cr.Matched[len(cr.Matched)-1]
}

func notFoundRoute(p string) *CurrentRoute {
	return &CurrentRoute{Path: p, NotFound: true}
}

// Resolve matches currentPath against the patterns of t in registration order.
// The first pattern that matches the whole path wins, no attempt is made to
// find a more specific one.  Returns false if nothing matched.
func Resolve(t *RouteTable, currentPath string) (*CurrentRoute, bool) {

	if t == nil {
		return nil, false
	}

	for _, key := range t.keys {

		if key == "" {
			continue
		}

		e := t.entries[key]
		params, exact, ok := e.mpath.match(currentPath)
		if !ok || !exact {
			continue
		}

		rec := &t.records[e.rec]
		return &CurrentRoute{
			Path:     currentPath,
			RealPath: key,
			Name:     rec.Name,
			Params:   params,
			Matched:  t.chain(rec),
		}, true
	}

	return nil, false
}

// chain walks parent links up from rr and returns the records root first.
func (t *RouteTable) chain(rr *RouteRecord) []*RouteRecord {
	var ret []*RouteRecord
	for rec := rr; rec != nil; rec = t.Parent(rec) {
		ret = append([]*RouteRecord{rec}, ret...)
	}
	return ret
}
