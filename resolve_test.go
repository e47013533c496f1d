package qrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {

	tbl := MustBuildTable(exampleRoutes())

	type tcase struct {
		path     string
		realPath string
		chain    []string // FullPath of each matched record
		params   PathParamList
	}

	tclist := []tcase{
		{"/", "/", []string{"/"}, nil},
		{"/about", "/about", []string{"/about"}, nil},
		{"/about/", "/about", []string{"/about"}, nil},
		{"/about/detail/42", "/about/detail/:id", []string{"/about", "/about/detail/:id"}, PathParamList{{Key: "id", Value: "42"}}},
	}

	for _, tc := range tclist {
		t.Run(tc.path, func(t *testing.T) {
			assert := assert.New(t)

			cr, ok := Resolve(tbl, tc.path)
			require.True(t, ok)
			assert.Equal(tc.path, cr.Path)
			assert.Equal(tc.realPath, cr.RealPath)
			assert.Equal(tc.params, cr.Params)
			assert.False(cr.NotFound)

			var chain []string
			for _, rec := range cr.Matched {
				chain = append(chain, rec.FullPath)
			}
			assert.Equal(tc.chain, chain)
			assert.True(cr.Matched[0].IsRoot())
			assert.Equal(tc.realPath, cr.Leaf().FullPath)
		})
	}

}

func TestResolveDetail(t *testing.T) {
	assert := assert.New(t)

	tbl := MustBuildTable(exampleRoutes())
	cr, ok := Resolve(tbl, "/about/detail/42")
	require.True(t, ok)

	require.Len(t, cr.Matched, 2)
	assert.Same(aboutComp, cr.Matched[0].Component)
	assert.Same(detailComp, cr.Matched[1].Component)
	assert.Equal("42", cr.Params.ByName("id"))
}

func TestResolveFirstMatchWins(t *testing.T) {
	assert := assert.New(t)

	byID := &testComp{name: "by-id"}
	latest := &testComp{name: "latest"}

	tbl := MustBuildTable([]RouteDef{
		{Path: "/posts/:id", Component: byID},
		{Path: "/posts/latest", Component: latest},
	})
	cr, ok := Resolve(tbl, "/posts/latest")
	require.True(t, ok)
	assert.Equal("/posts/:id", cr.RealPath)
	assert.Equal("latest", cr.Params.ByName("id"))

	// same patterns, declared the other way around
	tbl = MustBuildTable([]RouteDef{
		{Path: "/posts/latest", Component: latest},
		{Path: "/posts/:id", Component: byID},
	})
	cr, ok = Resolve(tbl, "/posts/latest")
	require.True(t, ok)
	assert.Equal("/posts/latest", cr.RealPath)
	assert.Empty(cr.Params)
}

func TestResolveNoMatch(t *testing.T) {
	assert := assert.New(t)

	tbl := MustBuildTable(exampleRoutes())
	for _, p := range []string{"/nothing", "/about/detail", "/about/detail/42/more", "/aboutx"} {
		cr, ok := Resolve(tbl, p)
		assert.False(ok, p)
		assert.Nil(cr, p)
	}

	_, ok := Resolve(nil, "/")
	assert.False(ok)
}

func TestResolveSkipsEmptyPattern(t *testing.T) {
	assert := assert.New(t)

	tbl := MustBuildTable([]RouteDef{
		{Path: ""},
		{Path: "/", Component: homeComp},
	})
	assert.Equal([]string{"", "/"}, tbl.Keys())

	cr, ok := Resolve(tbl, "/")
	require.True(t, ok)
	assert.Equal("/", cr.RealPath)
}

func TestResolveRootChildren(t *testing.T) {
	assert := assert.New(t)

	layout := &testComp{name: "layout"}
	page := &testComp{name: "page"}

	// "/" + "/" + "page" gives the key "//page", which matches "/page"
	tbl := MustBuildTable([]RouteDef{
		{Path: "/", Component: layout, Children: []RouteDef{{Path: "page", Component: page}}},
	})
	assert.Equal([]string{"/", "//page"}, tbl.Keys())

	cr, ok := Resolve(tbl, "/page")
	require.True(t, ok)
	assert.Equal("//page", cr.RealPath)
	require.Len(t, cr.Matched, 2)
	assert.Same(layout, cr.Matched[0].Component)
	assert.Same(page, cr.Matched[1].Component)
}
