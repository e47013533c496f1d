package qrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vugu/vugu"
)

// testComp is a minimal component used as a route target.
type testComp struct {
	name string
}

func (c *testComp) Build(vgin *vugu.BuildIn) (vgout *vugu.BuildOut) {
	return &vugu.BuildOut{}
}

var (
	homeComp   = &testComp{name: "home"}
	aboutComp  = &testComp{name: "about"}
	detailComp = &testComp{name: "detail"}
)

func exampleRoutes() []RouteDef {
	return []RouteDef{
		{Path: "/", Name: "Home", Component: homeComp},
		{Path: "/about", Component: aboutComp, Children: []RouteDef{
			{Path: "detail/:id", Component: detailComp},
		}},
	}
}

func TestBuildTable(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	tbl, err := BuildTable(exampleRoutes())
	require.NoError(err)

	assert.Equal([]string{"/", "/about", "/about/detail/:id"}, tbl.Keys())
	assert.Equal(3, tbl.Len())

	home, ok := tbl.Lookup("/")
	require.True(ok)
	assert.Equal("Home", home.Name)
	assert.True(home.IsRoot())
	assert.Nil(tbl.Parent(home))

	about, ok := tbl.Lookup("/about")
	require.True(ok)
	detail, ok := tbl.Lookup("/about/detail/:id")
	require.True(ok)
	assert.Equal("detail/:id", detail.Segment)
	assert.False(detail.IsRoot())
	assert.Same(about, tbl.Parent(detail))
	assert.Same(detailComp, detail.Component)
}

func TestBuildTableDeep(t *testing.T) {
	assert := assert.New(t)

	// a chain of depth 4 with a sibling at every level
	defs := []RouteDef{
		{Path: "/a", Children: []RouteDef{
			{Path: "b", Children: []RouteDef{
				{Path: "c", Children: []RouteDef{
					{Path: ":d"},
				}},
				{Path: "c2"},
			}},
			{Path: "b2"},
		}},
		{Path: "/z"},
	}

	tbl := MustBuildTable(defs)
	assert.Equal([]string{"/a", "/a/b", "/a/b/c", "/a/b/c/:d", "/a/b/c2", "/a/b2", "/z"}, tbl.Keys())

	leaf, _ := tbl.Lookup("/a/b/c/:d")
	var segs []string
	for rec := leaf; rec != nil; rec = tbl.Parent(rec) {
		segs = append([]string{rec.Segment}, segs...)
	}
	assert.Equal([]string{"/a", "b", "c", ":d"}, segs)
}

func TestBuildTableCollision(t *testing.T) {
	assert := assert.New(t)

	first := &testComp{name: "first"}
	second := &testComp{name: "second"}

	tbl := MustBuildTable([]RouteDef{
		{Path: "/x", Component: first},
		{Path: "/y"},
		{Path: "/x", Component: second},
	})

	assert.Equal([]string{"/x", "/y"}, tbl.Keys())
	rec, ok := tbl.Lookup("/x")
	assert.True(ok)
	assert.Same(second, rec.Component)
}

func TestBuildTableEmpty(t *testing.T) {
	tbl, err := BuildTable(nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	_, ok := Resolve(tbl, "/")
	assert.False(t, ok)
}

func TestBuildTableInvalidPattern(t *testing.T) {
	_, err := BuildTable([]RouteDef{
		{Path: "/about", Children: []RouteDef{{Path: ":id/:id"}}},
	})
	assert.ErrorIs(t, err, ErrDuplicateParam)
	assert.Panics(t, func() {
		MustBuildTable([]RouteDef{{Path: "/:"}})
	})
}
