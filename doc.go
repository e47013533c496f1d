/*
Package qrouter is a small client-side router for Vugu applications.

Routes are declared as a tree of RouteDef.  The tree is flattened into a
RouteTable keyed by full path ("/about" with child "detail/:id" gives
"/about" and "/about/detail/:id").  On every navigation event the current
path is matched against the table in declaration order, the first full match
wins, and the chain of records from the top-level route down to the matched
one becomes the current route.

Views render that chain: the first View built renders the top-level
component, a View inside it renders the next level, etc.

	router := qrouter.MustNew(qrouter.Options{
		Mode: qrouter.ModeHistory,
		Routes: []qrouter.RouteDef{
			{Path: "/", Component: &Home{}},
			{Path: "/about", Component: &About{}, Children: []qrouter.RouteDef{
				{Path: "detail/:id", Component: &Detail{}},
			}},
		},
		EventEnv: renderer.EventEnv(),
	})
	qrouter.Install(buildEnv, router)

	for ok := true; ok; ok = renderer.EventWait() {
		buildResults := buildEnv.RunBuild(router.Root(rootBuilder))
		err = renderer.Render(buildResults)
		if err != nil {
			panic(err)
		}
	}
*/
package qrouter
