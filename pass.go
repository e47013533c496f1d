package qrouter

import "github.com/vugu/vugu"

// RenderPass hands out the components of one route to the Views of a single build.
// Each View takes the next level of the matched chain, so Views must be built
// one at a time, parent before child, within a pass.
type RenderPass struct {
	route *CurrentRoute
	depth int
}

func newRenderPass(route *CurrentRoute) *RenderPass {
	return &RenderPass{route: route}
}

// Route returns the route this pass renders.
func (p *RenderPass) Route() *CurrentRoute { return p.route }

// Depth returns the number of components handed out so far.
func (p *RenderPass) Depth() int { return p.depth }

// Next returns the component at the current depth and moves to the next level.
// Nothing is consumed if there is no record at this depth or it has no component.
func (p *RenderPass) Next() (vugu.Builder, bool) {
	c, ok := ComponentAt(p.route, p.depth)
	if ok {
		p.depth++
	}
	return c, ok
}

// ComponentAt returns the component of route.Matched[depth], if there is one.
func ComponentAt(route *CurrentRoute, depth int) (vugu.Builder, bool) {
	if route == nil || depth < 0 || depth >= len(route.Matched) {
		return nil, false
	}
	c := route.Matched[depth].Component
	if c == nil {
		return nil, false
	}
	return c, true
}

// BeginPass starts a new render pass for the current route and returns it.
func (r *Router) BeginPass() *RenderPass {
	r.pass = newRenderPass(r.route)
	return r.pass
}

// Pass returns the render pass in progress, starting one if needed.
func (r *Router) Pass() *RenderPass {
	if r.pass == nil {
		return r.BeginPass()
	}
	return r.pass
}

// Root wraps the root component of the application so that every build
// starts a new render pass.  Use the result in place of the root component:
//
//	buildResults := buildEnv.RunBuild(router.Root(rootBuilder))
func (r *Router) Root(b vugu.Builder) vugu.Builder {
	return &passRoot{router: r, root: b}
}

type passRoot struct {
	router *Router
	root   vugu.Builder
}

func (pr *passRoot) Build(in *vugu.BuildIn) *vugu.BuildOut {
	pr.router.BeginPass()
	return pr.root.Build(in)
}
