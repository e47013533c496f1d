package qrouter

import (
	"net/url"
	"strings"

	"github.com/vugu/vugu"
)

// View renders the component of the current route at its nesting level.
// The first View built in a pass renders Matched[0], a View inside that
// component renders Matched[1], and so on.  When there is nothing at the
// level it renders nothing.
//
//	<div>
//	    <qrouter:View></qrouter:View>
//	</div>
type View struct {
	RouterRef
}

// Build implements vugu.Builder.
func (v *View) Build(vgin *vugu.BuildIn) (vgout *vugu.BuildOut) {
	vgout = &vugu.BuildOut{}

	if v.Router == nil {
		return vgout
	}

	c, ok := v.Router.Pass().Next()
	if !ok {
		return vgout
	}

	vgout.Components = append(vgout.Components, c)
	vgout.Out = append(vgout.Out, &vugu.VGNode{Component: c})

	return vgout
}

// Link renders an anchor pointing at To.  Params, if given, fill in
// any ":param" parts of To.  Children of the Link are rendered inside the anchor.
//
//	<qrouter:Link To="/about/detail/:id" :Params='url.Values{"id": {"42"}}'>Details</qrouter:Link>
type Link struct {
	RouterRef

	To          string
	Params      url.Values
	DefaultSlot vugu.Builder
}

// Href returns the anchor target.
func (l *Link) Href() string {
	to := l.To
	if len(l.Params) > 0 {
		if mp, err := parseMpath(to); err == nil {
			// a missing param leaves "_" in its place, the link is still rendered
			merged, _, _ := mp.merge(l.Params)
			if !strings.HasPrefix(l.To, "/") {
				merged = strings.TrimPrefix(merged, "/")
			}
			to = merged
		}
	}
	if l.Router == nil {
		return to
	}
	return l.Router.Href(to)
}

// Build implements vugu.Builder.
func (l *Link) Build(vgin *vugu.BuildIn) (vgout *vugu.BuildOut) {
	vgout = &vugu.BuildOut{}

	a := &vugu.VGNode{
		Type: vugu.ElementNode,
		Data: "a",
		Attr: []vugu.VGAttribute{{Key: "href", Val: l.Href()}},
	}
	vgout.Out = append(vgout.Out, a)

	if l.DefaultSlot != nil {
		slotOut := l.DefaultSlot.Build(vgin)
		for _, n := range slotOut.Out {
			a.AppendChild(n)
		}
		vgout.Components = append(vgout.Components, slotOut.Components...)
		vgout.CSS = append(vgout.CSS, slotOut.CSS...)
		vgout.JS = append(vgout.JS, slotOut.JS...)
	}

	return vgout
}
