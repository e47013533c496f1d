package qrouter

import "net/url"

// PathParam is parameter key/value pair extracted from a URL path.
type PathParam struct {
	Key   string
	Value string
}

// PathParamList is a slice of PathParam, in the order the params appear in the route pattern.
type PathParamList []PathParam

// ByName returns the named parameter value or an empty string if not found.
func (ps PathParamList) ByName(name string) string {
	for i := range ps {
		if ps[i].Key == name {
			return ps[i].Value
		}
	}
	return ""
}

// Values returns the params as url.Values, suitable for Link.Params.
func (ps PathParamList) Values() url.Values {
	if len(ps) == 0 {
		return nil
	}
	ret := make(url.Values, len(ps))
	for _, p := range ps {
		ret.Set(p.Key, p.Value)
	}
	return ret
}
