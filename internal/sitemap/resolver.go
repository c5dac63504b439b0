package sitemap

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// BaseResolver resolves routes against a fixed site base URL. Path
// segments of the form ":name" are substituted from the route parameters;
// parameters that do not match a placeholder become query parameters, in
// sorted order so resolution is deterministic.
type BaseResolver struct {
	baseURL string
}

// NewBaseResolver creates a resolver for the given base URL. A trailing
// slash on the base is ignored.
func NewBaseResolver(baseURL string) *BaseResolver {
	return &BaseResolver{baseURL: strings.TrimRight(baseURL, "/")}
}

// ResolveAbsoluteURL implements Resolver.
func (r *BaseResolver) ResolveAbsoluteURL(route Route) (string, error) {
	if r.baseURL == "" {
		return "", fmt.Errorf("resolve %q: base URL is empty", route.Path)
	}

	segments := strings.Split(strings.TrimLeft(route.Path, "/"), "/")
	used := make(map[string]bool, len(route.Params))

	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		name := seg[1:]
		value, ok := route.Params[name]
		if !ok {
			return "", fmt.Errorf("route %q: no value for parameter %q", route.Path, name)
		}
		segments[i] = url.PathEscape(value)
		used[name] = true
	}

	resolved := r.baseURL + "/" + strings.Join(segments, "/")

	extra := make([]string, 0, len(route.Params))
	for name := range route.Params {
		if !used[name] {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		query := url.Values{}
		for _, name := range extra {
			query.Set(name, route.Params[name])
		}
		resolved += "?" + query.Encode()
	}

	return resolved, nil
}
