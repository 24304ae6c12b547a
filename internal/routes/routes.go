// Package routes builds the public URLs of sections and entries with a
// go-urlkit route manager.
package routes

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

// GroupName is the urlkit group holding every site route.
const GroupName = "site"

// Route names.
const (
	RouteHome         = "home"
	RouteBlog         = "blog"
	RouteWork         = "work"
	RouteProjects     = "projects"
	RouteTalks        = "talks"
	RouteBlogDated    = "blog.dated"
	RouteBlogEntry    = "blog.entry"
	RouteWorkEntry    = "work.entry"
	RouteProjectEntry = "projects.entry"
	RouteTalkEntry    = "talks.entry"
	RouteRSS          = "rss"
)

// Paths maps route names to their templates.
var Paths = map[string]string{
	RouteHome:         "/",
	RouteBlog:         "/blog",
	RouteWork:         "/work",
	RouteProjects:     "/projects",
	RouteTalks:        "/talks",
	RouteBlogDated:    "/blog/:year/:month/:day/:slug",
	RouteBlogEntry:    "/blog/:slug",
	RouteWorkEntry:    "/work/:slug",
	RouteProjectEntry: "/projects/:slug",
	RouteTalkEntry:    "/talks/:slug",
	RouteRSS:          "/rss.xml",
}

var datedSlug = regexp.MustCompile(`^(\d{4})/(\d{2})/(\d{2})/([^/]+)$`)

// Resolver turns route names and entry slugs into URLs.
type Resolver struct {
	manager *urlkit.RouteManager
	group   *urlkit.Group
	baseURL string
}

// New builds a resolver whose absolute URLs start with baseURL.
func New(baseURL string) (*Resolver, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("routes: base URL %q must be absolute", baseURL)
	}

	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    GroupName,
				BaseURL: base,
				Paths:   Paths,
			},
		},
	})
	group, err := lookupGroup(manager, GroupName)
	if err != nil {
		return nil, err
	}
	return &Resolver{manager: manager, group: group, baseURL: base}, nil
}

// BaseURL returns the origin URLs are built on.
func (r *Resolver) BaseURL() string { return r.baseURL }

// Build renders a route with params into an absolute URL.
func (r *Resolver) Build(route string, params map[string]any) (string, error) {
	builder, err := safeBuilder(r.group, route)
	if err != nil {
		return "", err
	}
	for key, value := range params {
		builder.WithParam(key, value)
	}
	built, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("routes: build %s: %w", route, err)
	}
	return built, nil
}

// Section returns the absolute URL of a section index ("home", "blog", ...).
func (r *Resolver) Section(name string) (string, error) {
	if _, ok := Paths[name]; !ok || strings.Contains(name, ".") {
		return "", fmt.Errorf("routes: unknown section %q", name)
	}
	return r.Build(name, nil)
}

// Entry returns the absolute URL of an entry. Blog slugs shaped
// YYYY/MM/DD/name keep their date folders; other nested slugs are flattened
// with dashes.
func (r *Resolver) Entry(collection, slug string) (string, error) {
	slug = strings.Trim(slug, "/")
	if slug == "" {
		return "", fmt.Errorf("routes: empty slug for %s", collection)
	}
	if collection == RouteBlog {
		if m := datedSlug.FindStringSubmatch(slug); m != nil {
			return r.Build(RouteBlogDated, map[string]any{
				"year": m[1], "month": m[2], "day": m[3], "slug": m[4],
			})
		}
	}
	route := collection + ".entry"
	if _, ok := Paths[route]; !ok {
		return "", fmt.Errorf("routes: no entry route for collection %q", collection)
	}
	return r.Build(route, map[string]any{"slug": strings.ReplaceAll(slug, "/", "-")})
}

// Path strips the origin from an absolute URL built by the resolver.
func (r *Resolver) Path(absolute string) string {
	parsed, err := url.Parse(absolute)
	if err != nil || parsed.Path == "" {
		return "/"
	}
	return parsed.Path
}

// OutputFile maps a URL path onto the file a static host serves for it.
// Paths with an extension are served as-is; others become directory
// indexes.
func OutputFile(urlPath string) string {
	clean := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if clean == "" {
		return "index.html"
	}
	if path.Ext(clean) != "" {
		return clean
	}
	return path.Join(clean, "index.html")
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("routes: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("routes: route %q not found: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("routes: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}
