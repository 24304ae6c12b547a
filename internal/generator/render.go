package generator

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-folio/internal/collections"
	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/routes"
	"github.com/goliatone/go-folio/internal/site"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// Page layouts.
const (
	LayoutHome  = "home"
	LayoutList  = "list"
	LayoutEntry = "entry"
)

const (
	dayLayout   = "Jan 2, 2006"
	monthLayout = "Jan 2006"
)

//go:embed templates/*.html
var defaultTemplates embed.FS

var errUnknownLayout = errors.New("generator: unknown layout")

// ErrRouteConflict reports two sources rendering to the same output file.
var ErrRouteConflict = errors.New("generator: route conflict")

// HTMLRenderer renders the page layouts with html/template. Each layout is
// its own template set built from base.html, item.html and <layout>.html.
type HTMLRenderer struct {
	overrides fs.FS

	mu      sync.RWMutex
	layouts map[string]*template.Template
}

var _ interfaces.TemplateRenderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer parses the embedded layouts. Files present in overrides
// replace the embedded file of the same name.
func NewHTMLRenderer(overrides fs.FS) (*HTMLRenderer, error) {
	renderer := &HTMLRenderer{overrides: overrides}
	if err := renderer.Reload(); err != nil {
		return nil, err
	}
	return renderer, nil
}

// Reload parses the layouts again so edits to override files take effect.
// On failure the previously parsed layouts stay in use.
func (r *HTMLRenderer) Reload() error {
	layouts := make(map[string]*template.Template, 3)
	for _, layout := range []string{LayoutHome, LayoutList, LayoutEntry} {
		tmpl := template.New(layout)
		for _, name := range []string{"base.html", "item.html", layout + ".html"} {
			src, err := r.read(name)
			if err != nil {
				return err
			}
			if _, err := tmpl.New(name).Parse(string(src)); err != nil {
				return fmt.Errorf("generator: parse template %s: %w", name, err)
			}
		}
		layouts[layout] = tmpl
	}

	r.mu.Lock()
	r.layouts = layouts
	r.mu.Unlock()
	return nil
}

func (r *HTMLRenderer) read(name string) ([]byte, error) {
	if r.overrides != nil {
		data, err := fs.ReadFile(r.overrides, name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("generator: read template %s: %w", name, err)
		}
	}
	return defaultTemplates.ReadFile("templates/" + name)
}

// Render executes the named layout.
func (r *HTMLRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.mu.RLock()
	tmpl, ok := r.layouts[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", errUnknownLayout, name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return "", fmt.Errorf("generator: render %s: %w", name, err)
	}
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func (r *HTMLRenderer) Templates() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.layouts))
	for name := range r.layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PageView is the data every layout receives.
type PageView struct {
	Site        site.Site
	Socials     []site.Social
	Title       string
	Description string
	Canonical   string
	EntryScript string
	Year        int

	Section site.Metadata
	Groups  []GroupView
	Items   []ItemView
	Entry   *EntryView
}

// GroupView is one homepage block: a section header and its newest items.
type GroupView struct {
	Title string
	URL   string
	Items []ItemView
}

// ItemView is a single line of a listing.
type ItemView struct {
	Title       string
	Description string
	URL         string
	Dates       string
}

// EntryView is the body of an entry page.
type EntryView struct {
	Title     string
	Subtitle  string
	Dates     string
	Link      string
	LinkLabel string
	Body      template.HTML
}

// pageJob is a page waiting to be rendered.
type pageJob struct {
	Layout     string
	Route      string
	Collection string
	EntryID    string
	// Source names what produced the page, a content file for entries.
	Source       string
	LastModified time.Time
	View         PageView
}

type viewBuilder struct {
	registry    *site.Registry
	resolver    *routes.Resolver
	entryScript string
	year        int
}

func (b viewBuilder) base(title, description, canonical string) PageView {
	return PageView{
		Site:        b.registry.Site,
		Socials:     b.registry.Socials(),
		Title:       title,
		Description: description,
		Canonical:   canonical,
		EntryScript: b.entryScript,
		Year:        b.year,
	}
}

// plan lists every page of the site: the homepage, one index per
// collection and one page per published entry.
func (b viewBuilder) plan(lib *content.Library) ([]pageJob, error) {
	var jobs []pageJob

	home, err := b.homeJob(lib)
	if err != nil {
		return nil, err
	}
	jobs = append(jobs, home)

	for _, collection := range lib.Collections() {
		meta, err := b.registry.Section(collection)
		if err != nil {
			return nil, err
		}
		sectionURL, err := b.resolver.Section(collection)
		if err != nil {
			return nil, err
		}
		entries := lib.Published(collection)
		items, err := b.items(entries)
		if err != nil {
			return nil, err
		}
		view := b.base(meta.Title, meta.Description, sectionURL)
		view.Section = meta
		view.Items = items
		jobs = append(jobs, pageJob{
			Layout:       LayoutList,
			Route:        b.resolver.Path(sectionURL),
			Collection:   collection,
			Source:       collection + " index",
			LastModified: newest(entries),
			View:         view,
		})

		for _, entry := range entries {
			job, err := b.entryJob(entry)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, job)
		}
	}
	if err := checkOutputs(jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// checkOutputs fails when two jobs map onto the same output file, naming
// both sources. Nested IDs flattened with dashes and sibling .md/.mdx files
// can collide.
func checkOutputs(jobs []pageJob) error {
	seen := make(map[string]string, len(jobs))
	var errs []error
	for _, job := range jobs {
		out := routes.OutputFile(job.Route)
		if prev, ok := seen[out]; ok {
			errs = append(errs, fmt.Errorf("%w: %s and %s both render %s", ErrRouteConflict, prev, job.Source, out))
			continue
		}
		seen[out] = job.Source
	}
	return errors.Join(errs...)
}

func (b viewBuilder) homeJob(lib *content.Library) (pageJob, error) {
	homeURL, err := b.resolver.Section(routes.RouteHome)
	if err != nil {
		return pageJob{}, err
	}
	homepage := lib.Homepage(b.registry)
	groups := []struct {
		collection string
		entries    []*content.Entry
	}{
		{collections.Blog, homepage.Posts},
		{collections.Work, homepage.Works},
		{collections.Projects, homepage.Projects},
		{collections.Talks, homepage.Talks},
	}

	view := b.base(b.registry.Home.Title, b.registry.Home.Description, homeURL)
	view.Section = b.registry.Home
	var lastModified time.Time
	for _, group := range groups {
		if len(group.entries) == 0 {
			continue
		}
		meta, err := b.registry.Section(group.collection)
		if err != nil {
			return pageJob{}, err
		}
		sectionURL, err := b.resolver.Section(group.collection)
		if err != nil {
			return pageJob{}, err
		}
		items, err := b.items(group.entries)
		if err != nil {
			return pageJob{}, err
		}
		view.Groups = append(view.Groups, GroupView{Title: meta.Title, URL: sectionURL, Items: items})
		if ts := newest(group.entries); ts.After(lastModified) {
			lastModified = ts
		}
	}
	return pageJob{
		Layout:       LayoutHome,
		Route:        b.resolver.Path(homeURL),
		Source:       "home page",
		LastModified: lastModified,
		View:         view,
	}, nil
}

func (b viewBuilder) items(entries []*content.Entry) ([]ItemView, error) {
	items := make([]ItemView, 0, len(entries))
	for _, entry := range entries {
		url, err := b.resolver.Entry(entry.Collection, entry.Slug)
		if err != nil {
			return nil, err
		}
		items = append(items, ItemView{
			Title:       entry.Title(),
			Description: entry.Description(),
			URL:         url,
			Dates:       entryDates(entry),
		})
	}
	return items, nil
}

func (b viewBuilder) entryJob(entry *content.Entry) (pageJob, error) {
	url, err := b.resolver.Entry(entry.Collection, entry.Slug)
	if err != nil {
		return pageJob{}, err
	}
	body := &EntryView{
		Title: entry.Title(),
		Dates: entryDates(entry),
		Body:  template.HTML(entry.BodyHTML),
	}
	switch entry.Collection {
	case collections.Work:
		body.Subtitle = entry.Record.String("role")
	case collections.Projects:
		body.Subtitle = entry.Record.String("summary")
		body.Link = entry.Record.String("repoURL")
		body.LinkLabel = "Repository"
	case collections.Talks:
		body.Link = entry.Record.String("url")
		body.LinkLabel = "Slides"
	default:
		body.Subtitle = entry.Description()
	}

	view := b.base(entry.Title(), entry.Description(), url)
	view.Entry = body
	return pageJob{
		Layout:       LayoutEntry,
		Route:        b.resolver.Path(url),
		Collection:   entry.Collection,
		EntryID:      entry.ID,
		Source:       entry.FilePath,
		LastModified: entry.LastModified,
		View:         view,
	}, nil
}

// entryDates formats the date line of an entry. Work entries show a
// month range whose end may be a label such as "Present".
func entryDates(entry *content.Entry) string {
	if entry.Collection == collections.Work {
		start := entry.Record.Time("dateStart")
		end := entry.Record.DateOrLabel("dateEnd")
		parts := []string{}
		if !start.IsZero() {
			parts = append(parts, start.Format(monthLayout))
		}
		if label := end.Format(monthLayout); label != "" {
			parts = append(parts, label)
		}
		return strings.Join(parts, " - ")
	}
	date := entry.Date()
	if date.IsZero() {
		return ""
	}
	return date.Format(dayLayout)
}

func newest(entries []*content.Entry) time.Time {
	var ts time.Time
	for _, entry := range entries {
		if entry.LastModified.After(ts) {
			ts = entry.LastModified
		}
	}
	return ts
}
