package content

import (
	"sort"

	"github.com/goliatone/go-folio/internal/collections"
	"github.com/goliatone/go-folio/internal/site"
)

// Library holds validated entries per collection, newest first.
type Library struct {
	registry *collections.Registry
	entries  map[string][]*Entry
	skipped  []string
}

func newLibrary(registry *collections.Registry) *Library {
	return &Library{registry: registry, entries: map[string][]*Entry{}}
}

// NewLibrary builds a library from already validated entries.
func NewLibrary(registry *collections.Registry, entries ...*Entry) *Library {
	if registry == nil {
		registry = collections.DefaultRegistry()
	}
	lib := newLibrary(registry)
	for _, entry := range entries {
		lib.add(entry)
	}
	lib.sort()
	return lib
}

func (l *Library) add(entry *Entry) {
	l.entries[entry.Collection] = append(l.entries[entry.Collection], entry)
}

func (l *Library) sort() {
	for _, entries := range l.entries {
		sort.SliceStable(entries, func(i, j int) bool {
			di, dj := entries[i].Date(), entries[j].Date()
			if !di.Equal(dj) {
				return di.After(dj)
			}
			return entries[i].ID < entries[j].ID
		})
	}
}

// Collections lists collection names in declaration order.
func (l *Library) Collections() []string {
	return l.registry.Names()
}

// All returns every entry of a collection, drafts included.
func (l *Library) All(collection string) []*Entry {
	return append([]*Entry(nil), l.entries[collection]...)
}

// Published returns the non-draft entries of a collection.
func (l *Library) Published(collection string) []*Entry {
	var out []*Entry
	for _, entry := range l.entries[collection] {
		if !entry.Draft() {
			out = append(out, entry)
		}
	}
	return out
}

// Lookup finds an entry by collection and ID.
func (l *Library) Lookup(collection, id string) (*Entry, bool) {
	for _, entry := range l.entries[collection] {
		if entry.ID == id {
			return entry, true
		}
	}
	return nil, false
}

// Len counts every entry, drafts included.
func (l *Library) Len() int {
	total := 0
	for _, entries := range l.entries {
		total += len(entries)
	}
	return total
}

// Skipped lists files that sat outside any declared collection.
func (l *Library) Skipped() []string {
	return append([]string(nil), l.skipped...)
}

// Homepage is the newest published entries of each section.
type Homepage struct {
	Posts    []*Entry
	Works    []*Entry
	Projects []*Entry
	Talks    []*Entry
}

// Homepage slices the published entries using the site's homepage counts.
func (l *Library) Homepage(reg *site.Registry) Homepage {
	take := func(collection string) []*Entry {
		entries := l.Published(collection)
		n := reg.HomepageCount(collection)
		if n < len(entries) {
			entries = entries[:n]
		}
		return entries
	}
	return Homepage{
		Posts:    take(collections.Blog),
		Works:    take(collections.Work),
		Projects: take(collections.Projects),
		Talks:    take(collections.Talks),
	}
}
