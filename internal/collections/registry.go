package collections

import "fmt"

// Collection names.
const (
	Blog     = "blog"
	Work     = "work"
	Projects = "projects"
	Talks    = "talks"
)

// BlogSchema validates blog posts.
func BlogSchema() Schema {
	return Schema{
		Name: Blog,
		Fields: []Field{
			Required("title", AsString),
			Required("description", AsString),
			Required("date", AsDate),
			Optional("draft", AsBool, false),
		},
	}
}

// WorkSchema validates work history entries. dateEnd is either a date or a
// label such as "Present".
func WorkSchema() Schema {
	return Schema{
		Name: Work,
		Fields: []Field{
			Required("company", AsString),
			Required("role", AsString),
			Required("dateStart", AsDate),
			Required("dateEnd", AsDateOrLabel),
		},
	}
}

// ProjectSchema validates projects.
func ProjectSchema() Schema {
	return Schema{
		Name: Projects,
		Fields: []Field{
			Required("title", AsString),
			Required("date", AsDate),
			Optional("draft", AsBool, false),
			Required("repoURL", AsString),
			Optional("summary", AsString, nil),
		},
	}
}

// TalkSchema validates talks.
func TalkSchema() Schema {
	return Schema{
		Name: Talks,
		Fields: []Field{
			Required("title", AsString),
			Required("date", AsDate),
			Required("url", AsString),
		},
	}
}

// Registry holds the schema of every content collection.
type Registry struct {
	order   []string
	schemas map[string]Schema
}

// NewRegistry builds a registry from schemas, keeping their order. Duplicate
// names are rejected.
func NewRegistry(schemas ...Schema) (*Registry, error) {
	r := &Registry{schemas: make(map[string]Schema, len(schemas))}
	for _, schema := range schemas {
		if schema.Name == "" {
			return nil, fmt.Errorf("collections: schema without a name")
		}
		if _, exists := r.schemas[schema.Name]; exists {
			return nil, fmt.Errorf("collections: duplicate schema %q", schema.Name)
		}
		r.order = append(r.order, schema.Name)
		r.schemas[schema.Name] = schema
	}
	return r, nil
}

// DefaultRegistry returns the blog, work, projects and talks collections.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BlogSchema(), WorkSchema(), ProjectSchema(), TalkSchema())
	if err != nil {
		panic(err)
	}
	return r
}

// Names lists collections in declaration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Lookup returns the schema for a collection.
func (r *Registry) Lookup(name string) (Schema, bool) {
	schema, ok := r.schemas[name]
	return schema, ok
}

// Has reports whether name is a declared collection.
func (r *Registry) Has(name string) bool {
	_, ok := r.schemas[name]
	return ok
}

// Validate validates doc against the named collection.
func (r *Registry) Validate(collection string, doc map[string]any) (Record, error) {
	schema, ok := r.Lookup(collection)
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	return schema.Validate(doc)
}
