package reactivity

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"text/template"
)

// Registry is an in-process Library. The build uses it to learn which data
// sources the browser entrypoint must declare.
type Registry struct {
	sources map[string]DataFactory
}

func NewRegistry() *Registry {
	return &Registry{sources: map[string]DataFactory{}}
}

// Data registers factory under name. Later registrations replace earlier
// ones, like the browser library does.
func (r *Registry) Data(name string, factory DataFactory) {
	r.sources[name] = factory
}

// New returns a fresh state for the named source.
func (r *Registry) New(name string) (any, bool) {
	factory, ok := r.sources[name]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// Names lists registered sources alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

//go:embed entry.js.tmpl
var entryTemplate string

var entry = template.Must(template.New("alpine-entry").Parse(entryTemplate))

// EntryFile is the name of the emitted browser entrypoint.
const EntryFile = "alpine-entry.js"

// EntryScript renders the browser module that performs the same
// registration as Initialize.
func (r *Registry) EntryScript() ([]byte, error) {
	if _, ok := r.sources[DataName]; !ok {
		return nil, fmt.Errorf("reactivity: data source %q not registered", DataName)
	}
	var buf bytes.Buffer
	err := entry.Execute(&buf, map[string]any{
		"DataName":    DataName,
		"BindingName": BindingName,
		"Binding":     PageLoadBinding,
		"Initial":     initialPageLoaded,
	})
	if err != nil {
		return nil, fmt.Errorf("reactivity: render entry: %w", err)
	}
	return buf.Bytes(), nil
}
