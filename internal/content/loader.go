package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-folio/internal/collections"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

var ErrMarkdownServiceRequired = errors.New("content: markdown service is required")

// SlugNormalizer turns an ID segment into a URL slug.
type SlugNormalizer interface {
	Normalize(value string) (string, error)
}

// Option configures a Loader.
type Option func(*Loader)

// WithRegistry replaces the default collection schemas.
func WithRegistry(registry *collections.Registry) Option {
	return func(l *Loader) {
		if registry != nil {
			l.registry = registry
		}
	}
}

// WithSlugNormalizer overrides the go-slug default normalizer.
func WithSlugNormalizer(normalizer SlugNormalizer) Option {
	return func(l *Loader) {
		if normalizer != nil {
			l.slugs = normalizer
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loader validates markdown documents into a Library.
type Loader struct {
	markdown interfaces.MarkdownService
	registry *collections.Registry
	slugs    SlugNormalizer
	logger   interfaces.Logger
}

func NewLoader(markdown interfaces.MarkdownService, opts ...Option) *Loader {
	l := &Loader{
		markdown: markdown,
		registry: collections.DefaultRegistry(),
		slugs:    slug.Default(),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Registry returns the schemas the loader validates against.
func (l *Loader) Registry() *collections.Registry {
	return l.registry
}

// Load reads every document under dir. Documents outside a declared
// collection are skipped with a warning. When any document fails its schema
// the whole load fails with a ValidationReport naming every failure.
func (l *Loader) Load(ctx context.Context, dir string) (*Library, error) {
	if l.markdown == nil {
		return nil, ErrMarkdownServiceRequired
	}
	docs, err := l.markdown.LoadDirectory(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("content: load %s: %w", dir, err)
	}

	lib := newLibrary(l.registry)
	report := &ValidationReport{}
	for _, doc := range docs {
		logger := logging.WithEntryContext(l.logger, doc.Collection, doc.ID, doc.FilePath)
		if !l.registry.Has(doc.Collection) {
			logger.Warn("content.entry.skipped", "reason", "unknown collection")
			lib.skipped = append(lib.skipped, doc.FilePath)
			continue
		}

		entry, err := l.Entry(doc)
		if err != nil {
			schemaErr, ok := collections.AsSchemaError(err)
			if !ok {
				return nil, err
			}
			logger.Error("content.entry.invalid", "fields", schemaErr.Fields())
			report.add(schemaErr)
			continue
		}
		lib.add(entry)
	}

	if err := report.asError(); err != nil {
		return nil, err
	}
	lib.sort()
	l.logger.Info("content.loaded", "entries", lib.Len(), "skipped", len(lib.skipped))
	return lib, nil
}

// Entry validates a single document.
func (l *Loader) Entry(doc *interfaces.Document) (*Entry, error) {
	record, err := l.registry.Validate(doc.Collection, doc.FrontMatter)
	if err != nil {
		if schemaErr, ok := collections.AsSchemaError(err); ok {
			return nil, schemaErr.WithPath(doc.FilePath)
		}
		return nil, err
	}
	return &Entry{
		Collection:   doc.Collection,
		ID:           doc.ID,
		Slug:         l.slugFor(doc.ID),
		FilePath:     doc.FilePath,
		Record:       record,
		Body:         doc.Body,
		BodyHTML:     doc.BodyHTML,
		LastModified: doc.LastModified,
	}, nil
}

// slugFor normalizes each segment of id, keeping the date folders of blog
// posts intact.
func (l *Loader) slugFor(id string) string {
	segments := strings.Split(id, "/")
	for i, segment := range segments {
		normalized, err := l.slugs.Normalize(segment)
		if err != nil || normalized == "" {
			segments[i] = strings.ToLower(segment)
			continue
		}
		segments[i] = normalized
	}
	return strings.Join(segments, "/")
}
