package folio

import (
	"context"

	"github.com/goliatone/go-folio/internal/collections"
	contentcmd "github.com/goliatone/go-folio/internal/commands/content"
	schemacmd "github.com/goliatone/go-folio/internal/commands/schemas"
	staticcmd "github.com/goliatone/go-folio/internal/commands/static"
	workspacecmd "github.com/goliatone/go-folio/internal/commands/workspace"
	"github.com/goliatone/go-folio/internal/di"
	"github.com/goliatone/go-folio/internal/generator"
	"github.com/goliatone/go-folio/internal/reactivity"
	"github.com/goliatone/go-folio/internal/redirects"
	"github.com/goliatone/go-folio/internal/site"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// GeneratorService exports the static site generator contract.
type GeneratorService = generator.Service

// BuildResult exports the outcome of a site build.
type BuildResult = generator.BuildResult

// ContentSummary exports the per-collection counts of a validated content tree.
type ContentSummary = contentcmd.Summary

// ProjectDir exports the outcome of a project directory lookup.
type ProjectDir = workspacecmd.Resolution

// RedirectRule exports a single redirect.
type RedirectRule = redirects.Rule

// Option customises module construction.
type Option = di.Option

var (
	WithLoggerProvider = di.WithLoggerProvider
	WithContentFS      = di.WithContentFS
	WithPublicFS       = di.WithPublicFS
	WithTemplate       = di.WithTemplate
	WithWorkspaceFS    = di.WithWorkspaceFS
)

// Module represents the top level folio runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a folio module using the provided configuration and optional overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Config returns the configuration the module was built from.
func (m *Module) Config() Config {
	return m.container.Config
}

// Logger returns a module-scoped logger.
func (m *Module) Logger(module string) interfaces.Logger {
	return m.container.Logger(module)
}

// Site returns the site metadata registry.
func (m *Module) Site() *site.Registry {
	return m.container.Site()
}

// Collections returns the content schema registry.
func (m *Module) Collections() *collections.Registry {
	return m.container.Collections()
}

// Redirects returns the redirect table.
func (m *Module) Redirects() *redirects.Table {
	return m.container.Redirects()
}

// Reactivity returns the client reactivity registry.
func (m *Module) Reactivity() *reactivity.Registry {
	return m.container.Reactivity()
}

// Generator returns the static site generator.
func (m *Module) Generator() GeneratorService {
	return m.container.GeneratorService()
}

// ValidateContent checks every document of the content directory against
// its collection schema.
func (m *Module) ValidateContent(ctx context.Context) (ContentSummary, error) {
	var summary ContentSummary
	err := m.container.Handlers().ValidateContent.Execute(ctx, contentcmd.ValidateContentCommand{
		Directory:      di.ContentRoot,
		ResultCallback: func(s contentcmd.Summary) { summary = s },
	})
	return summary, err
}

// BuildSite renders the site into the output directory, or only renders it
// when dryRun is set.
func (m *Module) BuildSite(ctx context.Context, dryRun bool) (*BuildResult, error) {
	var result *BuildResult
	err := m.container.Handlers().BuildSite.Execute(ctx, staticcmd.BuildSiteCommand{
		DryRun: dryRun,
		ResultCallback: func(env staticcmd.ResultEnvelope) {
			result = env.Result
		},
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CleanSite empties the output directory.
func (m *Module) CleanSite(ctx context.Context) error {
	return m.container.Handlers().CleanSite.Execute(ctx, staticcmd.CleanSiteCommand{})
}

// ExportSchemas writes one JSON Schema per collection into dir and returns
// the written file names.
func (m *Module) ExportSchemas(ctx context.Context, dir string, names ...string) ([]string, error) {
	var files []string
	err := m.container.Handlers().ExportSchemas.Execute(ctx, schemacmd.ExportSchemasCommand{
		OutputDir:      dir,
		Collections:    names,
		ResultCallback: func(written []string) { files = written },
	})
	return files, err
}

// ResolveProjectDir locates projectName inside the configured workspace.
// A nil projectName resolves to a ProjectDir with Found unset.
func (m *Module) ResolveProjectDir(ctx context.Context, projectName *string) (ProjectDir, error) {
	ws := m.container.Config.Workspace
	var resolution ProjectDir
	err := m.container.Handlers().ResolveProjectDir.Execute(ctx, workspacecmd.ResolveProjectDirCommand{
		ProjectName:    projectName,
		Root:           ws.Root,
		LibsDir:        ws.LibsDir,
		ResultCallback: func(r workspacecmd.Resolution) { resolution = r },
	})
	return resolution, err
}
