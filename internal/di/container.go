package di

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-folio/internal/collections"
	"github.com/goliatone/go-folio/internal/commands"
	contentcmd "github.com/goliatone/go-folio/internal/commands/content"
	schemacmd "github.com/goliatone/go-folio/internal/commands/schemas"
	staticcmd "github.com/goliatone/go-folio/internal/commands/static"
	workspacecmd "github.com/goliatone/go-folio/internal/commands/workspace"
	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/generator"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/logging/console"
	"github.com/goliatone/go-folio/internal/logging/gologger"
	"github.com/goliatone/go-folio/internal/markdown"
	"github.com/goliatone/go-folio/internal/reactivity"
	"github.com/goliatone/go-folio/internal/redirects"
	"github.com/goliatone/go-folio/internal/routes"
	"github.com/goliatone/go-folio/internal/runtimeconfig"
	"github.com/goliatone/go-folio/internal/site"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// ContentRoot is the directory handed to loaders. The markdown filesystem
// is rooted at Config.Content.Dir, so the collections sit at its top level.
const ContentRoot = "."

// Container wires module dependencies from a runtime config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	markdownSvc    interfaces.MarkdownService
	renderer       interfaces.TemplateRenderer
	writer         generator.ArtifactWriter
	contentFS      fs.FS
	publicFS       fs.FS
	workspaceFS    workspacecmd.FSOpener
	schemaWriters  schemacmd.WriterFactory

	collections *collections.Registry
	site        *site.Registry
	routes      *routes.Resolver
	redirects   *redirects.Table
	reactivity  *reactivity.Registry

	contentLoader *content.Loader
	generatorSvc  generator.Service

	handlers HandlerSet
}

// HandlerSet groups the command handlers built by the container.
type HandlerSet struct {
	ValidateContent   *contentcmd.ValidateContentHandler
	BuildSite         *staticcmd.BuildSiteHandler
	CleanSite         *staticcmd.CleanSiteHandler
	ExportSchemas     *schemacmd.ExportSchemasHandler
	ResolveProjectDir *workspacecmd.ResolveProjectDirHandler
}

// All lists the handlers in registration order.
func (h HandlerSet) All() []any {
	return []any{h.ValidateContent, h.BuildSite, h.CleanSite, h.ExportSchemas, h.ResolveProjectDir}
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithMarkdownService overrides the markdown service.
func WithMarkdownService(svc interfaces.MarkdownService) Option {
	return func(c *Container) {
		if svc != nil {
			c.markdownSvc = svc
		}
	}
}

// WithContentFS serves content from filesystem instead of Config.Content.Dir.
func WithContentFS(filesystem fs.FS) Option {
	return func(c *Container) {
		c.contentFS = filesystem
	}
}

// WithPublicFS overrides the static asset filesystem.
func WithPublicFS(filesystem fs.FS) Option {
	return func(c *Container) {
		c.publicFS = filesystem
	}
}

// WithTemplate overrides the page renderer.
func WithTemplate(tr interfaces.TemplateRenderer) Option {
	return func(c *Container) {
		if tr != nil {
			c.renderer = tr
		}
	}
}

// WithArtifactWriter overrides where build artifacts are written.
func WithArtifactWriter(writer generator.ArtifactWriter) Option {
	return func(c *Container) {
		if writer != nil {
			c.writer = writer
		}
	}
}

// WithWorkspaceFS overrides how the workspace root is opened.
func WithWorkspaceFS(open workspacecmd.FSOpener) Option {
	return func(c *Container) {
		if open != nil {
			c.workspaceFS = open
		}
	}
}

// WithSchemaWriters overrides where exported schemas are written.
func WithSchemaWriters(factory schemacmd.WriterFactory) Option {
	return func(c *Container) {
		if factory != nil {
			c.schemaWriters = factory
		}
	}
}

// WithGeneratorService replaces the static generator.
func WithGeneratorService(svc generator.Service) Option {
	return func(c *Container) {
		if svc != nil {
			c.generatorSvc = svc
		}
	}
}

// NewContainer validates cfg and wires every service and command handler.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:      cfg,
		collections: collections.DefaultRegistry(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureSite(); err != nil {
		return nil, err
	}
	if err := c.configureContent(); err != nil {
		return nil, err
	}
	if err := c.configureGenerator(); err != nil {
		return nil, err
	}
	c.configureCommands()

	logging.ModuleLogger(c.loggerProvider, "folio").Debug("container.configured",
		"content_dir", cfg.Content.Dir,
		"output_dir", cfg.Generator.OutputDir,
		"site_url", c.site.Site.URL,
		"redirects", c.redirects.Len(),
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		level, _ := console.ParseLevel(logCfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{Writer: os.Stderr, MinLevel: &level})
	}
	return nil
}

func (c *Container) configureSite() error {
	c.site = site.Default().With(c.Config.SiteOverrides())
	if err := c.site.Validate(); err != nil {
		return err
	}

	table, err := c.Config.RedirectTable()
	if err != nil {
		return err
	}
	c.redirects = table

	resolver, err := routes.New(c.site.Site.URL)
	if err != nil {
		return err
	}
	c.routes = resolver
	c.reactivity = reactivity.Initialize(reactivity.NewRegistry())
	return nil
}

func (c *Container) configureContent() error {
	if c.markdownSvc == nil {
		filesystem := c.contentFS
		if filesystem == nil {
			filesystem = os.DirFS(c.Config.Content.Dir)
		}
		parser := c.Config.Markdown.Parser
		svc, err := markdown.NewService(markdown.Config{
			BasePath: c.Config.Content.Dir,
			Patterns: c.Config.Content.Patterns,
			Parser: interfaces.ParseOptions{
				Extensions: parser.Extensions,
				HardWraps:  parser.HardWraps,
				SafeMode:   parser.SafeMode,
			},
			FS:     filesystem,
			Logger: logging.MarkdownLogger(c.loggerProvider),
		}, nil)
		if err != nil {
			return err
		}
		c.markdownSvc = svc
	}

	c.contentLoader = content.NewLoader(c.markdownSvc,
		content.WithRegistry(c.collections),
		content.WithLogger(logging.ContentLogger(c.loggerProvider)),
	)
	return nil
}

func (c *Container) configureGenerator() error {
	gen := c.Config.Generator

	if c.publicFS == nil && gen.CopyAssets {
		if dir := strings.TrimSpace(gen.PublicDir); dir != "" {
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				c.publicFS = os.DirFS(dir)
			}
		}
	}

	if c.renderer == nil {
		var overrides fs.FS
		if dir := strings.TrimSpace(gen.TemplatesDir); dir != "" {
			overrides = os.DirFS(dir)
		}
		renderer, err := generator.NewHTMLRenderer(overrides)
		if err != nil {
			return err
		}
		c.renderer = renderer
	}
	if c.writer == nil {
		c.writer = generator.NewDirWriter(gen.OutputDir)
	}

	if c.generatorSvc != nil {
		return nil
	}
	svc, err := generator.NewService(generator.Config{
		ContentDir:        ContentRoot,
		OutputDir:         gen.OutputDir,
		CleanBuild:        gen.CleanBuild,
		Incremental:       gen.Incremental,
		CopyAssets:        gen.CopyAssets,
		GenerateSitemap:   gen.GenerateSitemap,
		GenerateRobots:    gen.GenerateRobots,
		GenerateFeeds:     gen.GenerateFeeds,
		GenerateRedirects: gen.GenerateRedirects,
		Workers:           gen.Workers,
	}, generator.Dependencies{
		Content:    c.contentLoader,
		Site:       c.site,
		Routes:     c.routes,
		Redirects:  c.redirects,
		Reactivity: c.reactivity,
		Renderer:   c.renderer,
		Writer:     c.writer,
		Public:     c.publicFS,
		Logger:     logging.GeneratorLogger(c.loggerProvider),
	})
	if err != nil {
		return err
	}
	c.generatorSvc = svc
	return nil
}

func (c *Container) configureCommands() {
	timeout := c.Config.Commands.Timeout
	if timeout <= 0 {
		timeout = commands.DefaultCommandTimeout
	}

	c.handlers = HandlerSet{
		ValidateContent: contentcmd.NewValidateContentHandler(c.contentLoader,
			commands.CommandLogger(c.loggerProvider, "content"),
			commands.WithTimeout[contentcmd.ValidateContentCommand](timeout)),
		BuildSite: staticcmd.NewBuildSiteHandler(c.generatorSvc,
			commands.CommandLogger(c.loggerProvider, "static"),
			commands.WithTimeout[staticcmd.BuildSiteCommand](timeout)),
		CleanSite: staticcmd.NewCleanSiteHandler(c.generatorSvc,
			commands.CommandLogger(c.loggerProvider, "static"),
			commands.WithTimeout[staticcmd.CleanSiteCommand](timeout)),
		ExportSchemas: schemacmd.NewExportSchemasHandler(c.collections, c.schemaWriters,
			commands.CommandLogger(c.loggerProvider, "schemas"),
			commands.WithTimeout[schemacmd.ExportSchemasCommand](timeout)),
		ResolveProjectDir: workspacecmd.NewResolveProjectDirHandler(c.workspaceFS,
			commands.CommandLogger(c.loggerProvider, "workspace"),
			commands.WithTimeout[workspacecmd.ResolveProjectDirCommand](timeout)),
	}
}

// RegisterCommands hands every command handler to reg. Registration keeps
// going after a failure and reports the joined errors.
func (c *Container) RegisterCommands(reg commands.CommandRegistry) error {
	if reg == nil {
		return nil
	}
	var errs error
	for _, handler := range c.handlers.All() {
		if err := reg.RegisterCommand(handler); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// LoggerProvider exposes the configured provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Logger returns a module-scoped logger from the configured provider.
func (c *Container) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}

// MarkdownService returns the configured markdown service.
func (c *Container) MarkdownService() interfaces.MarkdownService {
	return c.markdownSvc
}

// TemplateRenderer returns the page renderer.
func (c *Container) TemplateRenderer() interfaces.TemplateRenderer {
	return c.renderer
}

// Collections returns the content schema registry.
func (c *Container) Collections() *collections.Registry {
	return c.collections
}

// Site returns the site metadata registry with config overrides applied.
func (c *Container) Site() *site.Registry {
	return c.site
}

// Routes returns the URL resolver.
func (c *Container) Routes() *routes.Resolver {
	return c.routes
}

// Redirects returns the merged redirect table.
func (c *Container) Redirects() *redirects.Table {
	return c.redirects
}

// Reactivity returns the client reactivity registry.
func (c *Container) Reactivity() *reactivity.Registry {
	return c.reactivity
}

// ContentLoader returns the collection loader.
func (c *Container) ContentLoader() *content.Loader {
	return c.contentLoader
}

// GeneratorService returns the static site generator.
func (c *Container) GeneratorService() generator.Service {
	return c.generatorSvc
}

// Handlers returns the command handlers.
func (c *Container) Handlers() HandlerSet {
	return c.handlers
}

// CommandTimeout is the effective per-command timeout.
func (c *Container) CommandTimeout() time.Duration {
	if c.Config.Commands.Timeout <= 0 {
		return commands.DefaultCommandTimeout
	}
	return c.Config.Commands.Timeout
}
