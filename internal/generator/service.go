// Package generator renders the validated content library into a static
// site: HTML pages, feeds, sitemap, redirects and the browser entrypoint.
package generator

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/reactivity"
	"github.com/goliatone/go-folio/internal/redirects"
	"github.com/goliatone/go-folio/internal/routes"
	"github.com/goliatone/go-folio/internal/site"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

var (
	// ErrContentRequired indicates the generator has no content source.
	ErrContentRequired  = errors.New("generator: content source is required")
	errRendererRequired = errors.New("generator: template renderer is required")
)

// Output file names.
const (
	SitemapFile = "sitemap.xml"
	RobotsFile  = "robots.txt"
	FeedFile    = "rss.xml"
)

// Service describes the static site generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// ContentSource produces the validated library; content.Loader implements it.
type ContentSource interface {
	Load(ctx context.Context, dir string) (*content.Library, error)
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	ContentDir        string
	OutputDir         string
	CleanBuild        bool
	Incremental       bool
	CopyAssets        bool
	GenerateSitemap   bool
	GenerateRobots    bool
	GenerateFeeds     bool
	GenerateRedirects bool
	Workers           int
}

// BuildOptions narrows a generator run.
type BuildOptions struct {
	// ContentDir overrides Config.ContentDir for this run.
	ContentDir string
	DryRun     bool
}

// RenderedPage describes one output file of a build.
type RenderedPage struct {
	Route        string
	Output       string
	Layout       string
	Collection   string
	EntryID      string
	Category     Category
	Checksum     string
	Size         int
	LastModified time.Time
	HTML         string
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	ID           uuid.UUID
	Pages        int
	PagesSkipped int
	Assets       int
	Artifacts    []string
	Duration     time.Duration
	Rendered     []RenderedPage
	Errors       []error
	DryRun       bool
}

// Dependencies lists the collaborators of the generator.
type Dependencies struct {
	Content    ContentSource
	Site       *site.Registry
	Routes     *routes.Resolver
	Redirects  *redirects.Table
	Reactivity *reactivity.Registry
	Renderer   interfaces.TemplateRenderer
	Writer     ArtifactWriter
	// Public holds static files copied verbatim into the output.
	Public fs.FS
	Logger interfaces.Logger
}

// NewService wires a generator with the provided configuration and
// dependencies. Missing optional collaborators fall back to the site
// defaults.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	if deps.Content == nil {
		return nil, ErrContentRequired
	}
	if deps.Site == nil {
		deps.Site = site.Default()
	}
	if deps.Routes == nil {
		resolver, err := routes.New(deps.Site.Site.URL)
		if err != nil {
			return nil, err
		}
		deps.Routes = resolver
	}
	if deps.Redirects == nil {
		deps.Redirects = redirects.Default()
	}
	if deps.Reactivity == nil {
		deps.Reactivity = reactivity.Initialize(reactivity.NewRegistry())
	}
	if deps.Renderer == nil {
		renderer, err := NewHTMLRenderer(nil)
		if err != nil {
			return nil, err
		}
		deps.Renderer = renderer
	}
	if deps.Writer == nil {
		deps.Writer = NewDirWriter(cfg.OutputDir)
	}
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	return &service{cfg: cfg, deps: deps, now: time.Now}, nil
}

type service struct {
	cfg  Config
	deps Dependencies
	now  func() time.Time
}

// reloader is implemented by renderers whose templates can change between
// builds, such as HTMLRenderer with an override directory.
type reloader interface {
	Reload() error
}

// artifact is an output file other than a rendered page.
type artifact struct {
	Path        string
	Data        []byte
	Category    Category
	ContentType string
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.deps.Renderer == nil {
		return nil, errRendererRequired
	}
	if r, ok := s.deps.Renderer.(reloader); ok {
		if err := r.Reload(); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	generatedAt := s.now()
	result := &BuildResult{ID: uuid.New(), DryRun: opts.DryRun}
	logger := logging.WithFields(s.deps.Logger, map[string]any{"build_id": result.ID.String()})

	dir := strings.TrimSpace(opts.ContentDir)
	if dir == "" {
		dir = s.cfg.ContentDir
	}
	lib, err := s.deps.Content.Load(ctx, dir)
	if err != nil {
		logger.Error("generator.content.failed", "error", err)
		return nil, err
	}

	script, err := s.deps.Reactivity.EntryScript()
	if err != nil {
		return nil, err
	}

	views := viewBuilder{
		registry:    s.deps.Site,
		resolver:    s.deps.Routes,
		entryScript: reactivity.EntryFile,
		year:        generatedAt.Year(),
	}
	jobs, err := views.plan(lib)
	if err != nil {
		return nil, err
	}

	rendered, err := s.renderPages(ctx, jobs)
	if err != nil {
		result.Errors = append(result.Errors, err)
		result.Duration = time.Since(start)
		logger.Error("generator.render.failed", "error", err)
		return result, err
	}
	result.Rendered = rendered

	artifacts, err := s.collectArtifacts(ctx, lib, rendered, script, generatedAt)
	if err != nil {
		result.Errors = append(result.Errors, err)
		result.Duration = time.Since(start)
		return result, err
	}
	for _, a := range artifacts {
		if a.Category == CategoryAsset {
			result.Assets++
			continue
		}
		result.Artifacts = append(result.Artifacts, a.Path)
	}

	var writer ArtifactWriter = s.deps.Writer
	if opts.DryRun {
		writer = noopWriter{}
	}
	if err := s.persist(ctx, writer, result, artifacts, generatedAt); err != nil {
		result.Errors = append(result.Errors, err)
		result.Duration = time.Since(start)
		logger.Error("generator.persist.failed", "error", err)
		return result, err
	}

	result.Duration = time.Since(start)
	logger.Info("generator.build.completed",
		"dry_run", result.DryRun,
		"pages", result.Pages,
		"skipped", result.PagesSkipped,
		"assets", result.Assets,
		"duration", result.Duration.String(),
	)
	return result, nil
}

// Clean empties the output directory.
func (s *service) Clean(ctx context.Context) error {
	return s.deps.Writer.Clean(ctx)
}

func (s *service) renderPages(ctx context.Context, jobs []pageJob) ([]RenderedPage, error) {
	rendered := make([]RenderedPage, len(jobs))
	errs := make([]error, len(jobs))

	render := func(i int) {
		job := jobs[i]
		html, err := s.deps.Renderer.Render(job.Layout, job.View)
		if err != nil {
			errs[i] = fmt.Errorf("generator: render %s: %w", job.Route, err)
			return
		}
		rendered[i] = RenderedPage{
			Route:        job.Route,
			Output:       routes.OutputFile(job.Route),
			Layout:       job.Layout,
			Collection:   job.Collection,
			EntryID:      job.EntryID,
			Category:     CategoryPage,
			Checksum:     computeHashFromString(html),
			Size:         len(html),
			LastModified: job.LastModified,
			HTML:         html,
		}
	}

	workers := s.effectiveWorkerCount(len(jobs))
	if workers <= 1 {
		for i := range jobs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			render(i)
		}
		return rendered, errors.Join(errs...)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				render(i)
			}
		}()
	}
	var cancelled error
dispatch:
	for i := range jobs {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break dispatch
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()
	if cancelled != nil {
		return nil, cancelled
	}
	return rendered, errors.Join(errs...)
}

func (s *service) collectArtifacts(
	ctx context.Context,
	lib *content.Library,
	pages []RenderedPage,
	script []byte,
	generatedAt time.Time,
) ([]artifact, error) {
	baseURL := s.deps.Routes.BaseURL()
	artifacts := []artifact{{
		Path:        reactivity.EntryFile,
		Data:        script,
		Category:    CategoryScript,
		ContentType: "text/javascript; charset=utf-8",
	}}

	if s.cfg.GenerateSitemap {
		artifacts = append(artifacts, artifact{
			Path:        SitemapFile,
			Data:        []byte(buildSitemap(baseURL, pages, generatedAt)),
			Category:    CategorySitemap,
			ContentType: "application/xml",
		})
	}
	if s.cfg.GenerateRobots {
		artifacts = append(artifacts, artifact{
			Path:        RobotsFile,
			Data:        []byte(buildRobots(baseURL, s.cfg.GenerateSitemap)),
			Category:    CategoryRobots,
			ContentType: "text/plain; charset=utf-8",
		})
	}
	if s.cfg.GenerateFeeds {
		items, err := feedItems(lib, s.deps.Routes)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact{
			Path:        FeedFile,
			Data:        []byte(buildRSSFeed(s.deps.Site, baseURL, items, generatedAt)),
			Category:    CategoryFeed,
			ContentType: "application/rss+xml",
		})
	}
	if s.cfg.GenerateRedirects && s.deps.Redirects.Len() > 0 {
		artifacts = append(artifacts, artifact{
			Path:        redirects.RedirectsFile,
			Data:        s.deps.Redirects.HostFile(),
			Category:    CategoryRedirect,
			ContentType: "text/plain; charset=utf-8",
		})
		redirectPages, err := s.deps.Redirects.Pages(baseURL)
		if err != nil {
			return nil, err
		}
		rendered := make(map[string]struct{}, len(pages))
		for _, page := range pages {
			rendered[page.Output] = struct{}{}
		}
		for _, page := range redirectPages {
			if _, ok := rendered[page.Path]; ok {
				return nil, fmt.Errorf("%w: redirect %s and a content page both render %s", ErrRouteConflict, page.Source, page.Path)
			}
			artifacts = append(artifacts, artifact{
				Path:        page.Path,
				Data:        page.Body,
				Category:    CategoryRedirect,
				ContentType: "text/html; charset=utf-8",
			})
		}
	}
	if s.cfg.CopyAssets {
		assets, err := collectAssets(ctx, s.deps.Public)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, assets...)
	}
	return artifacts, nil
}

// persist writes pages and artifacts through writer and records them in the
// manifest. Incremental builds skip files whose checksum matches the
// previous manifest.
func (s *service) persist(ctx context.Context, writer ArtifactWriter, result *BuildResult, artifacts []artifact, generatedAt time.Time) error {
	if s.cfg.CleanBuild {
		if err := writer.Clean(ctx); err != nil {
			return err
		}
	}

	manifest := newBuildManifest()
	if s.cfg.Incremental && !s.cfg.CleanBuild {
		loaded, err := s.loadManifest(ctx)
		if err != nil {
			s.deps.Logger.Warn("generator.manifest.unreadable", "error", err)
		} else {
			manifest = loaded
		}
	}
	previous := manifest
	next := newBuildManifest()
	next.BuildID = result.ID.String()
	next.GeneratedAt = generatedAt

	dirCache := map[string]struct{}{}
	write := func(rel string, data []byte, category Category, contentType, checksum string) (bool, error) {
		entry := manifestEntry{Path: rel, Category: category, Checksum: checksum, Size: len(data)}
		next.set(entry)
		if s.cfg.Incremental && previous.unchanged(rel, checksum) {
			return false, nil
		}
		if err := ensureDir(ctx, writer, dirCache, path.Dir(rel)); err != nil {
			return false, err
		}
		return true, writer.WriteFile(ctx, WriteFileRequest{
			Path:        rel,
			Content:     bytes.NewReader(data),
			Size:        int64(len(data)),
			Category:    category,
			ContentType: contentType,
			Checksum:    checksum,
		})
	}

	for _, page := range result.Rendered {
		written, err := write(page.Output, []byte(page.HTML), CategoryPage, "text/html; charset=utf-8", page.Checksum)
		if err != nil {
			return err
		}
		if written {
			result.Pages++
		} else {
			result.PagesSkipped++
		}
	}
	for _, a := range artifacts {
		if _, err := write(a.Path, a.Data, a.Category, a.ContentType, computeHash(a.Data)); err != nil {
			return err
		}
	}
	return s.persistManifest(ctx, writer, next)
}

func (s *service) loadManifest(ctx context.Context) (*buildManifest, error) {
	data, err := s.deps.Writer.ReadFile(ctx, manifestFileName)
	if errors.Is(err, fs.ErrNotExist) {
		return newBuildManifest(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("generator: read manifest: %w", err)
	}
	return parseManifest(data)
}

func (s *service) persistManifest(ctx context.Context, writer ArtifactWriter, manifest *buildManifest) error {
	data, err := manifest.marshal()
	if err != nil {
		return err
	}
	return writer.WriteFile(ctx, WriteFileRequest{
		Path:        manifestFileName,
		Content:     bytes.NewReader(data),
		Size:        int64(len(data)),
		Category:    CategoryManifest,
		ContentType: "application/json",
		Checksum:    computeHash(data),
	})
}

func (s *service) effectiveWorkerCount(jobs int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if jobs > 0 && workers > jobs {
		return jobs
	}
	return workers
}

// Outputs lists the output paths of a result, sorted.
func (r *BuildResult) Outputs() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.Rendered)+len(r.Artifacts))
	for _, page := range r.Rendered {
		out = append(out, page.Output)
	}
	out = append(out, r.Artifacts...)
	sort.Strings(out)
	return out
}

func ensureDir(ctx context.Context, writer ArtifactWriter, cache map[string]struct{}, dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" || dir == "." {
		return nil
	}
	if _, ok := cache[dir]; ok {
		return nil
	}
	cache[dir] = struct{}{}
	return writer.EnsureDir(ctx, dir)
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func computeHashFromString(content string) string {
	return computeHash([]byte(content))
}
