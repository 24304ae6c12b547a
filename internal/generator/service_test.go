package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-folio/internal/collections"
	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/routes"
	"github.com/goliatone/go-folio/internal/site"
)

type stubContent struct {
	lib *content.Library
	err error
	dir string
}

func (s *stubContent) Load(_ context.Context, dir string) (*content.Library, error) {
	s.dir = dir
	return s.lib, s.err
}

var fixedModified = time.Date(2025, 2, 11, 9, 30, 0, 0, time.UTC)

func mustEntry(t *testing.T, collection, id string, fm map[string]any, body string) *content.Entry {
	t.Helper()
	record, err := collections.DefaultRegistry().Validate(collection, fm)
	if err != nil {
		t.Fatalf("validate %s/%s: %v", collection, id, err)
	}
	return &content.Entry{
		Collection:   collection,
		ID:           id,
		Slug:         id,
		FilePath:     collection + "/" + id + ".md",
		Record:       record,
		BodyHTML:     []byte(body),
		LastModified: fixedModified,
	}
}

func fixtureLibrary(t *testing.T) *content.Library {
	t.Helper()
	return content.NewLibrary(nil,
		mustEntry(t, collections.Blog, "2025/02/11/constraint-solving-in-spreadsheets", map[string]any{
			"title":       "Constraint solving in spreadsheets",
			"description": "Propagating values through cells",
			"date":        "2025-02-11",
		}, "<p>Cells are constraints.</p>"),
		mustEntry(t, collections.Blog, "2025/03/01/unfinished", map[string]any{
			"title":       "Unfinished",
			"description": "Not yet",
			"date":        "2025-03-01",
			"draft":       true,
		}, "<p>draft</p>"),
		mustEntry(t, collections.Work, "acme", map[string]any{
			"company":   "Acme",
			"role":      "Engineer",
			"dateStart": "2022-05-01",
			"dateEnd":   "Present",
		}, "<p>Built things.</p>"),
		mustEntry(t, collections.Talks, "rust-for-ts", map[string]any{
			"title": "Rust for TypeScript developers",
			"date":  "2024-10-03",
			"url":   "https://example.com/slides",
		}, "<p>Slides.</p>"),
	)
}

func newTestService(t *testing.T, cfg Config, source ContentSource) *service {
	t.Helper()
	resolver, err := routes.New("https://example.com")
	if err != nil {
		t.Fatalf("routes: %v", err)
	}
	svc, err := NewService(cfg, Dependencies{
		Content: source,
		Site:    site.Default(),
		Routes:  resolver,
		Public: fstest.MapFS{
			"favicon.svg":    {Data: []byte("<svg/>")},
			".DS_Store":      {Data: []byte("junk")},
			"fonts/mono.txt": {Data: []byte("mono")},
		},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	s := svc.(*service)
	s.now = func() time.Time { return fixedModified }
	return s
}

func fullConfig(out string) Config {
	return Config{
		ContentDir:        "content",
		OutputDir:         out,
		CopyAssets:        true,
		GenerateSitemap:   true,
		GenerateRobots:    true,
		GenerateFeeds:     true,
		GenerateRedirects: true,
		Workers:           4,
	}
}

func TestNewServiceRequiresContent(t *testing.T) {
	if _, err := NewService(Config{}, Dependencies{}); !errors.Is(err, ErrContentRequired) {
		t.Fatalf("expected ErrContentRequired, got %v", err)
	}
}

func TestBuildDryRunRendersWithoutWriting(t *testing.T) {
	out := t.TempDir()
	source := &stubContent{lib: fixtureLibrary(t)}
	svc := newTestService(t, fullConfig(out), source)

	result, err := svc.Build(context.Background(), BuildOptions{DryRun: true, ContentDir: "elsewhere"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if source.dir != "elsewhere" {
		t.Fatalf("expected content dir override, got %q", source.dir)
	}
	if !result.DryRun {
		t.Fatalf("expected dry run flag")
	}

	outputs := result.Outputs()
	for _, want := range []string{
		"index.html",
		"blog/index.html",
		"blog/2025/02/11/constraint-solving-in-spreadsheets/index.html",
		"work/acme/index.html",
		"talks/rust-for-ts/index.html",
		"projects/index.html",
		"sitemap.xml",
		"robots.txt",
		"rss.xml",
		"_redirects",
		"alpine-entry.js",
		"blog/2024/12/02/constraint-solving-in-spreadsheets/index.html",
	} {
		if !slices.Contains(outputs, want) {
			t.Fatalf("expected output %s, got %v", want, outputs)
		}
	}
	if slices.Contains(outputs, "blog/2025/03/01/unfinished/index.html") {
		t.Fatalf("draft rendered: %v", outputs)
	}
	if result.Assets != 2 {
		t.Fatalf("expected 2 assets, got %d", result.Assets)
	}
	if result.Pages != len(result.Rendered) {
		t.Fatalf("expected every page counted, got %d of %d", result.Pages, len(result.Rendered))
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatalf("read out: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("dry run wrote %d entries", len(entries))
	}
}

func TestBuildWritesSite(t *testing.T) {
	out := t.TempDir()
	svc := newTestService(t, fullConfig(out), &stubContent{lib: fixtureLibrary(t)})

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.ID.String() == "" || result.Pages == 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	read := func(rel string) string {
		t.Helper()
		data, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(rel)))
		if err != nil {
			t.Fatalf("read %s: %v", rel, err)
		}
		return string(data)
	}

	post := read("blog/2025/02/11/constraint-solving-in-spreadsheets/index.html")
	if !strings.Contains(post, "<h1>Constraint solving in spreadsheets</h1>") {
		t.Fatalf("post heading missing:\n%s", post)
	}
	if !strings.Contains(post, "<p>Cells are constraints.</p>") {
		t.Fatalf("post body missing:\n%s", post)
	}
	if !strings.Contains(post, `x-data="astro"`) || !strings.Contains(post, "/alpine-entry.js") {
		t.Fatalf("reactivity binding missing:\n%s", post)
	}

	work := read("work/acme/index.html")
	if !strings.Contains(work, "May 2022 - Present") {
		t.Fatalf("work dates missing:\n%s", work)
	}

	home := read("index.html")
	if !strings.Contains(home, "Constraint solving in spreadsheets") || strings.Contains(home, "Unfinished") {
		t.Fatalf("homepage listing unexpected:\n%s", home)
	}

	if got := read("_redirects"); got != "/blog/2024/12/02/constraint-solving-in-spreadsheets /blog/2025/02/11/constraint-solving-in-spreadsheets 301\n" {
		t.Fatalf("unexpected _redirects %q", got)
	}
	if page := read("blog/2024/12/02/constraint-solving-in-spreadsheets/index.html"); !strings.Contains(page, "http-equiv=\"refresh\"") {
		t.Fatalf("redirect page missing refresh:\n%s", page)
	}

	feed := read("rss.xml")
	if !strings.Contains(feed, "<title>Constraint solving in spreadsheets</title>") || strings.Contains(feed, "Unfinished") {
		t.Fatalf("feed items unexpected:\n%s", feed)
	}

	sitemap := read("sitemap.xml")
	if !strings.Contains(sitemap, "<loc>https://example.com/blog/2025/02/11/constraint-solving-in-spreadsheets</loc>") {
		t.Fatalf("sitemap entry missing:\n%s", sitemap)
	}
	if !strings.HasSuffix(read("robots.txt"), "Sitemap: https://example.com/sitemap.xml\n") {
		t.Fatalf("robots missing sitemap")
	}
	if !strings.Contains(read("alpine-entry.js"), "refreshOnPageLoad") {
		t.Fatalf("entry script missing binding")
	}
	if read("favicon.svg") != "<svg/>" {
		t.Fatalf("asset not copied")
	}
	if _, err := os.Stat(filepath.Join(out, ".DS_Store")); !os.IsNotExist(err) {
		t.Fatalf("hidden asset copied: %v", err)
	}
	if !strings.Contains(read(manifestFileName), result.ID.String()) {
		t.Fatalf("manifest missing build id")
	}
}

func TestIncrementalBuildSkipsUnchangedPages(t *testing.T) {
	out := t.TempDir()
	cfg := fullConfig(out)
	cfg.Incremental = true
	svc := newTestService(t, cfg, &stubContent{lib: fixtureLibrary(t)})

	first, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	if first.PagesSkipped != 0 {
		t.Fatalf("expected nothing skipped on first build, got %d", first.PagesSkipped)
	}

	second, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if second.Pages != 0 || second.PagesSkipped != len(second.Rendered) {
		t.Fatalf("expected every page skipped, got built=%d skipped=%d", second.Pages, second.PagesSkipped)
	}
}

func TestCleanBuildRemovesStaleFiles(t *testing.T) {
	out := t.TempDir()
	stale := filepath.Join(out, "stale.html")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	cfg := fullConfig(out)
	cfg.CleanBuild = true
	svc := newTestService(t, cfg, &stubContent{lib: fixtureLibrary(t)})

	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("expected stale file removed, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "index.html")); err != nil {
		t.Fatalf("expected index.html: %v", err)
	}
}

func TestBuildPropagatesContentErrors(t *testing.T) {
	boom := errors.New("invalid content")
	svc := newTestService(t, fullConfig(t.TempDir()), &stubContent{err: boom})

	if _, err := svc.Build(context.Background(), BuildOptions{}); !errors.Is(err, boom) {
		t.Fatalf("expected content error, got %v", err)
	}
}

func TestBuildHonoursCancelledContext(t *testing.T) {
	svc := newTestService(t, fullConfig(t.TempDir()), &stubContent{lib: fixtureLibrary(t)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Build(ctx, BuildOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
