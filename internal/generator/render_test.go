package generator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-folio/internal/site"
)

func TestHTMLRendererLayouts(t *testing.T) {
	renderer, err := NewHTMLRenderer(nil)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if got := strings.Join(renderer.Templates(), ","); got != "entry,home,list" {
		t.Fatalf("unexpected layouts %s", got)
	}

	reg := site.Default()
	view := PageView{
		Site:    reg.Site,
		Socials: reg.Socials(),
		Title:   "Blog",
		Section: reg.Blog,
		Items:   []ItemView{{Title: "A <post>", URL: "https://example.com/blog/a", Dates: "Feb 11, 2025"}},
	}
	var sink strings.Builder
	html, err := renderer.Render(LayoutList, view, &sink)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if sink.String() != html {
		t.Fatalf("expected writer to receive rendered output")
	}
	if !strings.Contains(html, "<title>Blog | Brian Schiller</title>") {
		t.Fatalf("title missing:\n%s", html)
	}
	if !strings.Contains(html, "A &lt;post&gt;") {
		t.Fatalf("expected escaped item title:\n%s", html)
	}
	if !strings.Contains(html, `href="https://github.com/bgschiller"`) {
		t.Fatalf("socials missing:\n%s", html)
	}
}

func TestHTMLRendererUnknownLayout(t *testing.T) {
	renderer, err := NewHTMLRenderer(nil)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := renderer.Render("missing", PageView{}); !errors.Is(err, errUnknownLayout) {
		t.Fatalf("expected errUnknownLayout, got %v", err)
	}
}

func TestHTMLRendererOverrides(t *testing.T) {
	renderer, err := NewHTMLRenderer(fstest.MapFS{
		"entry.html": {Data: []byte(`{{define "content"}}<section>{{.Entry.Title}}</section>{{end}}`)},
	})
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	html, err := renderer.Render(LayoutEntry, PageView{Site: site.Default().Site, Entry: &EntryView{Title: "Custom"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<section>Custom</section>") {
		t.Fatalf("override not applied:\n%s", html)
	}
}

func TestHTMLRendererRejectsBrokenOverride(t *testing.T) {
	_, err := NewHTMLRenderer(fstest.MapFS{
		"list.html": {Data: []byte(`{{define "content"}}{{.Items`)},
	})
	if err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestHTMLRendererReloadReadsEditedOverrides(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "entry.html")
	write := func(body string) {
		t.Helper()
		if err := os.WriteFile(entry, []byte(body), 0o644); err != nil {
			t.Fatalf("write override: %v", err)
		}
	}
	write(`{{define "content"}}<section>first {{.Entry.Title}}</section>{{end}}`)

	renderer, err := NewHTMLRenderer(os.DirFS(dir))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	view := PageView{Site: site.Default().Site, Entry: &EntryView{Title: "Post"}}

	write(`{{define "content"}}<section>second {{.Entry.Title}}</section>{{end}}`)
	if err := renderer.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	html, err := renderer.Render(LayoutEntry, view)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<section>second Post</section>") {
		t.Fatalf("expected the edited override:\n%s", html)
	}

	write(`{{define "content"}}{{.Entry`)
	if err := renderer.Reload(); err == nil {
		t.Fatal("expected a parse error for the broken override")
	}
	html, err = renderer.Render(LayoutEntry, view)
	if err != nil {
		t.Fatalf("render after failed reload: %v", err)
	}
	if !strings.Contains(html, "<section>second Post</section>") {
		t.Fatalf("expected the last good layouts to stay in use:\n%s", html)
	}
}
