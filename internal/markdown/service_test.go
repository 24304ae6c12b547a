package markdown

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

func TestServiceLoad(t *testing.T) {
	svc := newTestService(t)

	doc, err := svc.Load(context.Background(), "work/acme.mdx")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Collection != "work" {
		t.Fatalf("expected work collection, got %s", doc.Collection)
	}
	if !strings.Contains(string(doc.BodyHTML), "<p>Building things at Acme.</p>") {
		t.Fatalf("expected BodyHTML to be populated, got %q", doc.BodyHTML)
	}
	if len(doc.Checksum) == 0 {
		t.Fatalf("expected checksum to be populated")
	}
}

func TestServiceLoadAbsolutePath(t *testing.T) {
	svc := newTestService(t)
	base, _ := filepath.Abs(filepath.Join("testdata", "content"))

	doc, err := svc.Load(context.Background(), filepath.Join(base, "work", "acme.mdx"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.FilePath != "work/acme.mdx" {
		t.Fatalf("expected relative file path, got %s", doc.FilePath)
	}
}

func TestServiceLoadDirectory(t *testing.T) {
	svc := newTestService(t)

	docs, err := svc.LoadDirectory(context.Background(), ".")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	var paths []string
	for _, doc := range docs {
		paths = append(paths, doc.FilePath)
		if len(doc.BodyHTML) == 0 {
			t.Fatalf("expected rendered body for %s", doc.FilePath)
		}
	}
	want := []string{
		"blog/2025/02/11/constraint-solving-in-spreadsheets.md",
		"talks/rust-for-ts.md",
		"work/acme.mdx",
	}
	if strings.Join(paths, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, paths)
	}
}

func TestServiceLoadDirectoryWithMapFS(t *testing.T) {
	fsys := fstest.MapFS{
		"blog/a.md":          {Data: []byte("---\ntitle: A\n---\nbody")},
		"blog/notes.txt":     {Data: []byte("ignored")},
		".drafts/b.md":       {Data: []byte("hidden")},
		"projects/nested.md": {Data: []byte("---\ntitle: P\n---\n")},
	}
	svc, err := NewService(Config{FS: fsys}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	docs, err := svc.LoadDirectory(context.Background(), "")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].ID != "a" || docs[1].Collection != "projects" {
		t.Fatalf("unexpected documents %s, %s", docs[0].FilePath, docs[1].FilePath)
	}
}

func TestServiceLoadDirectoryNamesCollectionsBelowRequestedDir(t *testing.T) {
	fsys := fstest.MapFS{
		"src/content/blog/2025/01/01/post.md": {Data: []byte("---\ntitle: Post\n---\n")},
		"src/content/work/acme.md":            {Data: []byte("---\ncompany: Acme\n---\n")},
		"notes/outside.md":                    {Data: []byte("---\ntitle: Outside\n---\n")},
	}
	svc, err := NewService(Config{FS: fsys}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	docs, err := svc.LoadDirectory(context.Background(), "src/content")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Collection != "blog" || docs[0].ID != "2025/01/01/post" {
		t.Fatalf("unexpected blog document %q/%q", docs[0].Collection, docs[0].ID)
	}
	if docs[1].Collection != "work" || docs[1].ID != "acme" {
		t.Fatalf("unexpected work document %q/%q", docs[1].Collection, docs[1].ID)
	}
	if docs[1].FilePath != "src/content/work/acme.md" {
		t.Fatalf("expected file path relative to the filesystem, got %s", docs[1].FilePath)
	}
}

func TestServiceRenderHonoursCancellation(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Render(ctx, []byte("# hi"), interfaces.ParseOptions{}); err == nil {
		t.Fatal("expected cancelled context to abort rendering")
	}
}

func TestNewServiceMissingBasePath(t *testing.T) {
	if _, err := NewService(Config{BasePath: filepath.Join("testdata", "missing")}, nil); err == nil {
		t.Fatal("expected error for missing base path")
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	base, err := filepath.Abs(filepath.Join("testdata", "content"))
	if err != nil {
		t.Fatalf("abs: %v", err)
	}
	svc, err := NewService(Config{BasePath: base}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}
