package markdown

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

func TestParseFrontMatter(t *testing.T) {
	data := readFixture(t, "testdata/content/blog/2025/02/11/constraint-solving-in-spreadsheets.md")

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if meta["title"] != "Constraint solving in spreadsheets" {
		t.Fatalf("title mismatch, got %#v", meta["title"])
	}
	if _, ok := meta["date"]; !ok {
		t.Fatalf("expected date key in %#v", meta)
	}
	tags, ok := meta["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "spreadsheets" {
		t.Fatalf("tags mismatch: %#v", meta["tags"])
	}
	if !strings.Contains(string(body), "# Constraint solving in spreadsheets") {
		t.Fatalf("markdown body not returned correctly: %q", string(body))
	}
}

func TestParseFrontMatterWithoutBlock(t *testing.T) {
	meta, body, err := ParseFrontMatter([]byte("just a body\n"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if len(meta) != 0 {
		t.Fatalf("expected empty metadata, got %#v", meta)
	}
	if string(body) != "just a body\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestNormalizeValueConvertsNestedMaps(t *testing.T) {
	got := normalizeValue(map[any]any{"inner": []any{map[any]any{1: "one"}}})
	outer, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", got)
	}
	inner := outer["inner"].([]any)[0].(map[string]any)
	if inner["1"] != "one" {
		t.Fatalf("unexpected nested value %#v", inner)
	}
}

func TestSplitContentPath(t *testing.T) {
	cases := []struct {
		path, collection, id string
	}{
		{"blog/2025/06/04/get-project-dir.md", "blog", "2025/06/04/get-project-dir"},
		{"work/acme.mdx", "work", "acme"},
		{"./talks/rust.md", "talks", "rust"},
		{"index.md", "", "index"},
	}
	for _, tc := range cases {
		collection, id := SplitContentPath(tc.path)
		if collection != tc.collection || id != tc.id {
			t.Fatalf("SplitContentPath(%q) = %q, %q; want %q, %q", tc.path, collection, id, tc.collection, tc.id)
		}
	}
}

func TestBuildDocument(t *testing.T) {
	data := readFixture(t, "testdata/content/work/acme.mdx")
	modified := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	doc, err := BuildDocument("work/acme.mdx", data, modified)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}
	if doc.Collection != "work" || doc.ID != "acme" {
		t.Fatalf("unexpected location %q/%q", doc.Collection, doc.ID)
	}
	if doc.FrontMatter["dateEnd"] != "Present" {
		t.Fatalf("expected dateEnd label, got %#v", doc.FrontMatter["dateEnd"])
	}
	if !doc.LastModified.Equal(modified) {
		t.Fatalf("expected LastModified to equal the provided timestamp")
	}
}

func TestGoldmarkParser_Parse(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Heading\n\nHello **world**"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "Heading</h1>") {
		t.Fatalf("expected rendered HTML to include <h1>Heading</h1>, got %q", got)
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Fatalf("expected rendered HTML to include <strong>, got %q", got)
	}
}

func TestGoldmarkParser_ParseWithOptions(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.ParseWithOptions([]byte("line one\nline two"), interfaces.ParseOptions{
		HardWraps: true,
	})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if !strings.Contains(string(html), "line one<br>") {
		t.Fatalf("expected hard wraps in HTML output, got %q", string(html))
	}
}

func TestGoldmarkParser_SafeModeDropsRawHTML(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{SafeMode: true})

	html, err := parser.Parse([]byte("<script>alert(1)</script>\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if strings.Contains(string(html), "<script>") {
		t.Fatalf("expected raw HTML to be omitted, got %q", html)
	}
}

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}
