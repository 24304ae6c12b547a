package interfaces

import (
	"context"
	"time"
)

// MarkdownParser converts raw Markdown bytes into HTML.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown rendering. Names stay readable so they
// can be unmarshalled from the site config file.
type ParseOptions struct {
	Extensions []string `yaml:"extensions" json:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps" json:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode" json:"safe_mode"`
}

// MarkdownService loads content documents from disk and renders their bodies.
type MarkdownService interface {
	Load(ctx context.Context, path string) (*Document, error)
	LoadDirectory(ctx context.Context, dir string) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document) ([]byte, error)
}

// Document is a content file with its raw front matter and body.
//
// Collection and ID are derived from the file location: the first path
// segment names the collection and the remainder (without extension) is the
// entry ID, e.g. "blog/2025/06/04/get-project-dir.md" belongs to "blog" with
// ID "2025/06/04/get-project-dir".
type Document struct {
	FilePath     string
	Collection   string
	ID           string
	FrontMatter  map[string]any
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum is the SHA-256 digest of the original file.
	Checksum []byte
}
