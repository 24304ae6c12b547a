package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

// DefaultPatterns are the content file globs matched against file names.
var DefaultPatterns = []string{"*.md", "*.mdx"}

// LoaderConfig configures how content files are discovered.
type LoaderConfig struct {
	// BasePath is the OS directory backing the filesystem, used to turn
	// absolute paths into relative ones.
	BasePath string
	// Patterns limits discovered files. Defaults to DefaultPatterns.
	Patterns []string
}

// Loader turns filesystem paths into content documents.
type Loader struct {
	fs       fs.FS
	basePath string
	patterns []string
}

// NewLoader constructs a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	basePath := ""
	if strings.TrimSpace(cfg.BasePath) != "" {
		basePath = filepath.Clean(cfg.BasePath)
	}
	return &Loader{
		fs:       filesystem,
		basePath: basePath,
		patterns: append([]string(nil), patterns...),
	}
}

// LoadFile reads and parses a single document.
func (l *Loader) LoadFile(ctx context.Context, name string) (*DocumentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel, err := l.makeRelative(name)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}
	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	doc, err := BuildDocument(rel, data, info.ModTime())
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	doc.Checksum = sum[:]

	return &DocumentResult{Document: doc, Source: data}, nil
}

// LoadDirectory walks dir recursively and parses every matching file,
// ordered by path. Hidden files and directories are skipped.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*DocumentResult, error) {
	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}

	var results []*DocumentResult
	walkErr := fs.WalkDir(l.fs, root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if hidden(p, root) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.matches(p) {
			return nil
		}

		result, err := l.LoadFile(ctx, p)
		if err != nil {
			return err
		}
		if root != "." {
			rel, err := relativeTo(root, p)
			if err != nil {
				return err
			}
			result.Document.Collection, result.Document.ID = SplitContentPath(rel)
		}
		results = append(results, result)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Document.FilePath < results[j].Document.FilePath
	})
	return results, nil
}

// relativeTo returns p relative to the walked root so collections are named
// by the first folder below the requested directory.
func relativeTo(root, p string) (string, error) {
	rel := strings.TrimPrefix(p, strings.TrimSuffix(root, "/")+"/")
	if rel == p {
		return "", fmt.Errorf("markdown loader: %s is outside %s", p, root)
	}
	return rel, nil
}

func (l *Loader) matches(p string) bool {
	base := path.Base(p)
	for _, pattern := range l.patterns {
		if ok, err := path.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

func hidden(p, root string) bool {
	if p == root {
		return false
	}
	base := path.Base(p)
	return strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_")
}

func (l *Loader) makeRelative(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return ".", nil
	}
	clean := filepath.Clean(name)
	if !filepath.IsAbs(clean) {
		return filepath.ToSlash(clean), nil
	}
	if l.basePath == "" {
		return "", fmt.Errorf("markdown loader: absolute path %s provided without base path", name)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("markdown loader: make relative %s: %w", name, err)
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("markdown loader: %s is outside %s", name, l.basePath)
	}
	return filepath.ToSlash(rel), nil
}

// DocumentResult carries the parsed document along with the raw source.
type DocumentResult struct {
	Document *interfaces.Document
	Source   []byte
}
