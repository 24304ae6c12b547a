package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Category groups written artifacts for logging and the build manifest.
type Category string

const (
	CategoryPage     Category = "page"
	CategoryAsset    Category = "asset"
	CategorySitemap  Category = "sitemap"
	CategoryRobots   Category = "robots"
	CategoryFeed     Category = "feed"
	CategoryRedirect Category = "redirect"
	CategoryScript   Category = "script"
	CategoryManifest Category = "manifest"
)

// WriteFileRequest describes a file write routed through the artifact writer.
type WriteFileRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	Category    Category
	ContentType string
	Checksum    string
}

// ArtifactWriter stores build output. Paths are slash separated and
// relative to the output root.
type ArtifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req WriteFileRequest) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Clean(ctx context.Context) error
}

// NewDirWriter writes artifacts below root on the local disk.
func NewDirWriter(root string) ArtifactWriter {
	return &dirWriter{root: filepath.Clean(root)}
}

type dirWriter struct {
	root string
}

func (w *dirWriter) resolve(rel string) (string, error) {
	clean := path.Clean("/" + filepath.ToSlash(strings.TrimSpace(rel)))
	if clean == "/" {
		return w.root, nil
	}
	return filepath.Join(w.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func (w *dirWriter) EnsureDir(ctx context.Context, rel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := w.resolve(rel)
	if err != nil {
		return err
	}
	return os.MkdirAll(target, 0o755)
}

func (w *dirWriter) WriteFile(ctx context.Context, req WriteFileRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Content == nil {
		return errors.New("generator: write requires content reader")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("generator: write requires path")
	}
	target, err := w.resolve(req.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("generator: ensure dir for %s: %w", req.Path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".folio-*")
	if err != nil {
		return fmt.Errorf("generator: write %s: %w", req.Path, err)
	}
	if _, err := io.Copy(tmp, req.Content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("generator: write %s: %w", req.Path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("generator: write %s: %w", req.Path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("generator: write %s: %w", req.Path, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("generator: write %s: %w", req.Path, err)
	}
	return nil
}

func (w *dirWriter) ReadFile(ctx context.Context, rel string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := w.resolve(rel)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(target)
}

// Clean removes the contents of the output root but keeps the directory.
func (w *dirWriter) Clean(ctx context.Context) error {
	entries, err := os.ReadDir(w.root)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("generator: clean %s: %w", w.root, err)
	}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.RemoveAll(filepath.Join(w.root, entry.Name())); err != nil {
			return fmt.Errorf("generator: clean %s: %w", entry.Name(), err)
		}
	}
	return nil
}

type noopWriter struct{}

func (noopWriter) EnsureDir(context.Context, string) error { return nil }

func (noopWriter) WriteFile(context.Context, WriteFileRequest) error { return nil }

func (noopWriter) ReadFile(context.Context, string) ([]byte, error) { return nil, os.ErrNotExist }

func (noopWriter) Clean(context.Context) error { return nil }
