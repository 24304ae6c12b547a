// Package generator exposes the static site generation API for folio hosts.
// Use NewService with Config and Dependencies to render a content library
// into pages, feeds, sitemaps and redirects, or supply a custom renderer
// built on the exported page views.
package generator

import (
	"io/fs"

	internal "github.com/goliatone/go-folio/internal/generator"
)

type (
	Service          = internal.Service
	ContentSource    = internal.ContentSource
	Config           = internal.Config
	BuildOptions     = internal.BuildOptions
	BuildResult      = internal.BuildResult
	RenderedPage     = internal.RenderedPage
	Dependencies     = internal.Dependencies
	ArtifactWriter   = internal.ArtifactWriter
	WriteFileRequest = internal.WriteFileRequest
	Category         = internal.Category
	HTMLRenderer     = internal.HTMLRenderer
	PageView         = internal.PageView
	GroupView        = internal.GroupView
	ItemView         = internal.ItemView
	EntryView        = internal.EntryView
)

const (
	LayoutHome  = internal.LayoutHome
	LayoutList  = internal.LayoutList
	LayoutEntry = internal.LayoutEntry
)

var ErrContentRequired = internal.ErrContentRequired

// NewService wires a static site generator with the supplied configuration and dependencies.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	return internal.NewService(cfg, deps)
}

// NewDirWriter writes artifacts below root on the local disk.
func NewDirWriter(root string) ArtifactWriter {
	return internal.NewDirWriter(root)
}

// NewHTMLRenderer builds the default layouts. Files in overrides replace the
// embedded templates of the same name.
func NewHTMLRenderer(overrides fs.FS) (*HTMLRenderer, error) {
	return internal.NewHTMLRenderer(overrides)
}
