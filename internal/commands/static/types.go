package staticcmd

import (
	"github.com/goliatone/go-folio/internal/generator"
)

const (
	buildSiteMessageType = "folio.static.build"
	cleanSiteMessageType = "folio.static.clean"
)

// ResultCallback receives build results produced by generator operations. The callback is optional
// and is invoked synchronously from the handler when a BuildResult is available.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a static command execution.
type ResultEnvelope struct {
	Result   *generator.BuildResult
	Metadata map[string]any
}

// BuildSiteCommand renders the site. ContentDir overrides the configured
// content root for this run.
type BuildSiteCommand struct {
	ContentDir     string         `json:"content_dir,omitempty"`
	DryRun         bool           `json:"dry_run,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate satisfies command.Message; every field is optional.
func (BuildSiteCommand) Validate() error { return nil }

// CleanSiteCommand empties the output directory.
type CleanSiteCommand struct{}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CleanSiteCommand) Validate() error { return nil }
