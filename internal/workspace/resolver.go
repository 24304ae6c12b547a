// Package workspace locates project sources inside an Nx style multi-project
// workspace.
package workspace

import (
	"path"
	"path/filepath"
)

// DefaultLibsDir is the libraries folder used when the workspace layout does
// not name one.
var DefaultLibsDir = "libs"

// WorkspaceLayout is the workspaceLayout block of nx.json.
type WorkspaceLayout struct {
	AppsDir *string `json:"appsDir,omitempty"`
	LibsDir *string `json:"libsDir,omitempty"`
}

// NxJSONConfiguration is the subset of nx.json the resolver reads.
type NxJSONConfiguration struct {
	WorkspaceLayout *WorkspaceLayout `json:"workspaceLayout,omitempty"`
}

// ExecutorContext is what a build-tool executor knows about the project it
// runs for. A nil ProjectName means the executor is not bound to a project.
type ExecutorContext struct {
	ProjectName         *string
	Root                string
	NxJSONConfiguration *NxJSONConfiguration
}

// LibsFolder returns workspaceLayout.libsDir when set, otherwise
// DefaultLibsDir. An explicitly empty libsDir is kept.
func LibsFolder(cfg *NxJSONConfiguration) string {
	if cfg != nil && cfg.WorkspaceLayout != nil && cfg.WorkspaceLayout.LibsDir != nil {
		return *cfg.WorkspaceLayout.LibsDir
	}
	return DefaultLibsDir
}

// ResolveProjectDir returns root/<libs folder>/<basename of project name>.
// The second result is false when the context carries no project name. Only
// the last segment of the name is used, so "@scope/foo" lives in "foo".
func ResolveProjectDir(ctx ExecutorContext) (string, bool) {
	if ctx.ProjectName == nil {
		return "", false
	}
	return filepath.Join(ctx.Root, LibsFolder(ctx.NxJSONConfiguration), basename(*ctx.ProjectName)), true
}

func basename(name string) string {
	if name == "" {
		return ""
	}
	base := path.Base(name)
	if base == "/" || base == "." {
		return ""
	}
	return base
}
