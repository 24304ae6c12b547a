package workspacecmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const resolveProjectDirMessageType = "folio.workspace.resolve_project_dir"

// ResolveProjectDirCommand locates the source folder of a workspace project.
type ResolveProjectDirCommand struct {
	// ProjectName is nil when the caller is not bound to a project.
	ProjectName *string `json:"project_name,omitempty"`
	// Root is the workspace root directory.
	Root string `json:"root"`
	// LibsDir overrides the libraries folder; empty reads nx.json.
	LibsDir string `json:"libs_dir,omitempty"`
	// ResultCallback receives the resolution.
	ResultCallback func(Resolution) `json:"-"`
}

// Type implements command.Message.
func (ResolveProjectDirCommand) Type() string { return resolveProjectDirMessageType }

// Validate ensures a workspace root is supplied.
func (cmd ResolveProjectDirCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Root, validation.Required),
	)
}

// Resolution is the outcome of a lookup. Found is false when the command
// carried no project name.
type Resolution struct {
	Dir     string
	LibsDir string
	Found   bool
}
