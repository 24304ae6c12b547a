package workspacecmd

import (
	"context"
	"io/fs"
	"os"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-folio/internal/commands"
	"github.com/goliatone/go-folio/internal/workspace"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

var _ command.Commander[ResolveProjectDirCommand] = (*ResolveProjectDirHandler)(nil)

// FSOpener exposes the workspace root as a filesystem.
type FSOpener func(root string) fs.FS

// ResolveProjectDirHandler resolves project directories through the shared command handler.
type ResolveProjectDirHandler struct {
	inner *commands.Handler[ResolveProjectDirCommand]
}

// NewResolveProjectDirHandler creates the handler. A nil opener reads the
// local disk.
func NewResolveProjectDirHandler(open FSOpener, logger interfaces.Logger, opts ...commands.HandlerOption[ResolveProjectDirCommand]) *ResolveProjectDirHandler {
	if open == nil {
		open = os.DirFS
	}
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ResolveProjectDirCommand) error {
		if msg.ProjectName == nil {
			// Not applicable: nx.json is irrelevant without a project.
			if msg.ResultCallback != nil {
				msg.ResultCallback(Resolution{})
			}
			return nil
		}

		var nx *workspace.NxJSONConfiguration
		if msg.LibsDir != "" {
			libs := msg.LibsDir
			nx = &workspace.NxJSONConfiguration{WorkspaceLayout: &workspace.WorkspaceLayout{LibsDir: &libs}}
		} else {
			cfg, err := workspace.ReadNxJSON(open(msg.Root))
			if err != nil {
				return err
			}
			nx = cfg
		}

		dir, found := workspace.ResolveProjectDir(workspace.ExecutorContext{
			ProjectName:         msg.ProjectName,
			Root:                msg.Root,
			NxJSONConfiguration: nx,
		})
		if msg.ResultCallback != nil {
			msg.ResultCallback(Resolution{Dir: dir, LibsDir: workspace.LibsFolder(nx), Found: found})
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ResolveProjectDirCommand]{
		commands.WithLogger[ResolveProjectDirCommand](baseLogger),
		commands.WithOperation[ResolveProjectDirCommand]("workspace.resolve_project_dir"),
		commands.WithMessageFields(func(msg ResolveProjectDirCommand) map[string]any {
			fields := map[string]any{"root": msg.Root}
			if msg.ProjectName != nil {
				fields["project"] = *msg.ProjectName
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ResolveProjectDirHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ResolveProjectDirCommand].
func (h *ResolveProjectDirHandler) Execute(ctx context.Context, msg ResolveProjectDirCommand) error {
	return h.inner.Execute(ctx, msg)
}
