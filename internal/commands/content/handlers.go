package contentcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-folio/internal/commands"
	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

const validateOperation = "content.validate"

// ErrLoaderRequired is returned when the handler has no content loader.
var ErrLoaderRequired = errors.New("content command: loader is required")

var _ command.Commander[ValidateContentCommand] = (*ValidateContentHandler)(nil)

// Loader produces a validated library; content.Loader implements it.
type Loader interface {
	Load(ctx context.Context, dir string) (*content.Library, error)
}

// ValidateContentHandler runs content validation through the shared command handler.
type ValidateContentHandler struct {
	inner *commands.Handler[ValidateContentCommand]
}

// NewValidateContentHandler creates a handler bound to loader.
func NewValidateContentHandler(loader Loader, logger interfaces.Logger, opts ...commands.HandlerOption[ValidateContentCommand]) *ValidateContentHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ValidateContentCommand) error {
		if loader == nil {
			return ErrLoaderRequired
		}
		lib, err := loader.Load(ctx, msg.Directory)
		if err != nil {
			return err
		}

		summary := Summary{Collections: map[string]int{}, Skipped: lib.Skipped()}
		for _, collection := range lib.Collections() {
			all := lib.All(collection)
			summary.Collections[collection] = len(all)
			summary.Drafts += len(all) - len(lib.Published(collection))
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(summary)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ValidateContentCommand]{
		commands.WithLogger[ValidateContentCommand](baseLogger),
		commands.WithOperation[ValidateContentCommand](validateOperation),
		commands.WithMessageFields(func(msg ValidateContentCommand) map[string]any {
			return map[string]any{"directory": msg.Directory}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ValidateContentCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ValidateContentHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ValidateContentCommand].
func (h *ValidateContentHandler) Execute(ctx context.Context, msg ValidateContentCommand) error {
	return h.inner.Execute(ctx, msg)
}
