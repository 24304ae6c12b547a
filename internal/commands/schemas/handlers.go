package schemacmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-folio/internal/collections"
	"github.com/goliatone/go-folio/internal/commands"
	"github.com/goliatone/go-folio/internal/generator"
	"github.com/goliatone/go-folio/internal/validation"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// FileSuffix is appended to the collection name of every exported schema.
const FileSuffix = ".schema.json"

var _ command.Commander[ExportSchemasCommand] = (*ExportSchemasHandler)(nil)

// WriterFactory opens an artifact writer rooted at dir.
type WriterFactory func(dir string) generator.ArtifactWriter

// ExportSchemasHandler compiles collection schemas and writes them to disk.
type ExportSchemasHandler struct {
	inner *commands.Handler[ExportSchemasCommand]
}

// NewExportSchemasHandler creates a handler exporting the schemas of registry.
// A nil registry uses the default collections; a nil factory writes to disk.
func NewExportSchemasHandler(registry *collections.Registry, writers WriterFactory, logger interfaces.Logger, opts ...commands.HandlerOption[ExportSchemasCommand]) *ExportSchemasHandler {
	if registry == nil {
		registry = collections.DefaultRegistry()
	}
	if writers == nil {
		writers = generator.NewDirWriter
	}
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ExportSchemasCommand) error {
		all := registry.JSONSchemas()
		names := registry.Names()
		if len(msg.Collections) > 0 {
			names = names[:0:0]
			for _, name := range msg.Collections {
				name = strings.TrimSpace(name)
				if !registry.Has(name) {
					return fmt.Errorf("%w: %q", collections.ErrUnknownCollection, name)
				}
				names = append(names, name)
			}
		}

		selected := make(map[string]map[string]any, len(names))
		for _, name := range names {
			selected[name] = all[name]
		}
		if err := validation.ValidateSchema(selected); err != nil {
			return err
		}

		writer := writers(msg.OutputDir)
		files := make([]string, 0, len(names))
		for _, name := range names {
			data, err := json.MarshalIndent(selected[name], "", "  ")
			if err != nil {
				return fmt.Errorf("schemas: encode %s: %w", name, err)
			}
			data = append(data, '\n')
			file := name + FileSuffix
			err = writer.WriteFile(ctx, generator.WriteFileRequest{
				Path:        file,
				Content:     bytes.NewReader(data),
				Size:        int64(len(data)),
				ContentType: "application/schema+json",
			})
			if err != nil {
				return err
			}
			files = append(files, file)
		}
		baseLogger.Debug("schemas.exported", "dir", msg.OutputDir, "files", len(files))
		if msg.ResultCallback != nil {
			msg.ResultCallback(files)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportSchemasCommand]{
		commands.WithLogger[ExportSchemasCommand](baseLogger),
		commands.WithOperation[ExportSchemasCommand]("schemas.export"),
		commands.WithMessageFields(func(msg ExportSchemasCommand) map[string]any {
			return map[string]any{"output_dir": msg.OutputDir}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ExportSchemasCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportSchemasHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ExportSchemasCommand].
func (h *ExportSchemasHandler) Execute(ctx context.Context, msg ExportSchemasCommand) error {
	return h.inner.Execute(ctx, msg)
}
