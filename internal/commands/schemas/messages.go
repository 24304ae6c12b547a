package schemacmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const exportSchemasMessageType = "folio.schemas.export"

// ExportSchemasCommand writes one JSON Schema file per collection so editors
// can check front matter while authoring.
type ExportSchemasCommand struct {
	// OutputDir receives <collection>.schema.json files.
	OutputDir string `json:"output_dir"`
	// Collections narrows the export; empty exports every collection.
	Collections []string `json:"collections,omitempty"`
	// ResultCallback receives the written file names.
	ResultCallback func(files []string) `json:"-"`
}

// Type implements command.Message.
func (ExportSchemasCommand) Type() string { return exportSchemasMessageType }

// Validate ensures an output directory is present and collection names are not blank.
func (cmd ExportSchemasCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.OutputDir, validation.Required, validation.By(notBlank("folio.schemas.export.output_dir_required", "output directory is required"))),
		validation.Field(&cmd.Collections, validation.Each(validation.By(notBlank("folio.schemas.export.collection_blank", "collections must not contain empty values")))),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
