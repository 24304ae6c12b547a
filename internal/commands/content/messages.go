package contentcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const validateContentMessageType = "folio.content.validate"

// ValidateContentCommand loads every document under Directory and checks it
// against its collection schema without rendering the site.
type ValidateContentCommand struct {
	// Directory is the content root holding one folder per collection.
	Directory string `json:"directory"`
	// ResultCallback receives the summary when every document is valid.
	ResultCallback func(Summary) `json:"-"`
}

// Type implements command.Message.
func (ValidateContentCommand) Type() string { return validateContentMessageType }

// Validate ensures a directory is supplied.
func (cmd ValidateContentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("folio.content.validate.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// Summary counts the entries of a valid content tree.
type Summary struct {
	Collections map[string]int
	Drafts      int
	Skipped     []string
}

// Total is the number of valid entries, drafts included.
func (s Summary) Total() int {
	total := 0
	for _, n := range s.Collections {
		total += n
	}
	return total
}
