package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-folio/internal/validation"
)

// NxJSONFile is the workspace configuration file name.
const NxJSONFile = "nx.json"

var ErrInvalidNxJSON = errors.New("workspace: invalid nx.json")

var nxJSONSchema = validation.MustCompile(NxJSONFile, map[string]any{
	"type": "object",
	"properties": map[string]any{
		"workspaceLayout": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"appsDir": map[string]any{"type": "string"},
				"libsDir": map[string]any{"type": "string"},
			},
		},
	},
})

// ReadNxJSON loads nx.json from the workspace root. A missing file yields a
// nil configuration and no error.
func ReadNxJSON(fsys fs.FS) (*NxJSONConfiguration, error) {
	raw, err := fs.ReadFile(fsys, NxJSONFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("workspace: read %s: %w", NxJSONFile, err)
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNxJSON, err)
	}
	if err := nxJSONSchema.Validate(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNxJSON, err)
	}

	var cfg NxJSONConfiguration
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNxJSON, err)
	}
	return &cfg, nil
}

// ReadLibsFolder resolves the libraries folder of the workspace in fsys.
func ReadLibsFolder(fsys fs.FS) (string, error) {
	cfg, err := ReadNxJSON(fsys)
	if err != nil {
		return "", err
	}
	return LibsFolder(cfg), nil
}
