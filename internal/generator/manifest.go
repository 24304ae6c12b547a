package generator

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

const (
	manifestFileName    = ".folio-manifest.json"
	manifestFileVersion = 1
)

// buildManifest records the checksum of every file the last successful
// build wrote, so incremental builds can skip unchanged output.
type buildManifest struct {
	Version     int                      `json:"version"`
	BuildID     string                   `json:"build_id"`
	GeneratedAt time.Time                `json:"generated_at"`
	Files       map[string]manifestEntry `json:"-"`
}

type manifestEntry struct {
	Path     string   `json:"path"`
	Category Category `json:"category"`
	Checksum string   `json:"checksum"`
	Size     int      `json:"size"`
}

func newBuildManifest() *buildManifest {
	return &buildManifest{
		Version: manifestFileVersion,
		Files:   map[string]manifestEntry{},
	}
}

type manifestFile struct {
	Version     int             `json:"version"`
	BuildID     string          `json:"build_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Files       []manifestEntry `json:"files"`
}

func parseManifest(data []byte) (*buildManifest, error) {
	if len(data) == 0 {
		return newBuildManifest(), nil
	}
	var file manifestFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("generator: parse manifest: %w", err)
	}
	manifest := newBuildManifest()
	manifest.BuildID = file.BuildID
	manifest.GeneratedAt = file.GeneratedAt
	if file.Version != 0 {
		manifest.Version = file.Version
	}
	for _, entry := range file.Files {
		manifest.Files[entry.Path] = entry
	}
	return manifest, nil
}

// marshal encodes files ordered by path so manifests diff cleanly.
func (m *buildManifest) marshal() ([]byte, error) {
	file := manifestFile{
		Version:     m.Version,
		BuildID:     m.BuildID,
		GeneratedAt: m.GeneratedAt,
		Files:       make([]manifestEntry, 0, len(m.Files)),
	}
	for _, entry := range m.Files {
		file.Files = append(file.Files, entry)
	}
	sort.Slice(file.Files, func(i, j int) bool {
		return file.Files[i].Path < file.Files[j].Path
	})
	return json.MarshalIndent(file, "", "  ")
}

func (m *buildManifest) unchanged(path, checksum string) bool {
	entry, ok := m.Files[path]
	return ok && entry.Checksum == checksum
}

func (m *buildManifest) set(entry manifestEntry) {
	m.Files[entry.Path] = entry
}
