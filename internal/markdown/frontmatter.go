package markdown

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

// ParseFrontMatter extracts the raw metadata block and the Markdown body
// from source. A file without front matter yields an empty map.
func ParseFrontMatter(source []byte) (map[string]any, []byte, error) {
	meta := map[string]any{}

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return normalizeMap(meta), body, nil
}

// BuildDocument assembles a Document from a path relative to the content
// root. BodyHTML is left empty so callers can render lazily.
func BuildDocument(rel string, source []byte, modified time.Time) (*interfaces.Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rel, err)
	}

	collection, id := SplitContentPath(rel)
	return &interfaces.Document{
		FilePath:     rel,
		Collection:   collection,
		ID:           id,
		FrontMatter:  meta,
		Body:         body,
		LastModified: modified,
	}, nil
}

// SplitContentPath derives the collection and entry ID from a slash
// separated path relative to the content root. Files at the root belong to
// no collection.
func SplitContentPath(rel string) (collection, id string) {
	rel = strings.TrimPrefix(path.Clean(strings.ReplaceAll(rel, "\\", "/")), "./")
	rel = strings.TrimSuffix(rel, path.Ext(rel))

	first, rest, found := strings.Cut(rel, "/")
	if !found {
		return "", rel
	}
	return first, rest
}

// normalizeMap converts nested YAML maps with interface keys into
// map[string]any so documents can be encoded as JSON.
func normalizeMap(input map[string]any) map[string]any {
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return normalizeMap(typed)
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			out[fmt.Sprint(key)] = normalizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, inner := range typed {
			out[i] = normalizeValue(inner)
		}
		return out
	default:
		return value
	}
}
