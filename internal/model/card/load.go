package card

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrLoad reports a card source that is missing, unreadable or not a list of records.
var ErrLoad = errors.New("card source load failed")

// Format selects the decoder for a card source.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension; anything that is not
// YAML is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile reads the collection stored at path.
func LoadFile(path string) (Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer f.Close()

	items, err := Load(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// Load decodes a sequence of card records from r.
func Load(r io.Reader, format Format) (Collection, error) {
	var raw any
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: invalid yaml: %v", ErrLoad, err)
		}
		raw = normalizeYAML(raw)
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: invalid json: %v", ErrLoad, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrLoad, format)
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is %T, want a list of records", ErrLoad, raw)
	}

	items := make(Collection, 0, len(list))
	for i, entry := range list {
		record, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d is %T, want a record", ErrLoad, i, entry)
		}
		items = append(items, Card(record))
	}
	return items, nil
}

// normalizeYAML rewrites map[any]any nodes (non-string keys) into
// map[string]any so decoded cards stay JSON-encodable.
func normalizeYAML(v any) any {
	switch node := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, val := range node {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case map[string]any:
		for k, val := range node {
			node[k] = normalizeYAML(val)
		}
		return node
	case []any:
		for i, val := range node {
			node[i] = normalizeYAML(val)
		}
		return node
	default:
		return v
	}
}
