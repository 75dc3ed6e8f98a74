// Package importer reads note files written by hand or by export and turns
// them into board notes.
package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/stickies/internal/store"
	"gopkg.in/yaml.v3"
)

// NoteImport is one note in an import file. Everything but text is
// optional so hand-written files stay short.
type NoteImport struct {
	ID       string          `json:"id,omitempty" yaml:"id,omitempty"`
	Text     string          `json:"text" yaml:"text"`
	Position *PositionImport `json:"position,omitempty" yaml:"position,omitempty"`
	Color    string          `json:"color,omitempty" yaml:"color,omitempty"`
}

// PositionImport is a note position in board cells.
type PositionImport struct {
	Top  float64 `json:"top" yaml:"top"`
	Left float64 `json:"left" yaml:"left"`
}

// LoadImportFile reads and parses an import file. The format follows the
// file extension unless format is non-empty.
func LoadImportFile(path string, format store.Format) ([]NoteImport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = store.FormatFromPath(path)
	}
	return Parse(data, format)
}

// Parse decodes a JSON or YAML array of notes. Malformed input wraps
// store.ErrCorruptSnapshot.
func Parse(data []byte, format store.Format) ([]NoteImport, error) {
	var notes []NoteImport
	var err error
	switch format {
	case store.FormatJSON:
		err = json.Unmarshal(data, &notes)
	case store.FormatYAML:
		err = yaml.Unmarshal(data, &notes)
	default:
		return nil, fmt.Errorf("%q: %w", format, store.ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing import file: %w: %v", store.ErrCorruptSnapshot, err)
	}
	return notes, nil
}
