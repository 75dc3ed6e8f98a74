package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/stickies/internal/domain"
	"gopkg.in/yaml.v3"
)

var (
	// ErrCorruptSnapshot indicates stored or imported note data could not be parsed.
	ErrCorruptSnapshot = errors.New("corrupt note snapshot")

	// ErrUnknownFormat indicates an export/import format other than json or yaml.
	ErrUnknownFormat = errors.New("unknown snapshot format")
)

// Format is a serialization format for a note collection.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
}

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Encode serializes notes. JSON output is indented for humans; the stored
// snapshot uses marshalSnapshot instead.
func Encode(notes []domain.Note, format Format) ([]byte, error) {
	if notes == nil {
		notes = []domain.Note{}
	}
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(notes, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(notes)
		if err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
}

// Decode parses notes and drops entries that would break id uniqueness.
func Decode(data []byte, format Format) ([]domain.Note, error) {
	var notes []domain.Note
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &notes); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &notes); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	return dedupe(notes), nil
}

func marshalSnapshot(notes []domain.Note) (string, error) {
	if notes == nil {
		notes = []domain.Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}
	return string(data), nil
}

// dedupe drops notes with an empty id and every repeat of an id after its
// first occurrence, preserving order.
func dedupe(notes []domain.Note) []domain.Note {
	seen := make(map[string]struct{}, len(notes))
	out := make([]domain.Note, 0, len(notes))
	for _, n := range notes {
		if n.ID == "" {
			continue
		}
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		out = append(out, n)
	}
	return out
}
