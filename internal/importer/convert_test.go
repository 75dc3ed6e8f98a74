package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/stickies/internal/domain"
	"github.com/alexanderramin/stickies/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_KeepsGivenFields(t *testing.T) {
	notes := Convert([]NoteImport{
		{ID: "n1", Text: "Buy milk", Position: &PositionImport{Top: 10, Left: 20}, Color: "Blue"},
	}, domain.MultiPalette)

	require.Len(t, notes, 1)
	assert.Equal(t, domain.Note{
		ID:       "n1",
		Text:     "Buy milk",
		Position: domain.Position{Top: 10, Left: 20},
		Color:    domain.ColorBlue,
	}, notes[0])
}

func TestConvert_FillsDefaults(t *testing.T) {
	notes := Convert([]NoteImport{{Text: "bare"}}, domain.MultiPalette)

	require.Len(t, notes, 1)
	_, err := uuid.Parse(notes[0].ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.Position{}, notes[0].Position)
	assert.Equal(t, domain.ColorYellow, notes[0].Color)
}

func TestConvert_PreservesOrder(t *testing.T) {
	notes := Convert([]NoteImport{{Text: "a"}, {Text: "b"}, {Text: "c"}}, domain.SinglePalette)

	texts := make([]string, len(notes))
	for i, n := range notes {
		texts[i] = n.Text
	}
	assert.Equal(t, []string{"a", "b", "c"}, texts)
}

func TestParse_JSONAndYAML(t *testing.T) {
	fromJSON, err := Parse([]byte(`[{"text":"hi","position":{"top":1,"left":2}}]`), store.FormatJSON)
	require.NoError(t, err)

	fromYAML, err := Parse([]byte("- text: hi\n  position:\n    top: 1\n    left: 2\n"), store.FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	require.Len(t, fromJSON, 1)
	assert.Equal(t, &PositionImport{Top: 1, Left: 2}, fromJSON[0].Position)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("[{"), store.FormatJSON)
	assert.ErrorIs(t, err, store.ErrCorruptSnapshot)

	_, err = Parse([]byte("text: not a list"), store.FormatYAML)
	assert.ErrorIs(t, err, store.ErrCorruptSnapshot)

	_, err = Parse([]byte("[]"), store.Format("toml"))
	assert.ErrorIs(t, err, store.ErrUnknownFormat)
}

func TestLoadImportFile_FormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.yml")
	require.NoError(t, os.WriteFile(path, []byte("- text: from yaml\n"), 0o644))

	notes, err := LoadImportFile(path, "")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "from yaml", notes[0].Text)

	_, err = LoadImportFile(filepath.Join(dir, "missing.json"), "")
	assert.Error(t, err)
}
