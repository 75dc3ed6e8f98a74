// Package config loads stickies settings from defaults, an optional YAML
// file and STICKIES_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/stickies/internal/domain"
	"github.com/spf13/viper"
)

// EmptyTextPolicy decides what happens when the user adds a blank note.
type EmptyTextPolicy string

const (
	// PolicyIgnore silently drops the add.
	PolicyIgnore EmptyTextPolicy = "ignore"
	// PolicyAlert shows a notice the user has to dismiss.
	PolicyAlert EmptyTextPolicy = "alert"
)

// PaletteMode selects between the coloured and the single-colour board.
type PaletteMode string

const (
	PaletteMulti  PaletteMode = "multi"
	PaletteSingle PaletteMode = "single"
)

const (
	minNoteWidth  = 6
	minNoteHeight = 3
)

// Config is the complete stickies configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Board    BoardConfig    `mapstructure:"board"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// BoardConfig controls note creation and rendering.
type BoardConfig struct {
	EmptyTextPolicy EmptyTextPolicy `mapstructure:"empty_text_policy"`
	Palette         PaletteMode     `mapstructure:"palette"`
	NoteWidth       int             `mapstructure:"note_width"`
	NoteHeight      int             `mapstructure:"note_height"`
}

// LogConfig controls the debug log. An empty path discards log output.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	dataDir := DataDir()
	return Config{
		Database: DatabaseConfig{Path: filepath.Join(dataDir, "stickies.db")},
		Board: BoardConfig{
			EmptyTextPolicy: PolicyIgnore,
			Palette:         PaletteMulti,
			NoteWidth:       24,
			NoteHeight:      8,
		},
		Log: LogConfig{
			Path:  filepath.Join(dataDir, "stickies.log"),
			Level: "info",
		},
	}
}

// Load reads configuration from file and env. Env overrides use the
// STICKIES_ prefix with "." replaced by "_", e.g. STICKIES_BOARD_PALETTE.
// A missing config file is not an error.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigType("yaml")
	if path := os.Getenv("STICKIES_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(ConfigDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("STICKIES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Board.EmptyTextPolicy = EmptyTextPolicy(strings.ToLower(string(c.Board.EmptyTextPolicy)))
	c.Board.Palette = PaletteMode(strings.ToLower(string(c.Board.Palette)))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects unknown enum values and unusably small notes.
func (c Config) Validate() error {
	switch c.Board.EmptyTextPolicy {
	case PolicyIgnore, PolicyAlert:
	default:
		return fmt.Errorf("board.empty_text_policy %q: want %q or %q", c.Board.EmptyTextPolicy, PolicyIgnore, PolicyAlert)
	}
	switch c.Board.Palette {
	case PaletteMulti, PaletteSingle:
	default:
		return fmt.Errorf("board.palette %q: want %q or %q", c.Board.Palette, PaletteMulti, PaletteSingle)
	}
	if c.Board.NoteWidth < minNoteWidth || c.Board.NoteHeight < minNoteHeight {
		return fmt.Errorf("note size %dx%d is below the %dx%d minimum",
			c.Board.NoteWidth, c.Board.NoteHeight, minNoteWidth, minNoteHeight)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	return nil
}

// ColorPalette returns the colours new notes are drawn from.
func (b BoardConfig) ColorPalette() domain.Palette {
	if b.Palette == PaletteSingle {
		return domain.SinglePalette
	}
	return domain.MultiPalette
}

// ConfigDir returns the directory holding config.yaml.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "stickies")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stickies"
	}
	return filepath.Join(home, ".config", "stickies")
}

// DataDir returns the directory holding the database and log.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stickies"
	}
	return filepath.Join(home, ".stickies")
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("board.empty_text_policy", string(d.Board.EmptyTextPolicy))
	v.SetDefault("board.palette", string(d.Board.Palette))
	v.SetDefault("board.note_width", d.Board.NoteWidth)
	v.SetDefault("board.note_height", d.Board.NoteHeight)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.level", d.Log.Level)
}
