// Package settings holds the learner's drill preferences: a YAML file
// overridden by YOMIAGE_* environment variables.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/yomiage/internal/narration"
	"github.com/abhisek/yomiage/internal/problemgen"
	"github.com/abhisek/yomiage/internal/speech"
)

// Settings are the drill preferences.
type Settings struct {
	Rows        int    `yaml:"rows" env:"YOMIAGE_ROWS"`
	MinDigit    int    `yaml:"min_digit" env:"YOMIAGE_MIN_DIGIT"`
	MaxDigit    int    `yaml:"max_digit" env:"YOMIAGE_MAX_DIGIT"`
	Subtraction bool   `yaml:"subtraction" env:"YOMIAGE_SUBTRACTION"`
	Grammar     string `yaml:"grammar" env:"YOMIAGE_GRAMMAR"`
	Unit        string `yaml:"unit" env:"YOMIAGE_UNIT"`
	Speed       int    `yaml:"speed" env:"YOMIAGE_SPEED"`
	Voice       string `yaml:"voice" env:"YOMIAGE_VOICE"`
	SetsDir     string `yaml:"sets_dir" env:"YOMIAGE_SETS_DIR"`

	// Player is an audio player command template; see package player.
	// Empty leaves clips on disk without playing them.
	Player   string `yaml:"player" env:"YOMIAGE_PLAYER"`
	AudioDir string `yaml:"audio_dir" env:"YOMIAGE_AUDIO_DIR"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		Rows:        5,
		MinDigit:    1,
		MaxDigit:    3,
		Subtraction: true,
		Grammar:     string(narration.GrammarPunctuated),
		Speed:       5,
		SetsDir:     "data",
	}
}

// Load reads settings from a YAML file, then applies environment variable
// overrides. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parse settings: %w", err)
		}
	}

	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("parse env: %w", err)
	}
	return s, s.Validate()
}

// Save writes settings as YAML, creating the parent directory.
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// DefaultPath resolves the settings file path in priority order:
// 1. YOMIAGE_SETTINGS environment variable
// 2. $XDG_CONFIG_HOME/yomiage/settings.yaml
// 3. ~/.config/yomiage/settings.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("YOMIAGE_SETTINGS"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "yomiage", "settings.yaml"), nil
}

// Validate checks every field against what the generator, composer and
// player accept.
func (s Settings) Validate() error {
	if err := s.Options().Validate(); err != nil {
		return err
	}
	if _, err := narration.ParseGrammar(s.Grammar); err != nil {
		return err
	}
	if s.Speed < speech.MinLevel || s.Speed > speech.MaxLevel {
		return fmt.Errorf("speed must be between %d and %d, got %d", speech.MinLevel, speech.MaxLevel, s.Speed)
	}
	return nil
}

// Options returns the generator options.
func (s Settings) Options() problemgen.Options {
	return problemgen.Options{
		Rows:             s.Rows,
		MinDigit:         s.MinDigit,
		MaxDigit:         s.MaxDigit,
		AllowSubtraction: s.Subtraction,
	}
}

// NarrationConfig returns the composer configuration.
func (s Settings) NarrationConfig() narration.Config {
	cfg := narration.DefaultConfig()
	if g, err := narration.ParseGrammar(s.Grammar); err == nil {
		cfg.Grammar = g
	}
	cfg.Unit = s.Unit
	return cfg
}

// PlaybackRate returns the player rate for the speed level.
func (s Settings) PlaybackRate() float64 {
	return speech.PlaybackRate(s.Speed)
}
