package speech

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config selects a speech backend and the decorators around it. Every
// field tagged env can be set as YOMIAGE_<tag>.
type Config struct {
	// Provider is "openai", "gemini" or "mock".
	Provider string `env:"SPEECH_PROVIDER"`

	OpenAI OpenAIConfig `envPrefix:"OPENAI_"`
	Gemini GeminiConfig `envPrefix:"GEMINI_"`
	Retry  RetryConfig

	// Timeout bounds one narration including retries.
	Timeout time.Duration `env:"SPEECH_TIMEOUT"`

	// CacheSize is how many clips the audio cache keeps; 0 disables it.
	CacheSize int `env:"AUDIO_CACHE_SIZE"`
}

type OpenAIConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL"` // "tts", "tts-hd" or a model ID
	Voice  string `env:"VOICE"`

	// BaseURL points at an OpenAI-compatible speech endpoint.
	BaseURL string `env:"BASE_URL"`
}

type GeminiConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL"`
	Voice  string `env:"VOICE"` // a prebuilt voice such as "Kore"
}

// RetryConfig shapes the exponential backoff of WithRetry.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultConfig() Config {
	return Config{
		Provider: "openai",
		OpenAI:   OpenAIConfig{Model: "tts", Voice: "alloy"},
		Gemini:   GeminiConfig{Model: "gemini-tts", Voice: "Kore"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout:   time.Minute,
		CacheSize: 200,
	}
}

// ConfigFromEnv overlays YOMIAGE_* variables on DefaultConfig. Unset
// variables keep their defaults.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "YOMIAGE_"}); err != nil {
		return cfg, fmt.Errorf("speech config: %w", err)
	}
	return cfg, nil
}

// DiscoverConfig looks for the providers' own key variables, OpenAI
// first, and reports whether one was found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("YOMIAGE_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("YOMIAGE_GEMINI_API_KEY is required for the gemini provider")
		}
	case "mock":
		// Offline; no key needed.
	default:
		return fmt.Errorf("unknown speech provider: %q", c.Provider)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("speech timeout must be positive, got %s", c.Timeout)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("audio cache size must not be negative, got %d", c.CacheSize)
	}
	return nil
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	// Unknown names pass through as direct model IDs.
	return name
}
