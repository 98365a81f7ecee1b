package speech

import (
	"context"
	"fmt"

	"github.com/abhisek/yomiage/internal/store"
)

// NewSynthesizer creates a Synthesizer from configuration, wrapped with
// middleware. A nil repo skips event logging and a nil cache skips caching.
func NewSynthesizer(ctx context.Context, cfg Config, repo store.SpeechEventRepo, cache store.AudioCache) (Synthesizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Synthesizer
	var err error

	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAISynthesizer(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiSynthesizer(ctx, cfg.Gemini)
	case "mock":
		base = NewSilentSynthesizer()
	default:
		return nil, fmt.Errorf("unknown speech provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s synthesizer: %w", cfg.Provider, err)
	}

	// caller → timeout → cache → retry → logging → base
	s := base
	if repo != nil {
		s = WithLogging(s, cfg.Provider, repo)
	}
	s = WithRetry(s, cfg.Retry)
	if cache != nil && cfg.CacheSize > 0 {
		s = WithCache(s, cache, cfg.CacheSize)
	}
	return WithTimeout(s, cfg.Timeout), nil
}

// NewSynthesizerFromEnv builds a Synthesizer from YOMIAGE_* variables and
// falls back to OPENAI_API_KEY / GEMINI_API_KEY when the selected provider
// has no key.
func NewSynthesizerFromEnv(ctx context.Context, repo store.SpeechEventRepo, cache store.AudioCache) (Synthesizer, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		discovered.CacheSize = cfg.CacheSize
		discovered.Timeout = cfg.Timeout
		cfg = discovered
	}
	return NewSynthesizer(ctx, cfg, repo, cache)
}
