package problemgen

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config controls the sign-assignment search of the Generator.
type Config struct {
	// MaxSignAttempts bounds the random search for a set of negative
	// interior rows. When no attempt reaches the target, the best attempt
	// is used.
	MaxSignAttempts int `env:"SIGN_ATTEMPTS"`

	// NegativeChance is the probability that an eligible interior row is
	// marked negative in a single attempt (0.0-1.0).
	NegativeChance float64 `env:"NEGATIVE_CHANCE"`

	// MaxNegativeRun is the longest allowed run of consecutive negative rows.
	MaxNegativeRun int `env:"MAX_NEGATIVE_RUN"`
}

// DefaultConfig returns a Config with the recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxSignAttempts: 100,
		NegativeChance:  0.7,
		MaxNegativeRun:  2,
	}
}

// ConfigFromEnv overlays YOMIAGE_SIGN_ATTEMPTS, YOMIAGE_NEGATIVE_CHANCE
// and YOMIAGE_MAX_NEGATIVE_RUN on DefaultConfig. Unset variables keep
// their defaults; malformed or out-of-range values are errors.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "YOMIAGE_"}); err != nil {
		return cfg, fmt.Errorf("generator config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("generator config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the search is bounded and the weights are sane.
func (c Config) Validate() error {
	if c.MaxSignAttempts < 1 {
		return fmt.Errorf("max sign attempts must be positive, got %d", c.MaxSignAttempts)
	}
	if c.NegativeChance < 0 || c.NegativeChance > 1 {
		return fmt.Errorf("negative chance must be between 0 and 1, got %v", c.NegativeChance)
	}
	if c.MaxNegativeRun < 1 {
		return fmt.Errorf("max negative run must be positive, got %d", c.MaxNegativeRun)
	}
	return nil
}
