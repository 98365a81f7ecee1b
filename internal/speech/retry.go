package speech

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetrySynthesizer is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetrySynthesizer struct {
	inner  Synthesizer
	config RetryConfig
}

// WithRetry wraps a Synthesizer with retry logic.
func WithRetry(s Synthesizer, cfg RetryConfig) Synthesizer {
	return &RetrySynthesizer{inner: s, config: cfg}
}

func (r *RetrySynthesizer) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	var lastErr error
	emptyRetried := false

	attempts := max(r.config.MaxAttempts, 1)
	for attempt := range attempts {
		audio, err := r.inner.Synthesize(ctx, req)
		if err == nil {
			return audio, nil
		}
		lastErr = err

		if !shouldRetry(err, &emptyRetried) {
			return nil, err
		}

		if attempt == attempts-1 {
			break
		}

		wait := r.backoff(attempt, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return nil, lastErr
}

func (r *RetrySynthesizer) ModelID() string {
	return r.inner.ModelID()
}

func shouldRetry(err error, emptyRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var tooLong *ErrInputTooLong
	if errors.As(err, &tooLong) {
		return false
	}

	// An empty clip gets one more chance.
	var empty *ErrEmptyAudio
	if errors.As(err, &empty) {
		if *emptyRetried {
			return false
		}
		*emptyRetried = true
		return true
	}

	// Rate limits, outages and network errors are transient.
	return true
}

func (r *RetrySynthesizer) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}

// timeoutSynthesizer bounds every call, retries included.
type timeoutSynthesizer struct {
	inner   Synthesizer
	timeout time.Duration
}

// WithTimeout wraps a Synthesizer so each call gives up after d.
// A non-positive d returns s unchanged.
func WithTimeout(s Synthesizer, d time.Duration) Synthesizer {
	if d <= 0 {
		return s
	}
	return &timeoutSynthesizer{inner: s, timeout: d}
}

func (t *timeoutSynthesizer) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Synthesize(ctx, req)
}

func (t *timeoutSynthesizer) ModelID() string {
	return t.inner.ModelID()
}
