package speech

import (
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("speech provider unavailable: %v", e.Err)
	}
	return "speech provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrEmptyAudio indicates the provider answered without any audio.
type ErrEmptyAudio struct {
	Model string
}

func (e *ErrEmptyAudio) Error() string {
	return fmt.Sprintf("%s returned no audio", e.Model)
}

// ErrInputTooLong indicates the text exceeds what the provider accepts in
// one request. Retrying cannot help.
type ErrInputTooLong struct {
	Length int
	Max    int
}

func (e *ErrInputTooLong) Error() string {
	return fmt.Sprintf("narration too long for synthesis: %d characters (max %d)", e.Length, e.Max)
}
