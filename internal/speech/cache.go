package speech

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/abhisek/yomiage/internal/store"
)

// CachingSynthesizer serves repeated narrations from the audio cache.
// Requests not marked Cacheable bypass it, so generated problems never
// outlive the run.
type CachingSynthesizer struct {
	inner Synthesizer
	cache store.AudioCache
	keep  int
}

// WithCache wraps a Synthesizer with a read-through audio cache holding at
// most keep clips.
func WithCache(s Synthesizer, cache store.AudioCache, keep int) Synthesizer {
	return &CachingSynthesizer{inner: s, cache: cache, keep: keep}
}

func (c *CachingSynthesizer) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	if !req.Cacheable {
		return c.inner.Synthesize(ctx, req)
	}
	key := CacheKey(c.inner.ModelID(), req)

	hit, err := c.cache.Get(ctx, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: audio cache read failed: %v\n", err)
	}
	if hit != nil {
		return &Audio{Data: hit.Data, Format: hit.Format, Model: c.inner.ModelID()}, nil
	}

	audio, err := c.inner.Synthesize(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Put(ctx, key, store.CachedAudio{Data: audio.Data, Format: audio.Format}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audio cache write failed: %v\n", err)
		return audio, nil
	}
	if err := c.cache.Prune(ctx, c.keep); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audio cache prune failed: %v\n", err)
	}
	return audio, nil
}

func (c *CachingSynthesizer) ModelID() string {
	return c.inner.ModelID()
}

// CacheKey identifies a clip by model, voice and text. Cacheable is not
// part of the key.
func CacheKey(model string, req Request) string {
	h := sha256.New()
	for _, part := range []string{model, req.Voice, req.Text} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
