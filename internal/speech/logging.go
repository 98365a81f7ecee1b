package speech

import (
	"context"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/abhisek/yomiage/internal/store"
)

// LoggingSynthesizer is a decorator that records every synthesis call as
// a speech event.
type LoggingSynthesizer struct {
	inner     Synthesizer
	provider  string
	eventRepo store.SpeechEventRepo
}

// WithLogging wraps a Synthesizer with event logging. provider names the
// backend in the event log.
func WithLogging(s Synthesizer, provider string, repo store.SpeechEventRepo) Synthesizer {
	return &LoggingSynthesizer{inner: s, provider: provider, eventRepo: repo}
}

func (l *LoggingSynthesizer) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	start := time.Now()

	audio, err := l.inner.Synthesize(ctx, req)

	data := store.SpeechEventData{
		SessionID:  SessionIDFrom(ctx),
		Provider:   l.provider,
		Model:      l.inner.ModelID(),
		Voice:      req.Voice,
		Purpose:    PurposeFrom(ctx),
		Characters: utf8.RuneCountInString(req.Text),
		LatencyMs:  time.Since(start).Milliseconds(),
		Success:    err == nil,
	}
	if audio != nil {
		data.AudioBytes = len(audio.Data)
		data.Format = audio.Format
		if audio.Model != "" {
			data.Model = audio.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// A logging failure never fails the request.
	if logErr := l.eventRepo.AppendSpeechRequest(context.WithoutCancel(ctx), data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log speech event: %v\n", logErr)
	}

	return audio, err
}

func (l *LoggingSynthesizer) ModelID() string {
	return l.inner.ModelID()
}
