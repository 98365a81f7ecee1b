package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SpeechEventData captures a single speech synthesis request. The
// narration itself is not kept, only its length in characters.
type SpeechEventData struct {
	SessionID    string
	Provider     string
	Model        string
	Voice        string
	Purpose      string
	Characters   int
	AudioBytes   int
	Format       string
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// SpeechEventRecord is a stored speech event.
type SpeechEventRecord struct {
	ID        int
	EventID   string
	Sequence  int64
	Timestamp time.Time
	SpeechEventData
}

// SpeechEventRepo provides append and query access to speech events.
type SpeechEventRepo interface {
	// AppendSpeechRequest records a synthesis call.
	AppendSpeechRequest(ctx context.Context, data SpeechEventData) error

	// QuerySpeechEvents returns events newest first.
	QuerySpeechEvents(ctx context.Context, opts QueryOpts) ([]SpeechEventRecord, error)

	// GetSpeechEvent returns a single event by row ID, or nil if absent.
	GetSpeechEvent(ctx context.Context, id int) (*SpeechEventRecord, error)

	// SpeechUsageByModel aggregates events per provider and model,
	// busiest first.
	SpeechUsageByModel(ctx context.Context) ([]SpeechUsage, error)
}

// SpeechUsage is the aggregate of all events for one provider and model.
type SpeechUsage struct {
	Provider     string
	Model        string
	Calls        int
	Failures     int
	Characters   int
	AudioBytes   int64
	AvgLatencyMs int64
}

// CachedAudio is a synthesized clip held in the cache.
type CachedAudio struct {
	Data   []byte
	Format string
}

// AudioCache stores synthesized clips by content key.
type AudioCache interface {
	// Get returns the clip for key, or nil if absent.
	Get(ctx context.Context, key string) (*CachedAudio, error)

	// Put stores or replaces the clip for key.
	Put(ctx context.Context, key string, audio CachedAudio) error

	// Prune deletes all but the keep most recently used clips.
	Prune(ctx context.Context, keep int) error

	// Len returns the number of cached clips.
	Len(ctx context.Context) (int, error)
}
