package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/abhisek/yomiage/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMockSynthesizer_FIFO(t *testing.T) {
	mock := NewMockSynthesizer(clip("a"), MockResponse{Err: &ErrRateLimit{}}, clip("b"))

	a, err := mock.Synthesize(context.Background(), Request{Text: "first"})
	if err != nil || string(a.Data) != "a" {
		t.Fatalf("first = %v, %v", a, err)
	}
	var rl *ErrRateLimit
	if _, err := mock.Synthesize(context.Background(), Request{}); !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %v", err)
	}
	b, err := mock.Synthesize(context.Background(), Request{})
	if err != nil || string(b.Data) != "b" {
		t.Fatalf("third = %v, %v", b, err)
	}

	var unavail *ErrProviderUnavailable
	if _, err := mock.Synthesize(context.Background(), Request{}); !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable on empty queue, got %v", err)
	}
	if mock.CallCount() != 4 {
		t.Fatalf("expected 4 calls, got %d", mock.CallCount())
	}
	if mock.Calls[0].Text != "first" {
		t.Fatalf("expected first call recorded, got %q", mock.Calls[0].Text)
	}
}

func TestSilentSynthesizer(t *testing.T) {
	mock := NewSilentSynthesizer()
	short, err := mock.Synthesize(context.Background(), Request{Text: "one"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	long, err := mock.Synthesize(context.Background(), Request{Text: "one thousand two hundred"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if short.Format != "wav" || !bytes.HasPrefix(short.Data, []byte("RIFF")) {
		t.Fatal("expected a WAV clip")
	}
	if len(long.Data) <= len(short.Data) {
		t.Errorf("longer text should give a longer clip: %d <= %d", len(long.Data), len(short.Data))
	}
}

func TestLoggingRecordsEvents(t *testing.T) {
	st := openTestStore(t)
	repo := st.SpeechEventRepo()

	mock := NewMockSynthesizer(clip("abc"), MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	s := WithLogging(mock, "mock", repo)

	ctx := WithSessionID(WithPurpose(context.Background(), "drill"), "sess-9")
	if _, err := s.Synthesize(ctx, Request{Text: "starting with, one", Voice: "alloy"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Synthesize(ctx, Request{Text: "second"}); err == nil {
		t.Fatal("expected error")
	}

	events, err := repo.QuerySpeechEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	failed, succeeded := events[0], events[1]
	if !succeeded.Success || succeeded.AudioBytes != 3 || succeeded.Format != "mp3" {
		t.Errorf("unexpected success event: %+v", succeeded)
	}
	if succeeded.Purpose != "drill" || succeeded.SessionID != "sess-9" || succeeded.Voice != "alloy" || succeeded.Provider != "mock" {
		t.Errorf("unexpected tags: %+v", succeeded)
	}
	if succeeded.Characters != len("starting with, one") {
		t.Errorf("Characters = %d, want %d", succeeded.Characters, len("starting with, one"))
	}
	if failed.Success || failed.ErrorMessage == "" {
		t.Errorf("unexpected failure event: %+v", failed)
	}
}

func TestCacheServesRepeats(t *testing.T) {
	st := openTestStore(t)
	mock := NewMockSynthesizer(clip("first"), clip("second"))
	s := WithCache(mock, st.AudioCache(), 10)

	req := Request{Text: "starting with, five hundred", Cacheable: true}
	a, err := s.Synthesize(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := s.Synthesize(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(a.Data) != "first" || string(b.Data) != "first" {
		t.Fatalf("expected cached clip, got %q then %q", a.Data, b.Data)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 backend call, got %d", mock.CallCount())
	}

	c, err := s.Synthesize(context.Background(), Request{Text: "different", Cacheable: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(c.Data) != "second" {
		t.Fatalf("expected fresh clip, got %q", c.Data)
	}
}

func TestCacheDoesNotStoreFailures(t *testing.T) {
	st := openTestStore(t)
	mock := NewMockSynthesizer(MockResponse{Err: &ErrEmptyAudio{Model: "mock"}}, clip("ok"))
	s := WithCache(mock, st.AudioCache(), 10)

	if _, err := s.Synthesize(context.Background(), Request{Text: "x", Cacheable: true}); err == nil {
		t.Fatal("expected error")
	}
	a, err := s.Synthesize(context.Background(), Request{Text: "x", Cacheable: true})
	if err != nil || string(a.Data) != "ok" {
		t.Fatalf("second = %v, %v", a, err)
	}
}

func TestCacheSkipsGeneratedProblems(t *testing.T) {
	st := openTestStore(t)
	mock := NewMockSynthesizer(clip("first"), clip("second"))
	s := WithCache(mock, st.AudioCache(), 10)

	req := Request{Text: "starting with, seven"}
	for _, want := range []string{"first", "second"} {
		a, err := s.Synthesize(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(a.Data) != want {
			t.Fatalf("got %q, want %q", a.Data, want)
		}
	}

	n, err := st.AudioCache().Len(context.Background())
	if err != nil {
		t.Fatalf("len: %v", err)
	}
	if n != 0 {
		t.Errorf("expected an empty cache, got %d clips", n)
	}
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("m", Request{Text: "one", Voice: "v"})
	if a != CacheKey("m", Request{Text: "one", Voice: "v"}) {
		t.Error("key should be stable")
	}
	if a == CacheKey("m", Request{Text: "one", Voice: "w"}) {
		t.Error("voice should change the key")
	}
	if CacheKey("ab", Request{Text: "c"}) == CacheKey("a", Request{Text: "bc"}) {
		t.Error("fields must not run together")
	}
}

func TestPlaybackRate(t *testing.T) {
	tests := []struct {
		level int
		want  float64
	}{
		{1, 0.6},
		{5, 1.0},
		{10, 1.5},
		{0, 0.6},
		{42, 1.5},
	}
	for _, tt := range tests {
		if got := PlaybackRate(tt.level); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("PlaybackRate(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestWrapPCM(t *testing.T) {
	pcm := []byte{1, 2, 3, 4, 5, 6}
	wav := WrapPCM(pcm, geminiPCM)

	if len(wav) != 44+len(pcm) {
		t.Fatalf("len = %d, want %d", len(wav), 44+len(pcm))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" || string(wav[36:40]) != "data" {
		t.Fatal("bad chunk ids")
	}
	if got := le32(wav[4:8]); got != uint32(36+len(pcm)) {
		t.Errorf("riff size = %d", got)
	}
	if got := le32(wav[24:28]); got != 24000 {
		t.Errorf("sample rate = %d", got)
	}
	if got := le32(wav[28:32]); got != 48000 {
		t.Errorf("byte rate = %d", got)
	}
	if got := le32(wav[40:44]); got != uint32(len(pcm)) {
		t.Errorf("data size = %d", got)
	}
}

func TestPCMFormatFromMIME(t *testing.T) {
	if f := pcmFormatFromMIME("audio/L16;codec=pcm;rate=16000", geminiPCM); f.SampleRate != 16000 {
		t.Errorf("rate = %d", f.SampleRate)
	}
	if f := pcmFormatFromMIME("audio/L16", geminiPCM); f.SampleRate != 24000 {
		t.Errorf("rate = %d", f.SampleRate)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"openai without key", func(c *Config) {}, true},
		{"openai with key", func(c *Config) { c.OpenAI.APIKey = "k" }, false},
		{"gemini without key", func(c *Config) { c.Provider = "gemini" }, true},
		{"mock", func(c *Config) { c.Provider = "mock" }, false},
		{"unknown", func(c *Config) { c.Provider = "espeak" }, true},
		{"negative cache", func(c *Config) { c.Provider = "mock"; c.CacheSize = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("YOMIAGE_SPEECH_PROVIDER", "gemini")
	t.Setenv("YOMIAGE_GEMINI_API_KEY", "g-key")
	t.Setenv("YOMIAGE_GEMINI_VOICE", "Puck")
	t.Setenv("YOMIAGE_AUDIO_CACHE_SIZE", "5")
	t.Setenv("YOMIAGE_SPEECH_TIMEOUT", "15s")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Provider != "gemini" || cfg.Gemini.APIKey != "g-key" || cfg.Gemini.Voice != "Puck" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Gemini.Model != "gemini-tts" || cfg.OpenAI.Voice != "alloy" {
		t.Errorf("unset variables should keep defaults: %+v", cfg)
	}
	if cfg.CacheSize != 5 || cfg.Timeout != 15*time.Second {
		t.Errorf("CacheSize = %d, Timeout = %s", cfg.CacheSize, cfg.Timeout)
	}
}

func TestConfigFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("YOMIAGE_AUDIO_CACHE_SIZE", "lots")
	if _, err := ConfigFromEnv(); err == nil {
		t.Error("expected a parse error")
	}
}

func TestDiscoverConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider discovered")
	}

	t.Setenv("GEMINI_API_KEY", "g")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "gemini" {
		t.Fatalf("expected gemini, got %+v", cfg)
	}

	t.Setenv("OPENAI_API_KEY", "o")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != "openai" || cfg.OpenAI.APIKey != "o" {
		t.Fatalf("expected openai to take priority, got %+v", cfg)
	}
}

func TestNewSynthesizer_Mock(t *testing.T) {
	st := openTestStore(t)
	cfg := DefaultConfig()
	cfg.Provider = "mock"

	s, err := NewSynthesizer(context.Background(), cfg, st.SpeechEventRepo(), st.AudioCache())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ModelID() != "mock" {
		t.Fatalf("ModelID = %q", s.ModelID())
	}

	if _, err := s.Synthesize(context.Background(), Request{Text: "starting with, ten", Cacheable: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events, err := st.SpeechEventRepo().QuerySpeechEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 logged event, got %d", len(events))
	}

	// Served from cache: no new event.
	if _, err := s.Synthesize(context.Background(), Request{Text: "starting with, ten", Cacheable: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events, _ = st.SpeechEventRepo().QuerySpeechEvents(context.Background(), store.QueryOpts{})
	if len(events) != 1 {
		t.Fatalf("expected cache hit to skip the backend, got %d events", len(events))
	}
}

func TestNewSynthesizer_InvalidConfig(t *testing.T) {
	if _, err := NewSynthesizer(context.Background(), DefaultConfig(), nil, nil); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("tts-1")
	if c == nil {
		t.Fatal("expected pricing for tts-1")
	}
	if got := c.Cost(2_000_000); got != 30 {
		t.Errorf("Cost(2M) = %v, want 30", got)
	}
	if LookupCost("gemini-2.5-flash-preview-tts") != nil {
		t.Error("token-billed models have no character price")
	}
}
