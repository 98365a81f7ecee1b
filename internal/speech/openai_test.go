package speech

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAISynthesizer(t *testing.T, handler http.HandlerFunc) *OpenAISynthesizer {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"

	return &OpenAISynthesizer{
		client: openai.NewClientWithConfig(config),
		model:  "gpt-4o-mini-tts",
		voice:  "alloy",
	}
}

func TestOpenAISynthesizer_HappyPath(t *testing.T) {
	var got map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/speech" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3fake-mp3"))
	}

	s := newTestOpenAISynthesizer(t, handler)
	audio, err := s.Synthesize(context.Background(), Request{Text: "starting with, ten, thats all"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(audio.Data) != "ID3fake-mp3" {
		t.Fatalf("unexpected audio %q", audio.Data)
	}
	if audio.Format != "mp3" || audio.Ext() != ".mp3" {
		t.Fatalf("unexpected format %q", audio.Format)
	}
	if got["model"] != "gpt-4o-mini-tts" {
		t.Errorf("model = %v", got["model"])
	}
	if got["voice"] != "alloy" {
		t.Errorf("voice = %v", got["voice"])
	}
	if got["input"] != "starting with, ten, thats all" {
		t.Errorf("input = %v", got["input"])
	}
}

func TestOpenAISynthesizer_VoiceOverride(t *testing.T) {
	var got map[string]any
	s := newTestOpenAISynthesizer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte("x"))
	})

	if _, err := s.Synthesize(context.Background(), Request{Text: "one", Voice: "nova"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["voice"] != "nova" {
		t.Errorf("voice = %v, want nova", got["voice"])
	}
}

func TestOpenAISynthesizer_EmptyBody(t *testing.T) {
	s := newTestOpenAISynthesizer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := s.Synthesize(context.Background(), Request{Text: "one"})
	var empty *ErrEmptyAudio
	if !errors.As(err, &empty) {
		t.Fatalf("expected ErrEmptyAudio, got: %T (%v)", err, err)
	}
}

func TestOpenAISynthesizer_RateLimit(t *testing.T) {
	s := newTestOpenAISynthesizer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "requests",
				"message": "Rate limit exceeded",
				"code":    "rate_limit_exceeded",
			},
		})
	})

	_, err := s.Synthesize(context.Background(), Request{Text: "one"})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestOpenAISynthesizer_ServerError(t *testing.T) {
	s := newTestOpenAISynthesizer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "server_error",
				"message": "Internal server error",
			},
		})
	})

	_, err := s.Synthesize(context.Background(), Request{Text: "one"})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestOpenAISynthesizer_InputTooLong(t *testing.T) {
	calls := 0
	s := newTestOpenAISynthesizer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte("x"))
	})

	_, err := s.Synthesize(context.Background(), Request{Text: strings.Repeat("a", openaiMaxInput+1)})
	var tooLong *ErrInputTooLong
	if !errors.As(err, &tooLong) {
		t.Fatalf("expected ErrInputTooLong, got: %T (%v)", err, err)
	}
	if calls != 0 {
		t.Fatalf("expected no request, got %d", calls)
	}
}

func TestNewOpenAISynthesizer(t *testing.T) {
	if _, err := NewOpenAISynthesizer(OpenAIConfig{}); err == nil {
		t.Fatal("expected error without API key")
	}

	s, err := NewOpenAISynthesizer(OpenAIConfig{APIKey: "k", Model: "tts-hd", BaseURL: "http://localhost:1/v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ModelID() != "tts-1-hd" {
		t.Fatalf("expected 'tts-1-hd', got %q", s.ModelID())
	}
	if s.voice != "alloy" {
		t.Fatalf("expected default voice alloy, got %q", s.voice)
	}
}
