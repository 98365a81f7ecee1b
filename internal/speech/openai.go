package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"
)

// openaiMaxInput is the per-request character limit of the speech endpoint.
const openaiMaxInput = 4096

// openaiModels maps friendly names to OpenAI speech model IDs.
var openaiModels = map[string]string{
	"tts":      string(openai.TTSModelGPT4oMini),
	"tts-fast": string(openai.TTSModel1),
	"tts-hd":   string(openai.TTSModel1HD),
}

// OpenAISynthesizer implements Synthesizer with the OpenAI speech endpoint.
type OpenAISynthesizer struct {
	client *openai.Client
	model  string
	voice  string
}

// NewOpenAISynthesizer creates a new OpenAI synthesizer.
func NewOpenAISynthesizer(cfg OpenAIConfig) (*OpenAISynthesizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	voice := cfg.Voice
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}

	return &OpenAISynthesizer{
		client: openai.NewClientWithConfig(config),
		model:  resolveModel(cfg.Model, openaiModels),
		voice:  voice,
	}, nil
}

func (s *OpenAISynthesizer) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	if n := utf8.RuneCountInString(req.Text); n > openaiMaxInput {
		return nil, &ErrInputTooLong{Length: n, Max: openaiMaxInput}
	}

	voice := req.Voice
	if voice == "" {
		voice = s.voice
	}

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          req.Text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("read speech body: %w", err)}
	}
	if len(data) == 0 {
		return nil, &ErrEmptyAudio{Model: s.model}
	}

	return &Audio{Data: data, Format: "mp3", Model: s.model}, nil
}

func (s *OpenAISynthesizer) ModelID() string {
	return s.model
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case apiErr.HTTPStatusCode >= 500:
			return &ErrProviderUnavailable{Err: err}
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
