package speech

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// geminiModels maps friendly names to Gemini speech model IDs.
var geminiModels = map[string]string{
	"gemini-tts":     "gemini-2.5-flash-preview-tts",
	"gemini-tts-pro": "gemini-2.5-pro-preview-tts",
}

// GeminiSynthesizer implements Synthesizer with the Gemini audio response
// modality.
type GeminiSynthesizer struct {
	client *genai.Client
	model  string
	voice  string
}

// NewGeminiSynthesizer creates a new Gemini synthesizer.
func NewGeminiSynthesizer(ctx context.Context, cfg GeminiConfig) (*GeminiSynthesizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	voice := cfg.Voice
	if voice == "" {
		voice = "Kore"
	}

	return &GeminiSynthesizer{
		client: client,
		model:  resolveModel(cfg.Model, geminiModels),
		voice:  voice,
	}, nil
}

func (s *GeminiSynthesizer) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	voice := req.Voice
	if voice == "" {
		voice = s.voice
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: "Read aloud at an even pace: " + req.Text}},
	}}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	return s.extractAudio(result)
}

func (s *GeminiSynthesizer) ModelID() string {
	return s.model
}

// extractAudio collects the inline PCM parts of the first candidate and
// wraps them as WAV.
func (s *GeminiSynthesizer) extractAudio(result *genai.GenerateContentResponse) (*Audio, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, &ErrEmptyAudio{Model: s.model}
	}

	var (
		pcm  []byte
		mime string
	)
	for _, part := range result.Candidates[0].Content.Parts {
		if part == nil || part.InlineData == nil {
			continue
		}
		if !strings.HasPrefix(part.InlineData.MIMEType, "audio/") {
			continue
		}
		if mime == "" {
			mime = part.InlineData.MIMEType
		}
		pcm = append(pcm, part.InlineData.Data...)
	}
	if len(pcm) == 0 {
		return nil, &ErrEmptyAudio{Model: s.model}
	}

	return &Audio{
		Data:   WrapPCM(pcm, pcmFormatFromMIME(mime, geminiPCM)),
		Format: "wav",
		Model:  s.model,
	}, nil
}

func mapGeminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case apiErr.Code >= 500:
			return &ErrProviderUnavailable{Err: err}
		}
	}
	return &ErrProviderUnavailable{Err: err}
}
