package speech

import (
	"context"
	"sync"
	"unicode/utf8"
)

// MockResponse is a canned response for the MockSynthesizer.
type MockResponse struct {
	Audio *Audio
	Err   error
}

// MockSynthesizer is a deterministic Synthesizer for tests and offline use.
// It returns canned responses in FIFO order and records all requests.
// Once the queue is drained it answers with silence when silent is set,
// and with ErrProviderUnavailable otherwise.
type MockSynthesizer struct {
	mu        sync.Mutex
	responses []MockResponse
	silent    bool
	Calls     []Request
}

// NewMockSynthesizer creates a MockSynthesizer with the given canned responses.
func NewMockSynthesizer(responses ...MockResponse) *MockSynthesizer {
	return &MockSynthesizer{responses: responses}
}

// NewSilentSynthesizer returns a mock that renders every request as a
// silent WAV clip, roughly as long as the text would take to read.
func NewSilentSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{silent: true}
}

func (m *MockSynthesizer) Synthesize(_ context.Context, req Request) (*Audio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		if m.silent {
			return silence(utf8.RuneCountInString(req.Text)), nil
		}
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}
	return resp.Audio, nil
}

// ModelID returns "mock".
func (m *MockSynthesizer) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockSynthesizer) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Synthesize calls made.
func (m *MockSynthesizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// silence is about 60ms of 8kHz mono per character.
func silence(chars int) *Audio {
	f := PCMFormat{SampleRate: 8000, Channels: 1, BitsPerSample: 16}
	samples := chars * f.SampleRate * 60 / 1000
	return &Audio{
		Data:   WrapPCM(make([]byte, samples*2), f),
		Format: "wav",
		Model:  "mock",
	}
}
