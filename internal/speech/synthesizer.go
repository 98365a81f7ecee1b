package speech

import "context"

// Synthesizer turns narration text into audio.
type Synthesizer interface {
	// Synthesize renders req.Text as speech. An empty Voice selects the
	// backend's configured default.
	Synthesize(ctx context.Context, req Request) (*Audio, error)

	// ModelID returns the model identifier this synthesizer is configured to use.
	ModelID() string
}

// Request describes what to speak.
type Request struct {
	Text  string
	Voice string

	// Cacheable marks a script that recurs across runs, such as a curated
	// set problem. Only cacheable requests are kept in the audio cache.
	Cacheable bool
}

// Audio is a synthesized clip.
type Audio struct {
	// Data is the encoded clip, ready to write to a file.
	Data []byte

	// Format is the container/codec name and file extension: "mp3" or "wav".
	Format string

	// Model is the model that served the request.
	Model string
}

// Ext returns the file extension for the clip, including the dot.
func (a *Audio) Ext() string {
	if a.Format == "" {
		return ".bin"
	}
	return "." + a.Format
}
