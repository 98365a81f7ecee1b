// Package player hands synthesized narration to an external audio player.
//
// The player is a command template such as
//
//	ffplay -nodisp -autoexit -loglevel quiet -af atempo={rate} {file}
//
// where {file} is the audio path and {rate} the playback rate. Without a
// {file} placeholder the path is appended as the last argument.
package player

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/abhisek/yomiage/internal/speech"
)

// ErrNoPlayer is returned by Parse for an empty template.
var ErrNoPlayer = errors.New("no audio player configured")

// Player runs one command per clip.
type Player struct {
	argv []string
}

// Parse splits a command template on whitespace.
func Parse(template string) (*Player, error) {
	argv := strings.Fields(template)
	if len(argv) == 0 {
		return nil, ErrNoPlayer
	}
	return &Player{argv: argv}, nil
}

// Name returns the program the player runs.
func (p *Player) Name() string {
	return p.argv[0]
}

// Args expands the template for one clip.
func (p *Player) Args(path string, rate float64) []string {
	r := strconv.FormatFloat(rate, 'f', -1, 64)
	out := make([]string, 0, len(p.argv))
	hasFile := false
	for _, a := range p.argv[1:] {
		if strings.Contains(a, "{file}") {
			hasFile = true
		}
		a = strings.ReplaceAll(a, "{file}", path)
		a = strings.ReplaceAll(a, "{rate}", r)
		out = append(out, a)
	}
	if !hasFile {
		out = append(out, path)
	}
	return out
}

// Play runs the player on path and waits for it to exit.
func (p *Player) Play(ctx context.Context, path string, rate float64) error {
	cmd := exec.CommandContext(ctx, p.Name(), p.Args(path, rate)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", p.Name(), err, msg)
		}
		return fmt.Errorf("%s: %w", p.Name(), err)
	}
	return nil
}

// WriteClip writes audio to a new file in dir (the system temp dir when
// empty) and returns its path. The extension follows the audio format.
func WriteClip(dir string, audio *speech.Audio) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create audio dir: %w", err)
		}
	}
	f, err := os.CreateTemp(dir, "yomiage-*"+audio.Ext())
	if err != nil {
		return "", fmt.Errorf("create audio file: %w", err)
	}
	if _, err := f.Write(audio.Data); err != nil {
		f.Close()
		return "", fmt.Errorf("write audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close audio file: %w", err)
	}
	return f.Name(), nil
}
