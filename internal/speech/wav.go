package speech

import (
	"bytes"
	"encoding/binary"
	"strconv"
	"strings"
)

// PCMFormat describes raw little-endian linear PCM.
type PCMFormat struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
}

// geminiPCM is what the Gemini speech models emit.
var geminiPCM = PCMFormat{SampleRate: 24000, Channels: 1, BitsPerSample: 16}

// WrapPCM prefixes raw PCM samples with a RIFF/WAVE header so players can
// open the clip.
func WrapPCM(pcm []byte, f PCMFormat) []byte {
	blockAlign := f.Channels * f.BitsPerSample / 8
	byteRate := f.SampleRate * blockAlign

	var buf bytes.Buffer
	buf.Grow(44 + len(pcm))

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // linear PCM
	binary.Write(&buf, binary.LittleEndian, uint16(f.Channels))
	binary.Write(&buf, binary.LittleEndian, uint32(f.SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(f.BitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}

// pcmFormatFromMIME reads the sample rate from a MIME type such as
// "audio/L16;codec=pcm;rate=24000". Missing parameters keep the defaults.
func pcmFormatFromMIME(mime string, def PCMFormat) PCMFormat {
	f := def
	for _, param := range strings.Split(mime, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(k, "rate") {
			continue
		}
		if rate, err := strconv.Atoi(v); err == nil && rate > 0 {
			f.SampleRate = rate
		}
	}
	return f
}
