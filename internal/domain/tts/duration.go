package tts

import (
	"fmt"
	"os"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// ProbeDuration decodes an mp3 file header to report its play length in
// seconds. Callers treat failures as non-fatal; the artifact is valid even
// when the probe cannot read it.
func ProbeDuration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return 0, fmt.Errorf("decode mp3: %w", err)
	}

	// Length is decoded PCM bytes: 16-bit stereo, 4 bytes per sample.
	samples := decoder.Length() / 4
	if decoder.SampleRate() == 0 {
		return 0, fmt.Errorf("mp3 reports zero sample rate")
	}
	return float64(samples) / float64(decoder.SampleRate()), nil
}
