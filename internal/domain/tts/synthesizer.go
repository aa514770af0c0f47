// Package tts wraps the external text-to-speech services the generation
// worker calls. Synthesis itself is an opaque collaborator; this package only
// adapts provider clients to one interface.
package tts

import (
	"context"
	"fmt"

	"wavecast-server-go/internal/domain/voice"
	"wavecast-server-go/internal/platform/config"
	"wavecast-server-go/internal/platform/logging"
)

// Request describes one synthesis call: a piece of dialog, the resolved
// voice, and the file the audio should land in.
type Request struct {
	Text       string
	Voice      voice.Descriptor
	OutputPath string
}

// Synthesizer turns text into an audio file.
type Synthesizer interface {
	Name() string
	Synthesize(ctx context.Context, req Request) error
}

// Factory builds a synthesizer for a provider identifier.
type Factory func(providerID string) (Synthesizer, error)

// NewFactory returns a Factory selecting an adapter by provider family.
// Unknown families are served by the edge adapter, which needs no
// credentials.
func NewFactory(cfg config.TTSConfig, logger *logging.Logger) Factory {
	return func(providerID string) (Synthesizer, error) {
		switch voice.Family(providerID) {
		case "openai", "azure":
			if cfg.OpenAI.APIKey == "" {
				return nil, fmt.Errorf("openai tts requires an api key")
			}
			return NewOpenAI(cfg.OpenAI, logger), nil
		default:
			return NewEdge(cfg.Edge, logger), nil
		}
	}
}
