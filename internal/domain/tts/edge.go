package tts

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/wujunwei928/edge-tts-go/edge_tts"

	"wavecast-server-go/internal/platform/config"
	"wavecast-server-go/internal/platform/logging"
)

// fallbackEdgeVoice is used when resolution produced an empty descriptor,
// which happens for fully unknown provider families.
const fallbackEdgeVoice = "en-US-AriaNeural"

type edgeSynthesizer struct {
	cfg    config.EdgeTTSConfig
	logger *logging.Logger
}

// NewEdge builds the Microsoft Edge TTS adapter. It needs no credentials,
// which makes it the default local provider.
func NewEdge(cfg config.EdgeTTSConfig, logger *logging.Logger) Synthesizer {
	return &edgeSynthesizer{cfg: cfg, logger: logger}
}

func (s *edgeSynthesizer) Name() string {
	return "edge"
}

func (s *edgeSynthesizer) Synthesize(ctx context.Context, req Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	voiceName := req.Voice.Name
	if voiceName == "" {
		voiceName = fallbackEdgeVoice
	}

	opts := []edge_tts.CommunicateOption{
		edge_tts.SetVoice(voiceName),
	}
	if s.cfg.Rate != "" {
		opts = append(opts, edge_tts.SetRate(s.cfg.Rate))
	}
	if s.cfg.Volume != "" {
		opts = append(opts, edge_tts.SetVolume(s.cfg.Volume))
	}
	if s.cfg.Pitch != "" {
		opts = append(opts, edge_tts.SetPitch(s.cfg.Pitch))
	}

	conn, err := edge_tts.NewCommunicate(req.Text, opts...)
	if err != nil {
		return fmt.Errorf("create edge tts communicator: %w", err)
	}

	start := time.Now()
	audio, err := conn.Stream()
	if err != nil {
		return fmt.Errorf("edge tts synthesis failed: %w", err)
	}

	if err := os.WriteFile(req.OutputPath, audio, 0o644); err != nil {
		return fmt.Errorf("write synthesized audio: %w", err)
	}

	if s.logger != nil {
		s.logger.DebugTag("TTS", "edge synthesized %d bytes with %s in %v",
			len(audio), voiceName, time.Since(start))
	}
	return nil
}
