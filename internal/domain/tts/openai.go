package tts

import (
	"context"
	"fmt"
	"io"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"wavecast-server-go/internal/platform/config"
	"wavecast-server-go/internal/platform/logging"
)

type openaiSynthesizer struct {
	client *openai.Client
	model  string
	logger *logging.Logger
}

// NewOpenAI builds the OpenAI speech adapter. Azure deployments use the same
// request shape, so the adapter serves both families.
func NewOpenAI(cfg config.OpenAITTSConfig, logger *logging.Logger) Synthesizer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = string(openai.TTSModel1)
	}

	return &openaiSynthesizer{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger,
	}
}

func (s *openaiSynthesizer) Name() string {
	return "openai"
}

func (s *openaiSynthesizer) Synthesize(ctx context.Context, req Request) error {
	voiceName := req.Voice.Name
	if voiceName == "" {
		voiceName = string(openai.VoiceAlloy)
	}

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          req.Text,
		Voice:          openai.SpeechVoice(voiceName),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return fmt.Errorf("openai speech request failed: %w", err)
	}
	defer resp.Close()

	out, err := os.Create(req.OutputPath)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp); err != nil {
		return fmt.Errorf("write synthesized audio: %w", err)
	}
	return nil
}
