package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-pro"

// TextGenerator turns a prompt into generated text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGateway is the concrete implementation of the TextGenerator interface.
type GeminiGateway struct {
	client *genai.Client
	model  string
	logger logrus.FieldLogger
}

// NewGeminiGateway creates a Gemini API client authenticated with apiKey.
func NewGeminiGateway(ctx context.Context, apiKey, model string, logger logrus.FieldLogger) (TextGenerator, error) {
	gateway, err := newGeminiGateway(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, model, logger)
	if err != nil {
		return nil, err
	}
	return gateway, nil
}

func newGeminiGateway(ctx context.Context, cfg *genai.ClientConfig, model string, logger logrus.FieldLogger) (*GeminiGateway, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGateway{client: client, model: model, logger: logger}, nil
}

func (g *GeminiGateway) Generate(ctx context.Context, prompt string) (string, error) {
	g.logger.WithField("model", g.model).Debugf("Sending prompt of %d bytes", len(prompt))
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("model returned an empty response")
	}
	return text, nil
}
