package genai

import (
	"context"
	"fmt"

	"health-services-backend/config"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// NewClient builds the hosted-model client. The caller owns the client and
// must Close it on shutdown.
func NewClient(cfg config.GeminiConfig) (*genai.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	logrus.Infof("Gemini client initialized with model %s", cfg.Model)

	return client, nil
}
