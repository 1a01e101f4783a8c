package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"health-services-backend/config"
	"health-services-backend/pkg/validator"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
)

// ErrGeneration is returned for any upstream model failure: the call itself,
// a response with no parseable JSON payload, or a payload that fails schema
// validation. Callers decide the fallback policy; the service never retries.
var ErrGeneration = errors.New("structured generation failed")

// Generator turns a prompt (optionally with an image) into typed data by
// extracting and validating a JSON payload from the model's free-form reply.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, out interface{}) error
	GenerateImageJSON(ctx context.Context, prompt string, image []byte, format string, out interface{}) error
}

type generationService struct {
	model     *genai.GenerativeModel
	log       *logrus.Logger
	timeout   time.Duration
	validator *validator.CustomValidator
}

func NewGenerationService(client *genai.Client, cfg config.GeminiConfig, log *logrus.Logger, v *validator.CustomValidator) Generator {
	return &generationService{
		model:     client.GenerativeModel(cfg.Model),
		log:       log,
		timeout:   cfg.Timeout,
		validator: v,
	}
}

func (s *generationService) GenerateJSON(ctx context.Context, prompt string, out interface{}) error {
	return s.generate(ctx, out, genai.Text(prompt))
}

func (s *generationService) GenerateImageJSON(ctx context.Context, prompt string, image []byte, format string, out interface{}) error {
	return s.generate(ctx, out, genai.Text(prompt), genai.ImageData(format, image))
}

func (s *generationService) generate(ctx context.Context, out interface{}, parts ...genai.Part) error {
	// A hung upstream call must not block the request forever.
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.model.GenerateContent(ctx, parts...)
	if err != nil {
		s.log.Warnf("Failed to call model: %+v", err)
		return fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	text := collectText(resp)
	if text == "" {
		return fmt.Errorf("%w: empty response", ErrGeneration)
	}

	payload, ok := extractJSONBlock(text)
	if !ok {
		s.log.Warnf("Failed to locate JSON payload in model response")
		return fmt.Errorf("%w: response contains no JSON payload", ErrGeneration)
	}

	if err := json.Unmarshal([]byte(payload), out); err != nil {
		s.log.Warnf("Failed to decode model payload: %+v", err)
		return fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	if err := s.validator.Validate(out); err != nil {
		s.log.Warnf("Model payload failed schema validation: %+v", err)
		return fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	return nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// extractJSONBlock returns the first balanced JSON object or array embedded
// in free-form model text. Models often wrap payloads in prose or markdown
// fences, so the scan starts at the first opening brace and matches depth
// while skipping string literals and escapes.
func extractJSONBlock(text string) (string, bool) {
	start := -1
	var open, close byte
	for i := 0; i < len(text); i++ {
		if text[i] == '{' || text[i] == '[' {
			start = i
			open = text[i]
			if open == '{' {
				close = '}'
			} else {
				close = ']'
			}
			break
		}
	}
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
