package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrNotConfigured is returned when no Gemini API key was provided.
var ErrNotConfigured = errors.New("gemini api key is not configured")

// Generator sends a single-part prompt to a generative model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator calls the Gemini generateContent API.
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiGenerator creates a client authenticated with apiKey for the named model.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{
		client: client,
		model:  client.GenerativeModel(model),
	}, nil
}

// Generate issues one generateContent call with prompt as the only part.
// A blocked prompt is not an error: the returned response has no usable candidate.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return &genai.GenerateContentResponse{}, nil
		}
		return nil, err
	}
	return resp, nil
}

// Close releases the underlying client.
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// unconfiguredGenerator fails every call. It stands in when no API key is set
// so the numeric operations keep working.
type unconfiguredGenerator struct{}

func (unconfiguredGenerator) Generate(context.Context, string) (*genai.GenerateContentResponse, error) {
	return nil, ErrNotConfigured
}
