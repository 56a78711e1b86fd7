// Package suggest turns a short idea into a drafted post using a hosted
// text-generation model.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

var (
	// ErrNotConfigured means no API key is available.
	ErrNotConfigured = errors.New("api key is not configured")
	// ErrEmptyResponse means the model answered without any text.
	ErrEmptyResponse = errors.New("no content generated")
)

// Generator produces a post draft for an idea.
type Generator interface {
	Generate(ctx context.Context, idea string) (string, error)
	Model() string
}

// BuildPrompt wraps the viewer's idea in the drafting instructions.
func BuildPrompt(idea string) string {
	return fmt.Sprintf(`You are an AI assistant for a social media platform called Irys World. A user wants to write a post.
Based on their idea, generate a creative and engaging social media post.
The post should be concise, use relevant hashtags, and have a positive tone.
User's idea: %q`, strings.TrimSpace(idea))
}

// GeminiGenerator calls the Gemini API.
type GeminiGenerator struct {
	apiKey string
	model  string
	client *genai.Client
}

// NewGeminiGenerator returns a generator. A missing key is not an error here;
// Generate reports ErrNotConfigured instead so the rest of the app still runs.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	g := &GeminiGenerator{apiKey: strings.TrimSpace(apiKey), model: model}
	if g.apiKey == "" {
		return g, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *GeminiGenerator) Model() string { return g.model }

func (g *GeminiGenerator) Generate(ctx context.Context, idea string) (string, error) {
	if g.client == nil {
		return "", ErrNotConfigured
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(idea)), nil)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
