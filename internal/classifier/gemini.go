package classifier

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiCompleter implements Completer against the Google Gemini API.
type GeminiCompleter struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiCompleter creates a Gemini-backed completer. The caller owns the
// lifetime and must Close it when done.
func NewGeminiCompleter(ctx context.Context, apiKey, modelName string) (*GeminiCompleter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiCompleter{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Complete sends the prompt to Gemini and returns the first candidate's text.
func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// Close releases the underlying API client.
func (g *GeminiCompleter) Close() error {
	return g.client.Close()
}
