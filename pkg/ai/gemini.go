package ai

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-1.5-flash"

// GeminiSummarizer implements Summarizer on the Google Gemini API.
type GeminiSummarizer struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiSummarizer creates a Gemini-backed summarizer.
func NewGeminiSummarizer(ctx context.Context, apiKey, modelName string) (*GeminiSummarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	if modelName == "" {
		modelName = defaultModel
	}

	return &GeminiSummarizer{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Close closes the underlying client connection.
func (s *GeminiSummarizer) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// Summarize sends the installer report to Gemini and returns the
// generated final report text. Any failure is reported as
// ErrUnavailable; nothing is retried here.
func (s *GeminiSummarizer) Summarize(ctx context.Context, installerReportJSON, protocolNumber string) (string, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(buildPrompt(installerReportJSON, protocolNumber)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}
	if text == "" {
		return "", fmt.Errorf("%w: no text in response", ErrUnavailable)
	}

	return text, nil
}
