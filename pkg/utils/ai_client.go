package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// ContentGeneratorInterface is the single capability the tour pipeline needs
// from a generative model: prompt in, completion text out. A failed call is
// fatal to the run and is reported as ErrUpstreamUnavailable; no retry happens
// at this layer.
type ContentGeneratorInterface interface {
	GenerateItinerary(ctx context.Context, prompt string) (string, error)
	Close() error
}

// GeminiContentGenerator implements ContentGeneratorInterface using Google's Gemini models
type GeminiContentGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiContentGenerator(apiKey, model string) (ContentGeneratorInterface, error) {
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiContentGenerator{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiContentGenerator) GenerateItinerary(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.2)
	m.SetTopP(0.5)
	m.SetTopK(20)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := m.GenerateContent(ctxWithTimeout, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", ErrUpstreamUnavailable, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no content returned by gemini", ErrUpstreamUnavailable)
	}

	content := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: empty completion body", ErrUpstreamUnavailable)
	}
	return content, nil
}

func (c *GeminiContentGenerator) Close() error {
	return c.client.Close()
}

// OpenAIContentGenerator implements ContentGeneratorInterface over chat completions
type OpenAIContentGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIContentGenerator(apiKey, model string) ContentGeneratorInterface {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIContentGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIContentGenerator) GenerateItinerary(ctx context.Context, prompt string) (string, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai: %v", ErrUpstreamUnavailable, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: empty completion body", ErrUpstreamUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIContentGenerator) Close() error { return nil }

// NewContentGenerator Factory function to create either OpenAI or Gemini client based on config
func NewContentGenerator(provider, apiKey, model string) (ContentGeneratorInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIContentGenerator(apiKey, model), nil
	case "gemini":
		return NewGeminiContentGenerator(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
