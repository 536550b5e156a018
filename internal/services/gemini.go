package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"
)

type geminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewGeminiClient(ctx context.Context, apiKey, baseURL, model string, temperature float32, timeout time.Duration) (LLMClient, error) {
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	if timeout > 0 {
		cc.HTTPClient = &http.Client{Timeout: timeout}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiClient{
		client:      client,
		model:       model,
		temperature: temperature,
	}, nil
}

func (g *geminiClient) Provider() string { return "gemini" }

func (g *geminiClient) Model() string { return g.model }

// Generate implements LLMClient.
func (g *geminiClient) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       &temperature,
		ResponseMIMEType:  "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", g.fail(err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", g.fail(errors.New("no candidates in response"))
	}

	text := resp.Text()
	if text == "" {
		return "", g.fail(errors.New("no text content in response"))
	}

	return text, nil
}

func (g *geminiClient) fail(err error) error {
	return &UpstreamError{Provider: g.Provider(), Err: err}
}
