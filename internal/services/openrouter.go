package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

type openRouterError struct {
	Code    any    `json:"code"`
	Message string `json:"message"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *openRouterError `json:"error"`
}

type openRouterErrorEnvelope struct {
	Error *openRouterError `json:"error"`
}

type openRouterClient struct {
	client      *resty.Client
	model       string
	temperature float32
}

// NewOpenRouterClient talks to any OpenAI-compatible chat-completions API.
func NewOpenRouterClient(apiKey, baseURL, model string, temperature float32, timeout time.Duration) LLMClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Title", "JobHunt AI")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &openRouterClient{
		client:      client,
		model:       model,
		temperature: temperature,
	}
}

func (o *openRouterClient) Provider() string { return "openrouter" }

func (o *openRouterClient) Model() string { return o.model }

// Generate implements LLMClient.
func (o *openRouterClient) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	var (
		result chatCompletionResponse
		apiErr openRouterErrorEnvelope
	)

	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(chatCompletionRequest{
			Model: o.model,
			Messages: []chatMessage{
				{Role: "system", Content: systemInstruction},
				{Role: "user", Content: prompt},
			},
			Temperature: o.temperature,
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/chat/completions")
	if err != nil {
		return "", o.fail(err)
	}

	if resp.IsError() {
		msg := strings.TrimSpace(resp.String())
		if apiErr.Error != nil && apiErr.Error.Message != "" {
			msg = apiErr.Error.Message
		}
		return "", o.fail(fmt.Errorf("status %d: %s", resp.StatusCode(), msg))
	}

	if result.Error != nil {
		return "", o.fail(fmt.Errorf("provider error: %s", result.Error.Message))
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == nil {
		return "", o.fail(errors.New("unrecognized response shape: missing choices[0].message.content"))
	}

	return *result.Choices[0].Message.Content, nil
}

func (o *openRouterClient) fail(err error) error {
	return &UpstreamError{Provider: o.Provider(), Err: err}
}
