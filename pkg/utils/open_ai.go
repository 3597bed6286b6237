package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// CompletionClientInterface is the single entry point to the completion
// provider. Implementations must retry at most once on transient failures.
type CompletionClientInterface interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type OpenAICompletionClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

func NewOpenAICompletionClient(apiKey, model, baseURL string) *OpenAICompletionClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAICompletionClient{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		maxTokens:   800,
		temperature: 0.1,
	}
}

func (c *OpenAICompletionClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil && isTransient(err) && ctx.Err() == nil {
		log.Printf("Transient completion error, retrying once: %v", err)
		resp, err = c.client.CreateChatCompletion(ctx, req)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompletionProvider, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrCompletionProvider)
	}
	return resp.Choices[0].Message.Content, nil
}

// isTransient reports whether a provider error is worth a single retry.
// Only overload responses and network-level failures qualify.
func isTransient(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return retriableStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return retriableStatus(reqErr.HTTPStatusCode)
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func retriableStatus(code int) bool {
	return code >= http.StatusInternalServerError || code == http.StatusTooManyRequests
}
