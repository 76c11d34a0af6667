package openai

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sashabaranov/go-openai"
)

//go:embed prompts/describe_failure
var PromptDescribeFailure string

//go:embed prompts/describe_chunk
var PromptDescribeChunk string

//go:embed prompts/describe_overall
var PromptDescribeOverall string

const retryDelay = time.Minute

type Client struct {
	client     *openai.Client
	model      string
	retryDelay time.Duration
}

func NewClient(token, model string) *Client {
	return NewClientWithConfig(openai.DefaultConfig(token), model)
}

func NewClientWithConfig(config openai.ClientConfig, model string) *Client {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &Client{
		client:     openai.NewClientWithConfig(config),
		model:      model,
		retryDelay: retryDelay,
	}
}

// ChatCompletion returns the first choice of a chat completion. A failed request is retried once after a delay.
func (o *Client) ChatCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: 0.1,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		slog.Warn("Error completing prompt, retrying", "error", err, "delay", o.retryDelay)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(o.retryDelay):
		}

		resp, err = o.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", fmt.Errorf("error completing prompt: %w", err)
		}
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("error completing prompt: no choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}
