package gpt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

var ErrEmptyResponse = errors.New("no response from GPT API")

type Client struct {
	client *openai.Client
	model  string
}

func NewClient(apiKey string) *Client {
	return NewClientWithConfig(openai.DefaultConfig(apiKey))
}

// NewClientWithConfig lets callers point the client at another base URL.
func NewClientWithConfig(cfg openai.ClientConfig) *Client {
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.GPT4oMini,
	}
}

func (c *Client) WithModel(model string) *Client {
	if model != "" {
		c.model = model
	}
	return c
}

// SuggestWorkout asks for a short routine built from the given exercises.
func (c *Client) SuggestWorkout(ctx context.Context, group string, exercises []string) (string, error) {
	prompt := fmt.Sprintf(
		"Build a %s workout for a university student using these exercises: %s.\n"+
			"For each exercise give sets, reps and rest time.\n"+
			"Finish with one tip on form and one on recovery. Keep it under 150 words.",
		group, strings.Join(exercises, ", "),
	)

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an encouraging strength coach at a campus gym.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   400,
		Temperature: 0.7,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}
