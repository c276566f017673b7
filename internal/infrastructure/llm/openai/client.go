// Package openai provides a Narrator implementation using OpenAI.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/infrastructure/config"
)

const narrationPrompt = `You are a chronicler for a fantasy stronghold. Given a bastion event, write a short piece of in-world narration describing what happened.

Rules:
- Two to four sentences, past tense, third person.
- Refer to the owner by name and to the stronghold as their bastion.
- Stay grounded in the event description; do not invent major consequences.
- Return ONLY the narration text, no preamble and no quotes.`

// Client implements the Narrator interface using OpenAI.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new OpenAI narrator client.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	client := openai.NewClient(cfg.APIKey)

	model := "gpt-4o-mini"
	if cfg.Model != "" {
		model = cfg.Model
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// NarrateEvent turns a rolled bastion event into chronicle prose.
func (c *Client) NarrateEvent(ctx context.Context, actor entities.Actor, event entities.BastionEvent) (string, error) {
	prompt := fmt.Sprintf("Owner: %s (level %d)\nEvent: %s\nDetails: %s",
		actor.Name, actor.Level, event.Name, event.Description)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: narrationPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.8,
	})
	if err != nil {
		return "", fmt.Errorf("calling OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}

	narration := strings.TrimSpace(resp.Choices[0].Message.Content)
	narration = strings.Trim(narration, `"`)
	if narration == "" {
		return "", errors.New("empty narration from OpenAI")
	}

	return narration, nil
}
