// Package llm wraps the narrative-generation service behind a minimal
// text-completion interface.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Completer produces a text completion for a prompt. Callers treat any
// fault as "narrative unavailable"; no retries are performed here.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Claude implements Completer using the Anthropic Messages API.
type Claude struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	timeout   time.Duration
}

// NewClaude creates a Claude completer. The API key is required; a
// missing key is a startup configuration fault.
func NewClaude(apiKey, modelName string, maxTokens int, timeout time.Duration) (*Claude, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic api_key is required")
	}
	if modelName == "" {
		modelName = "claude-sonnet-4-20250514"
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Claude{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     modelName,
		maxTokens: int64(maxTokens),
		timeout:   timeout,
	}, nil
}

// Complete sends a single user prompt and returns the concatenated text
// blocks of the response.
func (c *Claude) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude api call: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("claude: empty response")
	}
	return b.String(), nil
}
