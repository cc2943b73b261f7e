package review

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"
)

// Sender sends one prompt to a model and returns the text of the reply.
// Failures are classified as *TransportError, *RateLimitError or *AuthError
// where possible.
type Sender interface {
	Send(ctx context.Context, prompt, model string, maxTokens int64) (string, error)
}

// AnthropicSender sends prompts through the Anthropic Messages API
type AnthropicSender struct {
	client anthropic.Client
}

// NewAnthropicSender creates a sender authenticated with apiKey. The SDK's own
// retries are disabled; Client owns the retry policy.
func NewAnthropicSender(apiKey string, opts ...option.RequestOption) *AnthropicSender {
	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	clientOpts = append(clientOpts, opts...)

	return &AnthropicSender{
		client: anthropic.NewClient(clientOpts...),
	}
}

// Send implements Sender
func (s *AnthropicSender) Send(ctx context.Context, prompt, model string, maxTokens int64) (string, error) {
	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", classifyError(ctx, err)
	}

	for _, block := range message.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			return variant.Text, nil
		}
	}

	return "", errors.New("response contained no text content")
}
