// Package review builds pull request review prompts and sends them to Claude,
// retrying connectivity failures and turning every other failure into a
// readable message.
package review

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"

	"github.com/jingkaihe/skillcheck/pkg/logger"
)

const (
	rateLimitMessage = "Error: Claude API rate limit exceeded. Please slow down requests or upgrade your API quota."
	authMessage      = "Error: Claude API authentication failed. Please verify your ANTHROPIC_API_KEY."
)

// Client turns a prompt into review text, retrying connectivity failures with
// exponential backoff
type Client struct {
	sender Sender
	config Config
	timer  retry.Timer
}

// ClientOption configures a Client
type ClientOption func(*Client) error

// WithConfig overrides the model, token budget and retry policy. Zero values
// keep their defaults.
func WithConfig(config Config) ClientOption {
	return func(c *Client) error {
		c.config = config.withDefaults()
		return nil
	}
}

// WithTimer replaces the timer used to wait between attempts
func WithTimer(timer retry.Timer) ClientOption {
	return func(c *Client) error {
		if timer == nil {
			return errors.New("timer must not be nil")
		}
		c.timer = timer
		return nil
	}
}

// NewClient creates a review client on top of sender
func NewClient(sender Sender, opts ...ClientOption) (*Client, error) {
	if sender == nil {
		return nil, errors.New("sender is required")
	}

	c := &Client{
		sender: sender,
		config: DefaultConfig(),
		timer:  realTimer{},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Review sends prompt and returns the review text. It never fails: every
// terminal error is rendered as a human-readable message in place of the review.
func (c *Client) Review(ctx context.Context, prompt string) string {
	log := logger.G(ctx).WithField("model", c.config.Model)

	attempts := 0
	initialDelay := c.config.Retry.initialDelay()

	var review string
	err := retry.Do(
		func() error {
			attempts++
			log.WithField("attempt", attempts).Debug("sending review request")

			text, err := c.sender.Send(ctx, prompt, c.config.Model, c.config.MaxTokens)
			if err != nil {
				return err
			}
			review = text
			return nil
		},
		retry.RetryIf(IsTransportError),
		retry.Attempts(uint(c.config.Retry.Attempts)),
		retry.DelayType(func(_ uint, _ error, _ *retry.Config) time.Duration {
			// attempts counts calls made so far, so the first wait is the initial delay
			return initialDelay << (attempts - 1)
		}),
		retry.LastErrorOnly(true),
		retry.WithTimer(c.timer),
		retry.Context(ctx),
		retry.OnRetry(func(_ uint, err error) {
			log.WithError(err).
				WithField("attempt", attempts).
				WithField("max_attempts", c.config.Retry.Attempts).
				Warn("Claude API call failed")
		}),
	)
	if err == nil {
		log.WithField("attempts", attempts).Info("review received")
		return review
	}

	message := c.errorMessage(err)
	log.WithError(err).WithField("attempts", attempts).Error("review failed")
	return message
}

func (c *Client) errorMessage(err error) string {
	var rateErr *RateLimitError
	var authErr *AuthError

	switch {
	case IsTransportError(err):
		return fmt.Sprintf("Error: Could not connect to Claude API after %d attempts: %v", c.config.Retry.Attempts, err)
	case errors.As(err, &rateErr):
		return rateLimitMessage
	case errors.As(err, &authErr):
		return authMessage
	default:
		return fmt.Sprintf("Error getting Claude review: %v", err)
	}
}

type realTimer struct{}

func (realTimer) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
