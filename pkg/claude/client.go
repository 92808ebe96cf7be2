// Package claude wraps the Anthropic API for the two text services the
// profile pipeline consumes: free-text summarization and single-label
// classification constrained to a fixed label set.
package claude

import (
	"context"
	"strconv"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Client defines the AI text operations the pipeline depends on.
type Client interface {
	// Summarize produces a neutral-tone summary of the prompt material,
	// bounded to roughly minWords–maxWords.
	Summarize(ctx context.Context, material string, minWords, maxWords int) (string, error)

	// ClassifyLabel picks exactly one label from labels for the given text.
	// An off-list answer returns "".
	ClassifyLabel(ctx context.Context, text string, labels []string) (string, error)
}

const (
	defaultModel     = "claude-haiku-4-5-20251001"
	summarySystem    = "You summarize company information. Neutral tone, focus on official product and business announcements, partnerships, and financial updates. Respond with the summary text only."
	classifiedSystem = "You classify companies into exactly one category from a fixed list. Respond with the category name only, nothing else."
)

// Option configures the client.
type Option func(*sdkClient)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *sdkClient) { c.model = model }
}

// WithMessenger overrides the underlying message call, for tests.
func WithMessenger(m Messenger) Option {
	return func(c *sdkClient) { c.messages = m }
}

// Messenger is the single SDK operation the facade needs; it exists so
// tests can stub the network edge.
type Messenger interface {
	New(ctx context.Context, params sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

type sdkClient struct {
	model    string
	messages Messenger
}

// NewClient creates a Claude client. An empty API key yields a disabled
// client whose calls return empty strings, so a missing credential
// degrades the summary and the category fallback rather than the build.
func NewClient(apiKey string, opts ...Option) Client {
	if apiKey == "" {
		zap.L().Warn("claude: no API key configured, AI text services disabled")
		return disabledClient{}
	}
	inner := sdk.NewClient(option.WithAPIKey(apiKey))
	c := &sdkClient{
		model:    defaultModel,
		messages: &inner.Messages,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *sdkClient) Summarize(ctx context.Context, material string, minWords, maxWords int) (string, error) {
	if minWords <= 0 {
		minWords = 120
	}
	if maxWords < minWords {
		maxWords = minWords + 30
	}
	prompt := sdk.NewUserMessage(sdk.NewTextBlock(
		material + "\n\nWrite " + strconv.Itoa(minWords) + "-" + strconv.Itoa(maxWords) + " words.",
	))

	msg, err := c.messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: 1024,
		System:    []sdk.TextBlockParam{{Text: summarySystem}},
		Messages:  []sdk.MessageParam{prompt},
	})
	if err != nil {
		return "", eris.Wrap(err, "claude: summarize")
	}
	return firstText(msg), nil
}

func (c *sdkClient) ClassifyLabel(ctx context.Context, text string, labels []string) (string, error) {
	prompt := sdk.NewUserMessage(sdk.NewTextBlock(
		"Categories: " + strings.Join(labels, ", ") + "\n\nText:\n" + text,
	))

	msg, err := c.messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: 16,
		System:    []sdk.TextBlockParam{{Text: classifiedSystem}},
		Messages:  []sdk.MessageParam{prompt},
	})
	if err != nil {
		return "", eris.Wrap(err, "claude: classify")
	}

	answer := strings.TrimSpace(firstText(msg))
	for _, l := range labels {
		if strings.EqualFold(answer, l) {
			return l, nil
		}
	}
	zap.L().Debug("claude: off-list classification answer dropped",
		zap.String("answer", answer),
	)
	return "", nil
}

func firstText(msg *sdk.Message) string {
	for _, b := range msg.Content {
		if b.Type == "text" {
			return strings.TrimSpace(b.Text)
		}
	}
	return ""
}

// disabledClient satisfies Client when no credential is configured.
type disabledClient struct{}

func (disabledClient) Summarize(context.Context, string, int, int) (string, error) {
	return "", nil
}

func (disabledClient) ClassifyLabel(context.Context, string, []string) (string, error) {
	return "", nil
}
