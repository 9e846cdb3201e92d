// Package anthropic provides a dialogue.Provider using the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/hupe1980/agentville/dialogue"
)

// Options configure the Anthropic provider.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
}

// Provider wraps the Anthropic Messages API behind dialogue.Provider.
type Provider struct {
	client *anthropic.Client
	opts   Options
}

// New creates a provider using the official client (API key from env).
func New(optFns ...func(o *Options)) *Provider {
	client := anthropic.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates a provider from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   512,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Provider{client: client, opts: opts}
}

// GenerateTurn implements dialogue.Provider.
func (p *Provider) GenerateTurn(ctx context.Context, req dialogue.Request) (string, error) {
	var messages []anthropic.MessageParam
	for _, turn := range req.History {
		messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(fmt.Sprintf("%s: %s", turn.Speaker, turn.Text))))
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock("Respond with the speaker's next line only.")))

	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       p.opts.Model,
		Messages:    messages,
		MaxTokens:   p.opts.MaxTokens,
		Temperature: anthropic.Float(p.opts.Temperature),
		System:      []anthropic.TextBlockParam{{Text: systemPrompt(req)}},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic generate turn: %w", err)
	}
	for _, block := range resp.Content {
		if block.Type == "text" {
			return strings.TrimSpace(block.Text), nil
		}
	}
	return "", fmt.Errorf("anthropic generate turn: no text content")
}

// Decide implements dialogue.Provider.
func (p *Provider) Decide(ctx context.Context, question string) (bool, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       p.opts.Model,
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(question))},
		MaxTokens:   4,
		Temperature: anthropic.Float(0),
		System:      []anthropic.TextBlockParam{{Text: "Answer strictly with yes or no."}},
	})
	if err != nil {
		return false, fmt.Errorf("anthropic decide: %w", err)
	}
	for _, block := range resp.Content {
		if block.Type == "text" {
			return strings.HasPrefix(strings.ToLower(strings.TrimSpace(block.Text)), "yes"), nil
		}
	}
	return false, fmt.Errorf("anthropic decide: no text content")
}

func systemPrompt(req dialogue.Request) string {
	var b strings.Builder
	b.WriteString("You voice a character in a small-town simulation.\n")
	fmt.Fprintf(&b, "Speaker: %s\n", req.SpeakerSummary)
	fmt.Fprintf(&b, "Talking to: %s\n", req.ListenerSummary)
	if req.TimeOfDay != "" {
		fmt.Fprintf(&b, "Time: %s\n", req.TimeOfDay)
	}
	if req.Location != "" {
		fmt.Fprintf(&b, "Place: %s\n", req.Location)
	}
	if req.MemoryContext != "" {
		fmt.Fprintf(&b, "Relevant memories:\n%s", req.MemoryContext)
	}
	return b.String()
}
