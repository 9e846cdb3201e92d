// Package openai provides a dialogue.Provider using the OpenAI Chat
// Completions API. It packages the core-produced context strings into chat
// messages and returns the completion text unchanged.
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"

	"github.com/hupe1980/agentville/dialogue"
)

// Options configure the OpenAI provider. Fields mirror a subset of Chat
// Completion parameters intentionally kept minimal; extend via functional
// options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Provider wraps the OpenAI Chat Completions API behind dialogue.Provider.
type Provider struct {
	client *openai.Client
	opts   Options
}

// New creates a provider using the official client (API key from env).
func New(optFns ...func(o *Options)) *Provider {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates a provider from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 512,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Provider{client: client, opts: opts}
}

// GenerateTurn implements dialogue.Provider.
func (p *Provider) GenerateTurn(ctx context.Context, req dialogue.Request) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt(req)),
	}
	for _, turn := range req.History {
		messages = append(messages, openai.UserMessage(fmt.Sprintf("%s: %s", turn.Speaker, turn.Text)))
	}
	messages = append(messages, openai.UserMessage("Respond with the speaker's next line only."))

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               p.opts.Model,
		Temperature:         openai.Float(p.opts.Temperature),
		MaxCompletionTokens: openai.Int(p.opts.MaxCompletionTokens),
	})
	if err != nil {
		return "", fmt.Errorf("openai generate turn: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai generate turn: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Decide implements dialogue.Provider.
func (p *Provider) Decide(ctx context.Context, question string) (bool, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("Answer strictly with yes or no."),
			openai.UserMessage(question),
		},
		Model:               p.opts.Model,
		Temperature:         openai.Float(0),
		MaxCompletionTokens: openai.Int(4),
	})
	if err != nil {
		return false, fmt.Errorf("openai decide: %w", err)
	}
	if len(resp.Choices) == 0 {
		return false, fmt.Errorf("openai decide: empty response")
	}
	answer := strings.ToLower(strings.TrimSpace(resp.Choices[0].Message.Content))
	return strings.HasPrefix(answer, "yes"), nil
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
