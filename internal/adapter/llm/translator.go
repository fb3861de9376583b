// Package llm sends terminology-augmented translation prompts to Claude.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/termtag/internal/config"
	"github.com/heartmarshall/termtag/internal/domain"
)

const systemPrompt = `You are a professional technical translator.

The user message may start with a <tag>...</tag> block listing termbase concepts:
source terms, their approved translations and usage notes.

Rules:
- Use the approved translations from the <tag> block wherever the source term occurs
- Never use a term the block does not list as a translation of its source term
- Keep the formatting of the text to translate
- Output ONLY the translation, no explanations and no <tag> block`

// Message is one turn of the conversation sent to the model.
type Message struct {
	Role    string
	Content string
}

// Translator asks Claude for translations.
type Translator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// New creates a Translator. Extra options (for example option.WithBaseURL)
// are passed to the SDK client.
func New(cfg config.LLMConfig, logger *slog.Logger, opts ...option.RequestOption) (*Translator, error) {
	if !cfg.Enabled() {
		return nil, errors.New("llm: api key is required")
	}
	if cfg.MaxTokens <= 0 {
		return nil, fmt.Errorf("llm: max tokens must be > 0 (got %d)", cfg.MaxTokens)
	}

	opts = append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	return &Translator{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: int64(cfg.MaxTokens),
		log:       logger.With("adapter", "llm"),
	}, nil
}

// Translate sends the conversation and returns the model's text answer.
// System messages are merged into the system prompt.
func (t *Translator) Translate(ctx context.Context, messages []Message) (string, error) {
	system := systemPrompt
	params := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			system += "\n\n" + m.Content
		case "assistant":
			params = append(params, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			params = append(params, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	if len(params) == 0 {
		return "", domain.NewValidationError("messages", "at least one user message required")
	}

	msg, err := t.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(t.model),
		MaxTokens: t.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages:  params,
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			t.log.WarnContext(ctx, "llm request rejected", slog.Int("status", apiErr.StatusCode))
			return "", fmt.Errorf("llm: translate: %w", &domain.RemoteError{StatusCode: apiErr.StatusCode, Body: apiErr.Error()})
		}
		return "", fmt.Errorf("llm: translate: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("llm: translate: %w", &domain.RemoteError{StatusCode: 200, Body: "empty response"})
	}

	t.log.InfoContext(ctx, "llm translation",
		slog.String("model", t.model),
		slog.Int64("input_tokens", msg.Usage.InputTokens),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
	)
	return strings.TrimSpace(b.String()), nil
}
