// Package llm produces article copy through a chat completions service.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driven"
	"github.com/custodia-labs/newsroom/internal/logger"
)

// Ensure Copywriter implements the interfaces.
var (
	_ driven.CopyGenerator    = (*Copywriter)(nil)
	_ driven.PromptStoreAware = (*Copywriter)(nil)
)

// Name is the strategy name.
const Name = "llm"

// FallbackBody is used when the reply carries a headline only.
const FallbackBody = "Office review."

// Fallback prompts used when no PromptStore is configured.
const (
	defaultSystemPrompt = `You are %s newsroom copy editor. Woj/Shams tone with slight parody. Headlines <= 90 chars. Facts only based on inputs.`
	defaultEventPrompt  = `Create headline (<=90 chars) and 1-2 paragraph body for this event: %s`
)

// Copywriter is the delegated strategy.
type Copywriter struct {
	service     driven.LLMService
	brand       string
	promptStore driven.PromptStore
}

// New creates a delegated copywriter. brand fills the system prompt.
func New(service driven.LLMService, brand string) *Copywriter {
	if brand == "" {
		brand = domain.DefaultBrand
	}
	return &Copywriter{service: service, brand: brand}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the copywriter uses hardcoded default prompts.
func (c *Copywriter) SetPromptStore(store driven.PromptStore) {
	c.promptStore = store
}

// Name returns the strategy name.
func (c *Copywriter) Name() string {
	return Name
}

// Generate asks the service for a headline and body. Tags are derived from
// the event, never from the reply. Service errors propagate unchanged.
func (c *Copywriter) Generate(ctx context.Context, event domain.Event) (domain.Copy, error) {
	payload, err := eventPayload(event)
	if err != nil {
		return domain.Copy{}, err
	}

	messages := []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: fmt.Sprintf(c.loadPrompt(driven.PromptNewsroomSystem, defaultSystemPrompt), c.brand)},
		{Role: driven.RoleUser, Content: fmt.Sprintf(c.loadPrompt(driven.PromptNewsroomEvent, defaultEventPrompt), payload)},
	}

	logger.Debug("Requesting copy for %s from %s", event.EventID(), c.service.ModelName())
	reply, err := c.service.Chat(ctx, messages, driven.ChatOptions{})
	if err != nil {
		return domain.Copy{}, fmt.Errorf("generate copy: %w", err)
	}

	title, body, ok := ParseReply(reply)
	if !ok {
		return domain.Copy{}, fmt.Errorf("generate copy for %s: %w", event.EventID(), domain.ErrEmptyCompletion)
	}

	return domain.Copy{
		Title: title,
		Body:  body,
		Tags:  append([]string{event.Kind().Tag()}, domain.ActorTeams(event)...),
	}, nil
}

// ParseReply splits a completion into headline and body. The first
// non-blank line is the headline, stripped of surrounding quotes, hashes
// and spaces. The rest is the body with paragraph breaks kept, or
// FallbackBody when empty.
// ok is false when the reply has no non-blank line.
func ParseReply(reply string) (title, body string, ok bool) {
	lines := strings.Split(strings.ReplaceAll(reply, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		title = strings.TrimLeft(line, "\"'# \t")
		title = strings.TrimRight(title, "\"'# \t")
		body = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
		if body == "" {
			body = FallbackBody
		}
		return title, body, true
	}
	return "", "", false
}

// eventPayload serialises the event with its kind, as sent to the model.
func eventPayload(event domain.Event) (string, error) {
	var v any
	switch ev := event.(type) {
	case *domain.Trade:
		v = struct {
			Type domain.EventKind `json:"type"`
			*domain.Trade
		}{ev.Kind(), ev}
	case *domain.Signing:
		v = struct {
			Type domain.EventKind `json:"type"`
			*domain.Signing
		}{ev.Kind(), ev}
	default:
		return "", fmt.Errorf("%w: %T", domain.ErrUnsupportedType, event)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}
	return string(data), nil
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (c *Copywriter) loadPrompt(name, fallback string) string {
	if c.promptStore == nil {
		return fallback
	}
	prompt, err := c.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
