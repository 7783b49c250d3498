package copywriters

import (
	"fmt"

	openaillm "github.com/custodia-labs/newsroom/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/newsroom/internal/copywriters/llm"
	"github.com/custodia-labs/newsroom/internal/copywriters/template"
	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driven"
	"github.com/custodia-labs/newsroom/internal/logger"
)

// New returns the copy strategy for the settings: the delegated strategy
// when an LLM API key is configured, the template strategy otherwise.
// prompts may be nil.
func New(settings *domain.Settings, prompts driven.PromptStore) (driven.CopyGenerator, error) {
	if settings == nil || !settings.LLMConfigured() {
		logger.Debug("Copy strategy: %s", template.Name)
		return template.New(), nil
	}

	svc, err := CreateLLMService(&settings.LLM)
	if err != nil {
		return nil, err
	}
	return NewDelegated(svc, settings.Newsroom.Brand, prompts), nil
}

// NewDelegated wraps an existing LLM service in the delegated strategy.
func NewDelegated(svc driven.LLMService, brand string, prompts driven.PromptStore) driven.CopyGenerator {
	cw := llm.New(svc, brand)
	if prompts != nil {
		cw.SetPromptStore(prompts)
	}
	logger.Debug("Copy strategy: %s (%s)", llm.Name, svc.ModelName())
	return cw
}

// CreateLLMService creates the chat completions client for the settings.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNotConfigured, err)
	}
	return svc, nil
}
