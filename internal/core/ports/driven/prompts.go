package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)
}

// Well-known prompt names used throughout the application.
const (
	// PromptNewsroomSystem is the system instruction for the copy editor.
	// The template expects a %s placeholder for the brand name.
	PromptNewsroomSystem = "newsroom_system"

	// PromptNewsroomEvent is the per-event user message.
	// The template expects a %s placeholder for the serialised event.
	PromptNewsroomEvent = "newsroom_event"
)

// PromptStoreAware is an optional interface for services that can use custom prompts.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}
