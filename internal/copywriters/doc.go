// Package copywriters selects the copy generation strategy.
//
// Strategies:
//   - template: deterministic string interpolation, never fails
//   - llm: delegated to a chat completions service
//
// The strategy is chosen once at start-up by New, from configuration.
package copywriters
