// Package file provides file-based configuration adapters.
//
// Adapters:
//   - LoadSettings: .env + TOML settings with environment overrides
//   - PromptStore: user-editable copy-editor prompts
package file
