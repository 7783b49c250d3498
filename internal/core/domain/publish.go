package domain

import (
	"encoding/base64"
	"fmt"
)

// DefaultCommitMessage is used when a publish request carries no message.
const DefaultCommitMessage = "news update"

// PublishFile is one file to commit to the content repository.
// ContentBase64 wins over Content when both are set.
type PublishFile struct {
	Path          string `json:"path" validate:"required"`
	Content       string `json:"content,omitempty"`
	ContentBase64 string `json:"contentBase64,omitempty" validate:"omitempty,base64"`
}

// Bytes returns the decoded file content.
func (f PublishFile) Bytes() ([]byte, error) {
	if f.ContentBase64 != "" {
		b, err := base64.StdEncoding.DecodeString(f.ContentBase64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, f.Path, err)
		}
		return b, nil
	}
	return []byte(f.Content), nil
}

// PublishRequest is the payload accepted by the publish endpoint.
type PublishRequest struct {
	Message string        `json:"message,omitempty"`
	Files   []PublishFile `json:"files" validate:"dive"`
}

// CommitMessage returns the request message or the default.
func (r *PublishRequest) CommitMessage() string {
	if r.Message == "" {
		return DefaultCommitMessage
	}
	return r.Message
}

// PublishResult summarises a successful publish.
type PublishResult struct {
	Committed []string
	Deployed  bool
}
