// Package deploy triggers site rebuilds through a hosting platform's
// deploy hook URL.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driven"
	"github.com/custodia-labs/newsroom/internal/logger"
)

// Ensure Hook implements the interface.
var _ driven.DeployTrigger = (*Hook)(nil)

// DefaultTimeout bounds a single hook request.
const DefaultTimeout = 30 * time.Second

// HookError is returned when the hook answers with a non-2xx status.
type HookError struct {
	StatusCode int
	Body       string
}

func (e *HookError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("deploy hook returned %d", e.StatusCode)
	}
	return fmt.Sprintf("deploy hook returned %d: %s", e.StatusCode, e.Body)
}

// IsHookError reports whether err carries a HookError.
func IsHookError(err error) bool {
	var hookErr *HookError
	return errors.As(err, &hookErr)
}

// Hook posts an empty request to a deploy hook URL.
type Hook struct {
	url    string
	client *http.Client
}

// NewHook creates a deploy trigger for url. client may be nil.
func NewHook(url string, client *http.Client) (*Hook, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: deploy hook", domain.ErrNotConfigured)
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Hook{url: url, client: client}, nil
}

// Trigger fires the hook once. The response body is read only to report errors.
func (h *Hook) Trigger(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create deploy request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("post deploy hook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &HookError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	logger.Debug("Deploy hook accepted with status %d", resp.StatusCode)
	return nil
}
