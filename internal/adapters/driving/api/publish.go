package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driving"
	"github.com/custodia-labs/newsroom/internal/logger"
)

// MaxBodyBytes caps the publish payload size.
const MaxBodyBytes = 10 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

type publishHandler struct {
	publisher driving.Publisher
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *publishHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "POST only"})
		return
	}

	if h.publisher == nil || !h.publisher.Configured() {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Missing secrets"})
		return
	}

	req, err := decodePublishRequest(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	res, err := h.publisher.Publish(r.Context(), req)
	switch {
	case errors.Is(err, domain.ErrNotConfigured):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Missing secrets"})
		return
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	case err != nil:
		logger.Error("Publish failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	logger.Info("Published %d files via API", len(res.Committed))
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// decodePublishRequest parses and validates the payload. An empty body is
// treated as an empty request.
func decodePublishRequest(body io.Reader) (domain.PublishRequest, error) {
	var req domain.PublishRequest

	data, err := io.ReadAll(body)
	if err != nil {
		return req, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return req, nil
	}

	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("invalid JSON: %w", err)
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return req, fmt.Errorf("invalid payload: %s", strings.Join(fields, ", "))
		}
		return req, fmt.Errorf("invalid payload: %w", err)
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Encode response: %v", err)
	}
}
