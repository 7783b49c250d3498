package deploy

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsroom/internal/core/domain"
)

func TestNewHook_RequiresURL(t *testing.T) {
	_, err := NewHook("", nil)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestHook_Trigger(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"job":{"id":"x"}}`))
	}))
	defer server.Close()

	hook, err := NewHook(server.URL, server.Client())
	require.NoError(t, err)

	require.NoError(t, hook.Trigger(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestHook_TriggerNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad hook", http.StatusNotFound)
	}))
	defer server.Close()

	hook, err := NewHook(server.URL, nil)
	require.NoError(t, err)

	err = hook.Trigger(context.Background())
	require.Error(t, err)
	assert.True(t, IsHookError(err))
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "bad hook")
}

func TestHook_TriggerCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	hook, err := NewHook(server.URL, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = hook.Trigger(ctx)
	require.Error(t, err)
	assert.False(t, IsHookError(err))
}
