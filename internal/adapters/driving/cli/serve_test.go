package cli

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_NotConfigured(t *testing.T) {
	defer withServices(&Services{})()

	_, err := execute("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish API not configured")
}

func TestServeCmd_StopsOnCancel(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	defer withServices(&Services{Handler: handler})()
	defer func() { serveAddr = "" }()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"serve", "--addr", "127.0.0.1:0"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(ctx)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Listening on 127.0.0.1:0")
}
