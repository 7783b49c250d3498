package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driven"
)

// mockLLM implements driven.LLMService for testing.
type mockLLM struct {
	reply    string
	err      error
	messages []driven.ChatMessage
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	m.messages = messages
	return m.reply, m.err
}
func (m *mockLLM) ModelName() string            { return "mock" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if p, ok := m.prompts[name]; ok {
		return p, nil
	}
	return "", errors.New("not found")
}

func sampleTrade() *domain.Trade {
	return &domain.Trade{
		ID:        "991",
		Timestamp: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Actors: []domain.Identity{
			{Team: "Lakers", GM: "Jeanie", Handle: "@jb"},
			{Team: "Celtics", GM: "Brad"},
		},
		Assets: []domain.AssetMove{{RosterID: 1, In: "X"}, {RosterID: 2, Out: "Y"}},
	}
}

func TestCopywriter_Generate(t *testing.T) {
	svc := &mockLLM{reply: "## \"Lakers land X in stunner\"\n\nThe Lakers made a move.\n\nMore to come.\n"}
	cw := New(svc, "RABKL")

	cp, err := cw.Generate(context.Background(), sampleTrade())
	require.NoError(t, err)

	assert.Equal(t, "Lakers land X in stunner", cp.Title)
	assert.Equal(t, "The Lakers made a move.\n\nMore to come.", cp.Body)
	assert.Equal(t, []string{"trade", "Lakers", "Celtics"}, cp.Tags)

	require.Len(t, svc.messages, 2)
	assert.Equal(t, driven.RoleSystem, svc.messages[0].Role)
	assert.Equal(t,
		"You are RABKL newsroom copy editor. Woj/Shams tone with slight parody. Headlines <= 90 chars. Facts only based on inputs.",
		svc.messages[0].Content)
	assert.Equal(t, driven.RoleUser, svc.messages[1].Role)
	assert.Contains(t, svc.messages[1].Content, "Create headline (<=90 chars) and 1-2 paragraph body for this event: {")
	assert.Contains(t, svc.messages[1].Content, `"type":"TRADE"`)
	assert.Contains(t, svc.messages[1].Content, `"event_id":"991"`)
	assert.Contains(t, svc.messages[1].Content, `"in":"X"`)
}

func TestCopywriter_Generate_HeadlineOnly(t *testing.T) {
	cw := New(&mockLLM{reply: "Just a headline"}, "")

	ev := &domain.Signing{ID: "5", Adds: []string{"X"}}
	cp, err := cw.Generate(context.Background(), ev)
	require.NoError(t, err)

	assert.Equal(t, "Just a headline", cp.Title)
	assert.Equal(t, FallbackBody, cp.Body)
	assert.Equal(t, []string{"signing"}, cp.Tags)
}

func TestCopywriter_Generate_EmptyReply(t *testing.T) {
	cw := New(&mockLLM{reply: "  \n\n"}, "")

	_, err := cw.Generate(context.Background(), sampleTrade())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyCompletion)
}

func TestCopywriter_Generate_ServiceError(t *testing.T) {
	boom := errors.New("status 500")
	cw := New(&mockLLM{err: boom}, "")

	_, err := cw.Generate(context.Background(), sampleTrade())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestCopywriter_UsesPromptStore(t *testing.T) {
	svc := &mockLLM{reply: "Title\nBody"}
	cw := New(svc, "DUNK")
	cw.SetPromptStore(&mockPromptStore{prompts: map[string]string{
		driven.PromptNewsroomSystem: "Editor for %s.",
	}})

	_, err := cw.Generate(context.Background(), sampleTrade())
	require.NoError(t, err)

	assert.Equal(t, "Editor for DUNK.", svc.messages[0].Content)
	// Missing prompt falls back to the default.
	assert.Contains(t, svc.messages[1].Content, "Create headline")
}

func TestParseReply(t *testing.T) {
	tests := []struct {
		name      string
		reply     string
		wantTitle string
		wantBody  string
		wantOK    bool
	}{
		{name: "plain", reply: "Title\nBody", wantTitle: "Title", wantBody: "Body", wantOK: true},
		{name: "leading blank lines", reply: "\n\n# Title\nBody", wantTitle: "Title", wantBody: "Body", wantOK: true},
		{name: "quoted", reply: `"Quoted 'title'"` + "\nBody", wantTitle: "Quoted 'title", wantBody: "Body", wantOK: true},
		{name: "crlf", reply: "Title\r\nBody\r\n", wantTitle: "Title", wantBody: "Body", wantOK: true},
		{name: "trailing hashes", reply: "# Big trade #\nBody", wantTitle: "Big trade", wantBody: "Body", wantOK: true},
		{name: "paragraph breaks kept", reply: "Title\n\nPara one.\n\nPara two.", wantTitle: "Title", wantBody: "Para one.\n\nPara two.", wantOK: true},
		{name: "headline only", reply: "Title\n \n", wantTitle: "Title", wantBody: FallbackBody, wantOK: true},
		{name: "empty", reply: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, body, ok := ParseReply(tt.reply)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
