package services

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsroom/internal/core/domain"
)

type commit struct {
	path    string
	content string
	message string
}

// mockCommitter implements driven.ContentCommitter for testing.
type mockCommitter struct {
	failOn  string
	commits []commit
}

func (m *mockCommitter) Commit(_ context.Context, path string, content []byte, message string) error {
	if path == m.failOn {
		return errors.New("422 sha mismatch")
	}
	m.commits = append(m.commits, commit{path: path, content: string(content), message: message})
	return nil
}

// mockDeployer implements driven.DeployTrigger for testing.
type mockDeployer struct {
	err   error
	calls int
}

func (m *mockDeployer) Trigger(_ context.Context) error {
	m.calls++
	return m.err
}

func TestPublishService_Configured(t *testing.T) {
	assert.True(t, NewPublishService(&mockCommitter{}, &mockDeployer{}).Configured())
	assert.False(t, NewPublishService(nil, &mockDeployer{}).Configured())
	assert.False(t, NewPublishService(&mockCommitter{}, nil).Configured())
}

func TestPublishService_NotConfigured(t *testing.T) {
	_, err := NewPublishService(nil, nil).Publish(context.Background(), domain.PublishRequest{})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestPublishService_CommitsInOrderThenDeploys(t *testing.T) {
	c := &mockCommitter{}
	d := &mockDeployer{}
	rec := newRecordingMetrics()
	svc := NewPublishService(c, d)
	svc.SetMetrics(rec)

	res, err := svc.Publish(context.Background(), domain.PublishRequest{
		Files: []domain.PublishFile{
			{Path: "content/a.md", Content: "hello"},
			{Path: "public/b.png", ContentBase64: base64.StdEncoding.EncodeToString([]byte("png")), Content: "ignored"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"content/a.md", "public/b.png"}, res.Committed)
	assert.True(t, res.Deployed)
	assert.Equal(t, 1, d.calls)
	require.Len(t, c.commits, 2)
	assert.Equal(t, commit{path: "content/a.md", content: "hello", message: "news update"}, c.commits[0])
	assert.Equal(t, "png", c.commits[1].content)
	assert.Equal(t, 2, rec.committed)
	assert.Equal(t, []bool{true}, rec.publishes)
}

func TestPublishService_CustomMessage(t *testing.T) {
	c := &mockCommitter{}
	_, err := NewPublishService(c, &mockDeployer{}).Publish(context.Background(), domain.PublishRequest{
		Message: "trade wire",
		Files:   []domain.PublishFile{{Path: "a.md"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "trade wire", c.commits[0].message)
}

func TestPublishService_EmptyRequestStillDeploys(t *testing.T) {
	d := &mockDeployer{}
	res, err := NewPublishService(&mockCommitter{}, d).Publish(context.Background(), domain.PublishRequest{})
	require.NoError(t, err)

	assert.Empty(t, res.Committed)
	assert.Equal(t, 1, d.calls)
}

func TestPublishService_CommitFailureAborts(t *testing.T) {
	c := &mockCommitter{failOn: "b.md"}
	d := &mockDeployer{}
	rec := newRecordingMetrics()
	svc := NewPublishService(c, d)
	svc.SetMetrics(rec)

	_, err := svc.Publish(context.Background(), domain.PublishRequest{
		Files: []domain.PublishFile{{Path: "a.md"}, {Path: "b.md"}, {Path: "c.md"}},
	})
	require.Error(t, err)

	assert.Contains(t, err.Error(), "commit b.md")
	assert.Len(t, c.commits, 1)
	assert.Zero(t, d.calls)
	assert.Equal(t, []bool{false}, rec.publishes)
}

func TestPublishService_BadBase64(t *testing.T) {
	d := &mockDeployer{}
	_, err := NewPublishService(&mockCommitter{}, d).Publish(context.Background(), domain.PublishRequest{
		Files: []domain.PublishFile{{Path: "a.png", ContentBase64: "!!!"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, d.calls)
}

func TestPublishService_DeployFailure(t *testing.T) {
	d := &mockDeployer{err: errors.New("hook returned 404")}
	_, err := NewPublishService(&mockCommitter{}, d).Publish(context.Background(), domain.PublishRequest{
		Files: []domain.PublishFile{{Path: "a.md"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trigger deploy")
}
