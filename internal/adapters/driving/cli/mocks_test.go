package cli

import (
	"bytes"
	"context"
	"time"

	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driving"
)

// mockNewsroom implements driving.Newsroom for testing.
type mockNewsroom struct {
	report  *driving.RunReport
	preview *driving.Preview
	err     error
	gotOpts driving.RunOptions
}

func (m *mockNewsroom) Run(_ context.Context, opts driving.RunOptions) (*driving.RunReport, error) {
	m.gotOpts = opts
	return m.report, m.err
}

func (m *mockNewsroom) Preview(_ context.Context) (*driving.Preview, error) {
	return m.preview, m.err
}

// mockSyncer implements driving.ContentSyncer for testing.
type mockSyncer struct {
	report  driving.SyncReport
	watched bool
}

func (m *mockSyncer) SyncOnce(_ context.Context) driving.SyncReport {
	return m.report
}

func (m *mockSyncer) Watch(_ context.Context, onSync func(driving.SyncReport)) error {
	m.watched = true
	onSync(m.report)
	return nil
}

func sampleTrade() *domain.Trade {
	return &domain.Trade{
		ID:        "t1",
		Timestamp: time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC),
		Actors:    []domain.Identity{{Team: "Lakers", GM: "Alice"}, {Team: "Celtics", GM: "Bob"}},
		Assets: []domain.AssetMove{
			{RosterID: 1, In: "LeBron James"},
			{RosterID: 2, Out: "LeBron James"},
		},
	}
}

// execute runs the root command with args and returns its combined output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// withServices swaps the package services for the duration of a test.
func withServices(s *Services) func() {
	oldNewsroom, oldPublisher, oldSyncer := newsroomService, publisher, contentSyncer
	oldHandler, oldAddr := apiHandler, listenAddr
	oldDry, oldPublish, oldMax, oldWatch, oldJSON := runDryRun, runPublish, runMaxEvents, syncWatch, eventsJSON

	setServices(s)
	return func() {
		newsroomService, publisher, contentSyncer = oldNewsroom, oldPublisher, oldSyncer
		apiHandler, listenAddr = oldHandler, oldAddr
		runDryRun, runPublish, runMaxEvents, syncWatch, eventsJSON = oldDry, oldPublish, oldMax, oldWatch, oldJSON
		closeFn = nil
	}
}
