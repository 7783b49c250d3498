package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/newsroom/internal/core/ports/driving"
)

var syncWatch bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy generated content into the site's pages",
	Long: `Copies each configured content mapping into the site's page tree.
Mappings whose source does not exist are skipped. With --watch the
copy is repeated whenever a source tree changes.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVarP(&syncWatch, "watch", "w", false, "re-sync when content changes")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if contentSyncer == nil {
		return errors.New("content sync not configured")
	}

	if syncWatch {
		cmd.Println("Watching content for changes...")
		return contentSyncer.Watch(cmd.Context(), func(report driving.SyncReport) {
			printSyncReport(cmd, report)
		})
	}

	report := contentSyncer.SyncOnce(cmd.Context())
	printSyncReport(cmd, report)
	if len(report.Failed) > 0 {
		return fmt.Errorf("sync failed for %d mappings", len(report.Failed))
	}
	return nil
}

func printSyncReport(cmd *cobra.Command, report driving.SyncReport) {
	for _, r := range report.Copied {
		cmd.Printf("%s %s -> %s (%d files)\n", successStyle.Render("copied"), r.From, r.To, r.Files)
	}
	for _, r := range report.Skipped {
		cmd.Println(mutedStyle.Render(fmt.Sprintf("skipped %s (missing)", r.From)))
	}
	for _, r := range report.Failed {
		cmd.Println(warnStyle.Render(fmt.Sprintf("error %s -> %s: %v", r.From, r.To, r.Err)))
	}
}
