package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/newsroom/internal/core/ports/driving"
)

var (
	runDryRun    bool
	runPublish   bool
	runMaxEvents int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Write articles for recent league transactions",
	Long: `Fetches the league's recent transaction rounds, turns trades and
signings into events and writes up to --max-events articles under the
content directory. Use --dry-run to print the copy without writing and
--publish to commit the new articles and trigger a redeploy.`,
	Args: cobra.NoArgs,
	RunE: runNewsroom,
}

func init() {
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "generate copy but write nothing")
	runCmd.Flags().BoolVar(&runPublish, "publish", false, "commit written articles and trigger a deploy")
	runCmd.Flags().IntVarP(&runMaxEvents, "max-events", "n", 0, "maximum articles to write (0 uses the configured value)")
	rootCmd.AddCommand(runCmd)
}

func runNewsroom(cmd *cobra.Command, _ []string) error {
	if newsroomService == nil {
		return errors.New("newsroom service not configured")
	}

	cmd.Println(headerStyle.Render("Newsroom starting..."))

	report, err := newsroomService.Run(cmd.Context(), driving.RunOptions{
		MaxEvents: runMaxEvents,
		DryRun:    runDryRun,
		Publish:   runPublish,
	})
	if report != nil && len(report.SkippedRounds) > 0 {
		cmd.Println(warnStyle.Render(fmt.Sprintf("Skipped rounds: %s", joinInts(report.SkippedRounds))))
	}
	if err != nil {
		if report != nil && len(report.Written) > 0 {
			cmd.Printf("Wrote %d files before failing.\n", len(report.Written))
		}
		return fmt.Errorf("run failed: %w", err)
	}

	if report.NoEvents {
		cmd.Println("No new events found.")
		return nil
	}

	if runDryRun {
		printDrafts(cmd, report.Drafts)
		return nil
	}

	for _, path := range report.Written {
		cmd.Println(successStyle.Render("wrote"), path)
	}

	data, err := json.MarshalIndent(report.Written, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal files: %w", err)
	}
	cmd.Println("Done. Files:", string(data))

	if report.Published != nil {
		cmd.Printf("Published %d files; deploy triggered.\n", len(report.Published.Committed))
	}
	return nil
}

func printDrafts(cmd *cobra.Command, drafts []driving.Draft) {
	for i, d := range drafts {
		cmd.Printf("[%d] %s %s\n", i+1, d.Event.Kind(), headerStyle.Render(d.Copy.Title))
		if len(d.Copy.Tags) > 0 {
			cmd.Println(mutedStyle.Render("tags: " + strings.Join(d.Copy.Tags, ", ")))
		}
		cmd.Println(d.Copy.Body)
		cmd.Println()
	}
	cmd.Printf("Dry run: %d drafts, nothing written.\n", len(drafts))
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
