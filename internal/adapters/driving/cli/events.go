package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/newsroom/internal/core/domain"
)

var eventsJSON bool

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List normalised events without writing articles",
	Long: `Fetches the league's recent transaction rounds and prints the
trades and signings a run would write about. No copy is generated
and no files are written.`,
	Args: cobra.NoArgs,
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().BoolVar(&eventsJSON, "json", false, "output events as JSON")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, _ []string) error {
	if newsroomService == nil {
		return errors.New("newsroom service not configured")
	}

	preview, err := newsroomService.Preview(cmd.Context())
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}

	if eventsJSON {
		data, err := json.MarshalIndent(preview.Events, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal events: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(preview.SkippedRounds) > 0 {
		cmd.Println(warnStyle.Render("Skipped rounds: " + joinInts(preview.SkippedRounds)))
	}
	if len(preview.Events) == 0 {
		cmd.Println("No new events found.")
		return nil
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("ID", "Type", "When", "Teams", "Summary")
	for _, ev := range preview.Events {
		if err := table.Append(
			ev.EventID(),
			ev.Kind().String(),
			ev.OccurredAt().UTC().Format(time.DateTime),
			strings.Join(domain.ActorTeams(ev), " / "),
			summarise(ev),
		); err != nil {
			return fmt.Errorf("render events: %w", err)
		}
	}
	return table.Render()
}

// summarise describes an event's player movement in one line.
func summarise(ev domain.Event) string {
	switch e := ev.(type) {
	case *domain.Trade:
		return fmt.Sprintf("%d assets", len(e.Assets))
	case *domain.Signing:
		var parts []string
		if len(e.Adds) > 0 {
			parts = append(parts, "+"+strings.Join(e.Adds, ", +"))
		}
		if len(e.Drops) > 0 {
			parts = append(parts, "-"+strings.Join(e.Drops, ", -"))
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}
