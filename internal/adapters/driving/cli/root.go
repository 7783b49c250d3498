// Package cli implements the newsroom command line.
//
// Commands read their services from package-level variables. The binary
// installs a bootstrap function that loads settings and wires the services
// before any command runs; tests replace the variables directly.
package cli

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/newsroom/internal/adapters/driven/config/file"
	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driving"
	"github.com/custodia-labs/newsroom/internal/logger"
)

// Services is everything the commands need.
type Services struct {
	Newsroom   driving.Newsroom
	Publisher  driving.Publisher
	Syncer     driving.ContentSyncer
	Handler    http.Handler
	ListenAddr string

	// Close releases resources after the command finishes. May be nil.
	Close func() error
}

// Bootstrap loads settings from configPath and builds the services.
type Bootstrap func(ctx context.Context, configPath string) (*Services, error)

var (
	version = "dev"

	verbose    bool
	configPath string

	bootstrap Bootstrap
	closeFn   func() error

	newsroomService driving.Newsroom
	publisher       driving.Publisher
	contentSyncer   driving.ContentSyncer
	apiHandler      http.Handler
	listenAddr      = domain.DefaultListenAddr
)

var rootCmd = &cobra.Command{
	Use:   "newsroom",
	Short: "League newsroom",
	Long: `Turns fantasy league transactions into short news articles.
Fetches recent trades and signings, writes headline copy and
stores each story as a Markdown file with front-matter.`,
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", file.DefaultConfigFile, "path to the settings file")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap installs the function that wires services before a command runs.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// Execute runs the root command. Cancelling ctx stops long-running
// commands such as serve and sync --watch.
func Execute(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

func prepare(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd == versionCmd {
		return nil
	}

	svcs, err := bootstrap(cmd.Context(), configPath)
	if err != nil {
		return err
	}
	setServices(svcs)
	return nil
}

func setServices(s *Services) {
	newsroomService = s.Newsroom
	publisher = s.Publisher
	contentSyncer = s.Syncer
	apiHandler = s.Handler
	if s.ListenAddr != "" {
		listenAddr = s.ListenAddr
	}
	closeFn = s.Close
}

func closeServices() {
	if closeFn == nil {
		return
	}
	if err := closeFn(); err != nil {
		logger.Warn("Close: %v", err)
	}
	closeFn = nil
}
