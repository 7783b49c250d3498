// Command newsroom turns fantasy league transactions into Markdown articles.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/custodia-labs/newsroom/internal/adapters/driving/cli"
	"github.com/custodia-labs/newsroom/internal/app"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func bootstrap(ctx context.Context, configPath string) (*cli.Services, error) {
	a, err := app.Load(ctx, configPath, app.Options{RunID: uuid.NewString})
	if err != nil {
		return nil, err
	}
	return &cli.Services{
		Newsroom:   a.Newsroom,
		Publisher:  a.Publisher,
		Syncer:     a.Syncer,
		Handler:    a.Router,
		ListenAddr: a.Settings.Publish.ListenAddr,
		Close:      a.Close,
	}, nil
}
