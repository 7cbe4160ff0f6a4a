package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/admin/astro-transits/internal/app"
	"github.com/spf13/cobra"
)

const appName = "astro_transits"

// noWindowMessage совпадает с ответом HTTP API, когда окно не найдено
const noWindowMessage = "No aspect found in that window"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "astro-transits",
		Short:         "Transit aspects and transit windows over a Swiss Ephemeris positions service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API, Kafka scan consumer and background jobs",
			Args:  cobra.NoArgs,
			RunE:  runServe,
		},
		newAspectsCmd(),
		newWindowCmd(),
		newScanCmd(),
		newPositionsCmd(),
	)

	return root
}

// loadApp читает конфигурацию из окружения с префиксом ASTRO_TRANSITS
func loadApp() (*app.App, error) {
	cfg, err := app.NewEnvConfig(strings.ToUpper(appName))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return app.New(appName, cfg), nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	return a.Run(cmd.Context())
}
