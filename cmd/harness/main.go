package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/di"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/infrastructure/env"
)

// errScenarioFailed makes the process exit non-zero after the result has been
// printed.
var errScenarioFailed = errors.New("scenario failed")

var cfg di.Config

var rootCmd = &cobra.Command{
	Use:   "harness",
	Short: "Date-picker automation harness",
	Long: "Detects date-picker widgets on a page, drives them through open, set date, " +
		"confirm and validate, and reports one structured result per scenario.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = di.ConfigFromEnv(env.NewEnvService())
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			cfg.Debug = true
		}
		if headful, _ := cmd.Flags().GetBool("headful"); headful {
			cfg.Browser.Headless = false
		}
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			color.NoColor = true
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "log at debug level")
	rootCmd.PersistentFlags().Bool("headful", false, "show the browser window")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(runCmd, detectCmd, catalogCmd, scenariosCmd, serveCmd, snapshotCmd, batchCmd)
}

// newContainer builds the object graph, launching a browser only when asked.
func newContainer(ctx context.Context, withBrowser bool) (*di.Container, error) {
	c := cfg
	c.LaunchBrowser = withBrowser
	container, err := di.NewContainer(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	return container, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errScenarioFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
