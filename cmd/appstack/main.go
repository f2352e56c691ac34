// main.go bootstraps appstack: it builds the root Cobra command and executes it with a signal-aware context.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/appstack/internal/config"
	"github.com/example/appstack/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", color.New(color.FgRed).Sprint("Error:"), err)
		os.Exit(1)
	}
}

// app carries the global options and logger to every subcommand.
type app struct {
	opts   *config.Options
	logger *zap.Logger
}

func (a *app) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}

func newRootCommand() *cobra.Command {
	a := &app{opts: config.NewOptions()}
	cmd := &cobra.Command{
		Use:   "appstack",
		Short: "Compose and validate declarative application stacks",
		Long: `appstack works with declarative stack definitions: named collections of
business objects, views, workflows, roles, connectors, and more.

It normalizes the two accepted input shapes into canonical array form,
validates entities against their per-collection schemas, resolves string
cross-references, and composes independently authored stacks into one
effective configuration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.opts.ApplyEnv(cmd.Root().PersistentFlags())
			if a.opts.NoColor {
				color.NoColor = true
			}
			logger, err := logging.New(a.opts.LogLevel)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	a.opts.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(newValidateCommand(a))
	cmd.AddCommand(newComposeCommand(a))
	cmd.AddCommand(newDiffCommand(a))
	cmd.AddCommand(newInspectCommand(a))
	return cmd
}
