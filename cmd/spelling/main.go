// Command spelling keeps weekly spelling lists and draws random practice tests.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/japaniel/spelling/pkg/config"
	"github.com/japaniel/spelling/pkg/logging"
	"github.com/japaniel/spelling/pkg/notice"
)

const (
	Version = "0.1.0"
	appName = "spelling"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		var r *reportedError
		if !errors.As(err, &r) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		cancel()
		os.Exit(1)
	}
}

// reportedError marks a failure that was already shown to the user as a notice.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

type rootOptions struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Weekly spelling lists and random practice tests",
		Long: `Spelling keeps the spelling words assigned each week and draws
random practice tests from everything stored so far.

Words are stored locally, in SQLite by default or in a JSON file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		addCmd(opts),
		viewCmd(opts),
		weeksCmd(opts),
		testCmd(opts),
		exportCmd(opts),
		importCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)

	return cmd
}

// withApp loads configuration, starts a session and runs fn against it.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(app *App) error) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}
	logger := logging.New(cfg.Log, cmd.ErrOrStderr())

	app, err := NewApp(cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(app)
}

// report renders the failure notice for err on stderr and marks it as shown.
func report(cmd *cobra.Command, err error) error {
	n := notice.FromError(err)
	_ = notice.Render(cmd.ErrOrStderr(), n)
	return &reportedError{err: err}
}
