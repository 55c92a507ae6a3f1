package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/japaniel/spelling/pkg/notice"
	"github.com/japaniel/spelling/pkg/words"
)

func exportCmd(opts *rootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all stored words as a JSON backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *App) error {
				if outPath == "" || outPath == "-" {
					if err := words.WriteBackup(cmd.OutOrStdout(), app.Store.Entries()); err != nil {
						return report(cmd, fmt.Errorf("write backup: %w", err))
					}
					return nil
				}
				f, err := os.Create(outPath)
				if err != nil {
					return report(cmd, fmt.Errorf("create backup: %w", err))
				}
				if err := words.WriteBackup(f, app.Store.Entries()); err != nil {
					f.Close()
					return report(cmd, fmt.Errorf("write backup: %w", err))
				}
				if err := f.Close(); err != nil {
					return report(cmd, fmt.Errorf("close backup: %w", err))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Backup file (default stdout)")
	return cmd
}

func importCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Append the words of a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *App) error {
				f, err := os.Open(args[0])
				if err != nil {
					return report(cmd, fmt.Errorf("open backup: %w", err))
				}
				defer f.Close()

				entries, err := words.ReadBackup(f)
				if err != nil {
					return report(cmd, err)
				}
				n, err := app.Store.Restore(entries)
				if err != nil {
					return report(cmd, err)
				}
				return notice.Render(cmd.OutOrStdout(), notice.Restored(n))
			})
		},
	}
}
