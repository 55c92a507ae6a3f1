package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/japaniel/spelling/pkg/notice"
)

func testCmd(opts *rootOptions) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Draw a random practice test from all stored words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *App) error {
				n := count
				if !cmd.Flags().Changed("count") {
					n = app.Config.Test.Size
				}

				picked, err := app.Store.SampleTest(n)
				if err != nil {
					return report(cmd, err)
				}

				out := cmd.OutOrStdout()
				if err := notice.Render(out, notice.TestReady(len(picked))); err != nil {
					return err
				}
				fmt.Fprintln(out, "Your Test Words")
				for i, w := range picked {
					fmt.Fprintf(out, "%d. %s\n", i+1, w)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of words in the test (default test.size from config)")
	return cmd
}
