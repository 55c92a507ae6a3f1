package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/japaniel/spelling/pkg/words"
)

const noWordsYet = "No words added yet. Start by adding some words!"

func viewCmd(opts *rootOptions) *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "view [--week N]",
		Short: "Show the stored weeks, or the words of one week",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *App) error {
				return runView(cmd, app.Store, week)
			})
		},
	}
	cmd.Flags().StringVarP(&week, "week", "w", "", "Week to show")
	return cmd
}

func weeksCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "weeks",
		Short: "List week numbers, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *App) error {
				out := cmd.OutOrStdout()
				for _, w := range app.Store.ListWeeks() {
					fmt.Fprintln(out, w)
				}
				return nil
			})
		},
	}
}

func runView(cmd *cobra.Command, store *words.Store, weekArg string) error {
	out := cmd.OutOrStdout()

	weekNum, err := words.ParseWeek(weekArg)
	if err != nil {
		return report(cmd, err)
	}

	weeks := store.ListWeeks()
	if len(weeks) == 0 {
		fmt.Fprintln(out, noWordsYet)
		return nil
	}

	if weekNum == nil {
		for _, w := range weeks {
			fmt.Fprintf(out, "Week %d\n", w)
		}
		return nil
	}

	list := store.WordsForWeek(*weekNum)
	fmt.Fprintf(out, "Week %d Words\n", *weekNum)
	if len(list) == 0 {
		fmt.Fprintf(out, "No words for week %d.\n", *weekNum)
		return nil
	}
	return writeColumns(out, list, 2)
}

// writeColumns lays words out row by row in cols aligned columns.
func writeColumns(w io.Writer, list []string, cols int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 4, ' ', 0)
	for i, word := range list {
		sep := "\t"
		if (i+1)%cols == 0 || i == len(list)-1 {
			sep = "\n"
		}
		fmt.Fprint(tw, "  "+word+sep)
	}
	return tw.Flush()
}
