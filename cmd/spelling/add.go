package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/japaniel/spelling/pkg/notice"
	"github.com/japaniel/spelling/pkg/words"
	"github.com/japaniel/spelling/pkg/wordsource"
)

func addCmd(opts *rootOptions) *cobra.Command {
	var (
		week string
		file string
		urls []string
	)

	cmd := &cobra.Command{
		Use:   "add --week N [words...]",
		Short: "Add spelling words for a week",
		Long: `Add spelling words for a week, one word per line.

Words come from the arguments (one word each), from --file (use - for stdin)
and from --url pages. Blank lines are ignored.`,
		Example: `  spelling add --week 3 because friend said
  spelling add --week 3 --file week3.txt
  spelling add --week 4 --url https://school.example/spelling/week-4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *App) error {
				return runAdd(cmd, app, week, file, urls, args)
			})
		},
	}

	cmd.Flags().StringVarP(&week, "week", "w", "", "Week number the words belong to")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read words from a file, one per line (- for stdin)")
	cmd.Flags().StringArrayVar(&urls, "url", nil, "Fetch words from a web page (repeatable)")

	return cmd
}

func runAdd(cmd *cobra.Command, app *App, weekArg, file string, urls, args []string) error {
	weekNum, err := words.ParseWeek(weekArg)
	if err != nil {
		return report(cmd, err)
	}

	parts := append([]string(nil), args...)
	if file != "" {
		var text string
		if file == "-" {
			text, err = wordsource.FromReader(cmd.InOrStdin())
		} else {
			text, err = wordsource.FromFile(file)
		}
		if err != nil {
			return report(cmd, err)
		}
		parts = append(parts, text)
	}
	if len(urls) > 0 {
		text, err := app.Fetcher.FetchAll(cmd.Context(), urls)
		if err != nil {
			return report(cmd, err)
		}
		parts = append(parts, text)
	}

	added, err := app.Store.AddWords(weekNum, strings.Join(parts, "\n"))
	if err != nil {
		return report(cmd, err)
	}
	return notice.Render(cmd.OutOrStdout(), notice.Added(added, *weekNum))
}
