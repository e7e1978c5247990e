package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"songfetch/internal/pipeline"
	"songfetch/internal/titles"
)

type listEntry struct {
	Line  int            `json:"line"`
	State pipeline.State `json:"state"`
	Title string         `json:"title"`
	Link  string         `json:"link,omitempty"`
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var stateFilter []string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the title list with the state of each record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			lines, err := titles.Load(cfg.Paths.TitlesFile)
			if err != nil {
				return err
			}
			records := titles.ParseAll(lines, cfg.Titles.Separator)

			wanted := map[pipeline.State]bool{}
			for _, s := range stateFilter {
				wanted[pipeline.State(strings.ToLower(strings.TrimSpace(s)))] = true
			}

			entries := make([]listEntry, 0, len(records))
			for i, rec := range records {
				state := pipeline.StateOf(rec)
				if state == pipeline.StateBlank {
					continue
				}
				if len(wanted) > 0 && !wanted[state] {
					continue
				}
				entries = append(entries, listEntry{Line: i + 1, State: state, Title: rec.Query(), Link: rec.URL()})
			}

			if jsonOutput {
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No titles")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{fmt.Sprintf("%d", e.Line), string(e.State), e.Title, e.Link})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Line", "State", "Title", "Link"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))

			counts := pipeline.CountStates(records)
			fmt.Fprintf(out, "%d unresolved, %d resolved, %d disabled\n",
				counts[pipeline.StateUnresolved], counts[pipeline.StateResolved], counts[pipeline.StateDisabled])
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&stateFilter, "state", nil, "Only show records in these states (unresolved, resolved, disabled)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print records as JSON")
	return cmd
}
