package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"songfetch/internal/textutil"
	"songfetch/internal/titles"
)

// similarTitleScore is the cosine score above which add points out a
// near-duplicate. Such titles are still added.
const similarTitleScore = 0.8

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>...",
		Short: "Append titles to the title list",
		Long: `Append one unresolved record per argument. Titles that already appear in
the list, enabled or disabled, are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			path := cfg.Paths.TitlesFile

			lock, err := titles.Lock(path)
			if err != nil {
				return err
			}
			defer lock.Unlock()

			lines, err := titles.Load(path)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			records := titles.ParseAll(lines, cfg.Titles.Separator)

			out := cmd.OutOrStdout()
			var added []string
			for _, arg := range args {
				title := strings.TrimSpace(arg)
				if title == "" {
					continue
				}
				if strings.HasPrefix(title, titles.DisabledMarker) {
					return fmt.Errorf("title %q starts with the disabled marker %q", title, titles.DisabledMarker)
				}
				if strings.Contains(title, cfg.Titles.Separator) {
					return fmt.Errorf("title %q contains the separator %q", title, cfg.Titles.Separator)
				}
				if titles.Contains(records, title) {
					fmt.Fprintf(out, "Skipped %q (already listed)\n", title)
					continue
				}
				if match, score := textutil.MostSimilar(title, recordTitles(records)); score >= similarTitleScore {
					fmt.Fprintf(out, "Note: %q resembles %q\n", title, match)
				}
				records = append(records, titles.Record{Title: title})
				added = append(added, title)
			}
			if len(added) == 0 {
				return nil
			}
			if err := titles.Append(path, added); err != nil {
				return err
			}
			for _, title := range added {
				fmt.Fprintf(out, "Added %q\n", title)
			}
			return nil
		},
	}
}

func recordTitles(records []titles.Record) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		if !rec.Blank() {
			out = append(out, rec.Query())
		}
	}
	return out
}
