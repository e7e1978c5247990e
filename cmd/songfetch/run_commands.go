package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"songfetch/internal/config"
	"songfetch/internal/pipeline"
)

type runFlags struct {
	candidates int
	convert    bool
	normalize  bool
	reResolve  bool
	naming     string
	phase      string
	jsonOutput bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	return newPipelineCommand(ctx, pipeline.PhaseAll, "run",
		"Resolve unresolved titles, then download every resolved title")
}

func newResolveCommand(ctx *commandContext) *cobra.Command {
	return newPipelineCommand(ctx, pipeline.PhaseResolve, "resolve",
		"Resolve unresolved titles to links without downloading")
}

func newFetchCommand(ctx *commandContext) *cobra.Command {
	return newPipelineCommand(ctx, pipeline.PhaseFetch, "fetch",
		"Download titles that already have a link")
}

func newPipelineCommand(ctx *commandContext, phase pipeline.Phase, use, short string) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected := phase
			if cmd.Flags().Changed("phase") {
				parsed, err := pipeline.ParsePhase(flags.phase)
				if err != nil {
					return err
				}
				selected = parsed
			}

			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			if err := applyRunOverrides(cmd, &flags, cfg); err != nil {
				return err
			}
			logger, err := ctx.loggerFor(cfg)
			if err != nil {
				return err
			}

			resolver, fetcher, err := ctx.backends(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
			if err != nil {
				return err
			}
			runner := pipeline.New(cfg, resolver, fetcher, logger)
			summary, err := runner.Run(cmd.Context(), selected)
			if err != nil {
				return err
			}

			if flags.jsonOutput {
				return writeJSON(cmd, summary)
			}
			if cfg.Logging.Verbosity > 0 {
				printSummary(cmd.OutOrStdout(), summary)
			}
			return nil
		},
	}

	f := cmd.Flags()
	if phase != pipeline.PhaseFetch {
		f.IntVarP(&flags.candidates, "candidates", "n", 1, "Offer the top N search results for manual choice")
		f.BoolVar(&flags.reResolve, "re-resolve", false, "Search again for titles that already have a link")
	}
	if phase != pipeline.PhaseResolve {
		f.BoolVar(&flags.convert, "convert", false, "Transcode downloads to the target format")
		f.BoolVar(&flags.normalize, "normalize", true, "Rename unconverted downloads to the target extension")
		f.StringVar(&flags.naming, "naming", config.NamingTitle, "Name files after the title or the search result label")
	}
	if phase == pipeline.PhaseAll {
		f.StringVar(&flags.phase, "phase", string(pipeline.PhaseAll), "Passes to perform: all, resolve or fetch")
	}
	f.BoolVar(&flags.jsonOutput, "json", false, "Print the run summary as JSON (printed even at verbosity 0)")
	return cmd
}

// applyRunOverrides copies explicitly set flags onto cfg.
func applyRunOverrides(cmd *cobra.Command, flags *runFlags, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("candidates") {
		cfg.Search.Candidates = flags.candidates
	}
	if changed("re-resolve") {
		cfg.Download.ReResolve = flags.reResolve
	}
	if changed("convert") {
		cfg.Download.Convert = flags.convert
	}
	if changed("normalize") {
		cfg.Download.NormalizeExtension = flags.normalize
	}
	if changed("naming") {
		cfg.Download.Naming = flags.naming
	}
	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}
	return nil
}

func printSummary(out io.Writer, summary pipeline.Summary) {
	fmt.Fprintf(out, "Run %s (%s) finished in %s\n", summary.RunID, summary.Phase, summary.Elapsed().Round(time.Millisecond))
	if summary.Phase != pipeline.PhaseFetch {
		fmt.Fprintf(out, "  Resolved: %d  Kept: %d  Failed: %d\n", summary.Resolved, summary.Kept, summary.ResolveFailed)
	}
	if summary.Phase != pipeline.PhaseResolve {
		fmt.Fprintf(out, "  Downloaded: %d  Failed: %d  Converted: %d  Conversion failures: %d\n",
			summary.Downloaded, summary.DownloadFailed, summary.Converted, summary.ConversionFailed)
	}
	fmt.Fprintf(out, "  Records: %d  Disabled: %d  Blank: %d\n", summary.Total, summary.Disabled, summary.Blank)
	if summary.Backup != "" {
		fmt.Fprintf(out, "  Backup: %s\n", summary.Backup)
	}

	if len(summary.Items) == 0 {
		return
	}
	rows := make([][]string, 0, len(summary.Items))
	for _, item := range summary.Items {
		size := ""
		if item.Size > 0 {
			size = humanize.Bytes(uint64(item.Size))
		}
		detail := item.Detail
		if item.Path != "" {
			detail = item.Path
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", item.Line),
			item.Title,
			item.Outcome,
			size,
			detail,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Line", "Title", "Outcome", "Size", "Detail"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
	))
}
