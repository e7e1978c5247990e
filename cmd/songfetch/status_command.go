package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"songfetch/internal/config"
	"songfetch/internal/deps"
	"songfetch/internal/pipeline"
	"songfetch/internal/preflight"
	"songfetch/internal/titles"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var network bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check directories, external tools and the title list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			var lines []string
			lines = append(lines, renderSectionHeader("Configuration", colorize)...)
			configMessage := ctx.configPath
			if configMessage == "" {
				configMessage = "defaults"
			}
			lines = append(lines,
				renderStatusLine("Config", statusInfo, configMessage, colorize),
				renderStatusLine("Search backend", statusInfo, cfg.Search.Backend, colorize),
				renderStatusLine("Download backend", statusInfo, cfg.Download.Backend, colorize),
				renderStatusLine("Convert", statusInfo, yesNo(cfg.Download.Convert), colorize),
				renderStatusLine("Normalize", statusInfo, yesNo(cfg.Download.NormalizeExtension), colorize),
			)

			checks := preflight.RunAll(cfg)
			if network && cfg.Search.Backend == config.SearchBackendHTML {
				checks = append(checks, preflight.CheckSearchEndpoint(cmd.Context(), cfg.Search.BaseURL, cfg.Search.UserAgent))
			}
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Checks", colorize)...)
			lines = append(lines, checkLines(checks, colorize)...)

			statuses := preflight.CheckSystemDeps(cmd.Context(), cfg)
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			lines = append(lines, dependencyLines(statuses, colorize)...)

			if titleLines, err := titles.Load(cfg.Paths.TitlesFile); err == nil {
				counts := pipeline.CountStates(titles.ParseAll(titleLines, cfg.Titles.Separator))
				lines = append(lines, "")
				lines = append(lines, renderSectionHeader("Titles", colorize)...)
				lines = append(lines,
					renderStatusLine("Unresolved", statusInfo, fmt.Sprintf("%d", counts[pipeline.StateUnresolved]), colorize),
					renderStatusLine("Resolved", statusInfo, fmt.Sprintf("%d", counts[pipeline.StateResolved]), colorize),
					renderStatusLine("Disabled", statusInfo, fmt.Sprintf("%d", counts[pipeline.StateDisabled]), colorize),
				)
			}

			fmt.Fprintln(out, strings.Join(lines, "\n"))

			failed := preflight.Failed(checks)
			missing := deps.Missing(statuses)
			if len(failed) > 0 || len(missing) > 0 {
				return fmt.Errorf("%d check(s) failed, %d required tool(s) missing", len(failed), len(missing))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&network, "network", false, "Also check that the search site is reachable")
	return cmd
}
