package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"songfetch/internal/config"
	"songfetch/internal/logging"
)

type globalFlags struct {
	configPath  string
	titlesFile  string
	downloadDir string
	verbosity   int
	logFormat   string
}

type commandContext struct {
	flags globalFlags

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	// backends builds the resolver and fetcher. Tests replace it.
	backends backendFactory
}

func newCommandContext() *commandContext {
	return &commandContext{backends: defaultBackends}
}

// ensureConfig loads the configuration once and applies flag overrides that
// were set on the command line.
func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.configPath))
		if err != nil {
			c.configErr = err
			return
		}
		c.configPath = path
		c.configExists = exists
		if err := c.applyGlobalOverrides(cmd, cfg); err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) applyGlobalOverrides(cmd *cobra.Command, cfg *config.Config) error {
	changed := func(name string) bool {
		flag := cmd.Flags().Lookup(name)
		return flag != nil && flag.Changed
	}
	if changed("titles") {
		cfg.Paths.TitlesFile = c.flags.titlesFile
	}
	if changed("dir") {
		cfg.Paths.DownloadDir = c.flags.downloadDir
	}
	if changed("verbosity") {
		cfg.Logging.Verbosity = c.flags.verbosity
	}
	if changed("log-format") {
		cfg.Logging.Format = c.flags.logFormat
	}
	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}
	return nil
}

func (c *commandContext) loggerFor(cfg *config.Config) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
