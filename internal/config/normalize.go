package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv("SONGFETCH_TITLES_FILE"); ok && strings.TrimSpace(value) != "" {
		c.Paths.TitlesFile = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("SONGFETCH_DOWNLOAD_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.DownloadDir = strings.TrimSpace(value)
	}
}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTitles()
	c.normalizeSearch()
	c.normalizeDownload()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.TitlesFile) == "" {
		c.Paths.TitlesFile = defaultTitlesFile
	}
	if c.Paths.TitlesFile, err = expandPath(strings.TrimSpace(c.Paths.TitlesFile)); err != nil {
		return fmt.Errorf("paths.titles_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.DownloadDir) == "" {
		c.Paths.DownloadDir = defaultDownloadDir
	}
	if c.Paths.DownloadDir, err = expandPath(strings.TrimSpace(c.Paths.DownloadDir)); err != nil {
		return fmt.Errorf("paths.download_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

// The separator is significant whitespace included, so it is never trimmed.
func (c *Config) normalizeTitles() {
	if c.Titles.Separator == "" {
		c.Titles.Separator = defaultSeparator
	}
}

func (c *Config) normalizeSearch() {
	c.Search.Backend = strings.ToLower(strings.TrimSpace(c.Search.Backend))
	if c.Search.Backend == "" {
		c.Search.Backend = defaultSearchBackend
	}
	c.Search.BaseURL = strings.TrimRight(strings.TrimSpace(c.Search.BaseURL), "/")
	if c.Search.BaseURL == "" {
		c.Search.BaseURL = defaultSearchBaseURL
	}
	c.Search.UserAgent = strings.TrimSpace(c.Search.UserAgent)
	if c.Search.UserAgent == "" {
		c.Search.UserAgent = defaultSearchUserAgent
	}
}

func (c *Config) normalizeDownload() {
	c.Download.Backend = strings.ToLower(strings.TrimSpace(c.Download.Backend))
	if c.Download.Backend == "" {
		c.Download.Backend = defaultDownloadBackend
	}
	c.Download.SourceExt = normalizeExt(c.Download.SourceExt, defaultSourceExt)
	c.Download.TargetExt = normalizeExt(c.Download.TargetExt, defaultTargetExt)
	c.Download.Naming = strings.ToLower(strings.TrimSpace(c.Download.Naming))
	if c.Download.Naming == "" {
		c.Download.Naming = defaultNaming
	}
	c.Download.YtdlpBinary = strings.TrimSpace(c.Download.YtdlpBinary)
	c.Download.FFmpegBinary = strings.TrimSpace(c.Download.FFmpegBinary)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func normalizeExt(value, fallback string) string {
	value = strings.ToLower(strings.TrimLeft(strings.TrimSpace(value), "."))
	if value == "" {
		return fallback
	}
	return value
}
