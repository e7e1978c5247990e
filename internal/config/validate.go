package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTitles(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTitles() error {
	if strings.TrimSpace(c.Titles.Separator) == "" {
		return errors.New("titles.separator must contain a non-space character")
	}
	if strings.HasPrefix(c.Titles.Separator, "-") {
		return errors.New("titles.separator must not start with the disabled marker '-'")
	}
	return nil
}

func (c *Config) validateSearch() error {
	switch c.Search.Backend {
	case SearchBackendHTML, SearchBackendYtdlp:
	default:
		return fmt.Errorf("search.backend: unsupported value %q (use %q or %q)", c.Search.Backend, SearchBackendHTML, SearchBackendYtdlp)
	}
	if !strings.HasPrefix(c.Search.BaseURL, "http://") && !strings.HasPrefix(c.Search.BaseURL, "https://") {
		return fmt.Errorf("search.base_url must be an http(s) URL, got %q", c.Search.BaseURL)
	}
	if err := ensurePositiveMap(map[string]int{
		"search.candidates":      c.Search.Candidates,
		"search.max_attempts":    c.Search.MaxAttempts,
		"search.request_timeout": c.Search.RequestTimeout,
	}); err != nil {
		return err
	}
	if c.Search.RetryDelayMS < 0 {
		return errors.New("search.retry_delay_ms must be >= 0")
	}
	return nil
}

func (c *Config) validateDownload() error {
	switch c.Download.Backend {
	case DownloadBackendYouTube, DownloadBackendYtdlp:
	default:
		return fmt.Errorf("download.backend: unsupported value %q (use %q or %q)", c.Download.Backend, DownloadBackendYouTube, DownloadBackendYtdlp)
	}
	if c.Download.MaxAttempts <= 0 {
		return errors.New("download.max_attempts must be positive")
	}
	if c.Download.RetryDelayMS < 0 {
		return errors.New("download.retry_delay_ms must be >= 0")
	}
	if c.Download.SourceExt == c.Download.TargetExt && (c.Download.Convert || c.Download.NormalizeExtension) {
		return errors.New("download.source_ext and download.target_ext must differ when convert or normalize_extension is enabled")
	}
	switch c.Download.Naming {
	case NamingTitle, NamingLabel:
	default:
		return fmt.Errorf("download.naming: unsupported value %q (use %q or %q)", c.Download.Naming, NamingTitle, NamingLabel)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	if c.Logging.Verbosity < 0 || c.Logging.Verbosity > 2 {
		return errors.New("logging.verbosity must be 0, 1 or 2")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
