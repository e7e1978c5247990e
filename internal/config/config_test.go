package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"songfetch/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	workDir := t.TempDir()
	t.Chdir(workDir)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Paths.TitlesFile != filepath.Join(workDir, "titles.txt") {
		t.Fatalf("unexpected titles file: %q", cfg.Paths.TitlesFile)
	}
	if cfg.Paths.DownloadDir != filepath.Join(workDir, "Music") {
		t.Fatalf("unexpected download dir: %q", cfg.Paths.DownloadDir)
	}
	if cfg.Titles.Separator != " -> " {
		t.Fatalf("unexpected separator: %q", cfg.Titles.Separator)
	}
	if cfg.Search.Candidates != 1 {
		t.Fatalf("expected single candidate by default, got %d", cfg.Search.Candidates)
	}
	if cfg.Search.MaxAttempts != 10 {
		t.Fatalf("unexpected search attempts: %d", cfg.Search.MaxAttempts)
	}
	if cfg.Download.MaxAttempts != 5 {
		t.Fatalf("unexpected download attempts: %d", cfg.Download.MaxAttempts)
	}
	if cfg.Download.Convert {
		t.Fatal("expected convert disabled by default")
	}
	if !cfg.Download.NormalizeExtension {
		t.Fatal("expected normalize_extension enabled by default")
	}
	if cfg.Download.ReResolve {
		t.Fatal("expected re_resolve disabled by default")
	}
	if cfg.Logging.Verbosity != 1 {
		t.Fatalf("unexpected verbosity: %d", cfg.Logging.Verbosity)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.Paths.DownloadDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected download dir to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "songfetch.toml")

	type payload struct {
		Paths struct {
			TitlesFile  string `toml:"titles_file"`
			DownloadDir string `toml:"download_dir"`
		} `toml:"paths"`
		Titles struct {
			Separator string `toml:"separator"`
		} `toml:"titles"`
		Search struct {
			Candidates int `toml:"candidates"`
		} `toml:"search"`
		Download struct {
			SourceExt string `toml:"source_ext"`
			Convert   bool   `toml:"convert"`
		} `toml:"download"`
	}
	custom := payload{}
	custom.Paths.TitlesFile = filepath.Join(tempDir, "songs.txt")
	custom.Paths.DownloadDir = filepath.Join(tempDir, "out")
	custom.Titles.Separator = " => "
	custom.Search.Candidates = 5
	custom.Download.SourceExt = ".M4A"
	custom.Download.Convert = true
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.TitlesFile != custom.Paths.TitlesFile {
		t.Fatalf("unexpected titles file: %q", cfg.Paths.TitlesFile)
	}
	if cfg.Titles.Separator != " => " {
		t.Fatalf("expected separator override, got %q", cfg.Titles.Separator)
	}
	if cfg.Search.Candidates != 5 {
		t.Fatalf("expected 5 candidates, got %d", cfg.Search.Candidates)
	}
	if cfg.Download.SourceExt != "m4a" {
		t.Fatalf("expected normalized source ext, got %q", cfg.Download.SourceExt)
	}
	if !cfg.Download.Convert {
		t.Fatal("expected convert from file")
	}
	if cfg.Search.MaxAttempts != config.Default().Search.MaxAttempts {
		t.Fatalf("expected untouched defaults to survive, got %d", cfg.Search.MaxAttempts)
	}
}

func TestEnvOverridesConfigFilePaths(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "songfetch.toml")
	contents := "[paths]\ntitles_file = \"/from/file/titles.txt\"\n"
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	envTitles := filepath.Join(tempDir, "env-titles.txt")
	envDownloads := filepath.Join(tempDir, "env-music")
	t.Setenv("SONGFETCH_TITLES_FILE", envTitles)
	t.Setenv("SONGFETCH_DOWNLOAD_DIR", envDownloads)

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.TitlesFile != envTitles {
		t.Fatalf("expected env titles file, got %q", cfg.Paths.TitlesFile)
	}
	if cfg.Paths.DownloadDir != envDownloads {
		t.Fatalf("expected env download dir, got %q", cfg.Paths.DownloadDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"blank separator", func(c *config.Config) { c.Titles.Separator = "   " }, "titles.separator"},
		{"dash separator", func(c *config.Config) { c.Titles.Separator = "-> " }, "disabled marker"},
		{"search backend", func(c *config.Config) { c.Search.Backend = "bing" }, "search.backend"},
		{"candidates", func(c *config.Config) { c.Search.Candidates = 0 }, "search.candidates"},
		{"download attempts", func(c *config.Config) { c.Download.MaxAttempts = 0 }, "download.max_attempts"},
		{"same ext", func(c *config.Config) { c.Download.TargetExt = "mp4" }, "must differ"},
		{"naming", func(c *config.Config) { c.Download.Naming = "random" }, "download.naming"},
		{"verbosity", func(c *config.Config) { c.Logging.Verbosity = 3 }, "logging.verbosity"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Finalize()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Titles.Separator != " -> " {
		t.Fatalf("unexpected sample separator %q", cfg.Titles.Separator)
	}
}

func TestFFprobeBinaryFollowsFFmpegPath(t *testing.T) {
	cfg := config.Default()
	if got := cfg.FFprobeBinary(); got != "ffprobe" {
		t.Fatalf("expected PATH lookup, got %q", got)
	}
	cfg.Download.FFmpegBinary = "/opt/ffmpeg/bin/ffmpeg"
	if got := cfg.FFprobeBinary(); got != "/opt/ffmpeg/bin/ffprobe" {
		t.Fatalf("expected sibling ffprobe, got %q", got)
	}
}
