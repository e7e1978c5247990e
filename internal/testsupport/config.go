package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"songfetch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a per-test temp directory: the title
// file, download directory and log directory all live below it. Logging is
// silenced unless an option changes it.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.TitlesFile = filepath.Join(base, "titles.txt")
	cfgVal.Paths.DownloadDir = filepath.Join(base, "music")
	cfgVal.Paths.LogDir = ""
	cfgVal.Logging.Verbosity = 0
	cfgVal.Search.RetryDelayMS = 0
	cfgVal.Download.RetryDelayMS = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Finalize(); err != nil {
		t.Fatalf("finalize test config: %v", err)
	}
	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure test directories: %v", err)
	}
	return builder.cfg
}

// WithTitles seeds the title file with lines.
func WithTitles(lines ...string) ConfigOption {
	return func(b *configBuilder) {
		WriteTitles(b.t, b.cfg.Paths.TitlesFile, lines...)
	}
}

// WithCandidates sets how many search results are offered to the chooser.
func WithCandidates(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Search.Candidates = n
	}
}

// WithConvert enables transcoding after download.
func WithConvert() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Download.Convert = true
	}
}

// WithReResolve forces resolution of records that already carry a link.
func WithReResolve() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Download.ReResolve = true
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, yt-dlp and ffmpeg are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"yt-dlp", "ffmpeg"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		for _, name := range names {
			WriteStub(b.t, binDir, name, "exit 0\n")
		}
		PrependPath(b.t, binDir)
	}
}

// WriteStub writes an executable shell script named name into dir. body is
// appended after the shebang line.
func WriteStub(t testing.TB, dir, name, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}

// PrependPath puts dir at the front of PATH for the duration of the test.
func PrependPath(t testing.TB, dir string) {
	t.Helper()
	oldPath := os.Getenv("PATH")
	if err := os.Setenv("PATH", dir+string(os.PathListSeparator)+oldPath); err != nil {
		t.Fatalf("set PATH: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Setenv("PATH", oldPath)
	})
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.TitlesFile)
}
