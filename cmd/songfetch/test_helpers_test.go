package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"songfetch/internal/config"
	"songfetch/internal/fetch"
	"songfetch/internal/pipeline"
	"songfetch/internal/resolve"
	"songfetch/internal/testsupport"
)

type cliTestEnv struct {
	baseDir     string
	configPath  string
	titlesFile  string
	downloadDir string
	ytdlpPath   string
}

// ytdlpStub answers searches with two entries and writes a small file for
// downloads to the path given after -o.
const ytdlpStub = `prev=""
out=""
query=""
for arg in "$@"; do
  if [ "$prev" = "-o" ]; then out="$arg"; fi
  case "$arg" in
    --version) echo "2025.06.30"; exit 0 ;;
    ytsearch*) query="$arg" ;;
  esac
  prev="$arg"
done
if [ -n "$query" ]; then
  echo '{"entries":[{"id":"aaa","title":"Song A (Official)","url":"https://www.youtube.com/watch?v=aaa"},{"id":"bbb","title":"Song A (Live)","url":"https://www.youtube.com/watch?v=bbb"}]}'
  exit 0
fi
printf 'audio' > "$out"
`

func setupCLITestEnv(t *testing.T, titleLines ...string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("SONGFETCH_TITLES_FILE", "")
	t.Setenv("SONGFETCH_DOWNLOAD_DIR", "")

	env := &cliTestEnv{
		baseDir:     base,
		configPath:  filepath.Join(base, "songfetch.toml"),
		titlesFile:  filepath.Join(base, "titles.txt"),
		downloadDir: filepath.Join(base, "music"),
	}
	env.ytdlpPath = testsupport.WriteStub(t, filepath.Join(base, "bin"), "yt-dlp", ytdlpStub)

	content := fmt.Sprintf(`[paths]
titles_file = %q
download_dir = %q

[titles]
backup = false

[search]
backend = "ytdlp"
retry_delay_ms = 0

[download]
backend = "ytdlp"
retry_delay_ms = 0
ytdlp_binary = %q

[logging]
verbosity = 0
`, env.titlesFile, env.downloadDir, env.ytdlpPath)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if len(titleLines) > 0 {
		testsupport.WriteTitles(t, env.titlesFile, titleLines...)
	}
	return env
}

type cliOption func(*commandContext, *bytes.Buffer)

func withStdin(input string) cliOption {
	return func(_ *commandContext, in *bytes.Buffer) {
		in.WriteString(input)
	}
}

func withBackends(resolver pipeline.Resolver, fetcher pipeline.Fetcher) cliOption {
	return func(ctx *commandContext, _ *bytes.Buffer) {
		ctx.backends = func(*config.Config, io.Reader, io.Writer, *slog.Logger) (pipeline.Resolver, pipeline.Fetcher, error) {
			return resolver, fetcher, nil
		}
	}
}

func runCLI(t *testing.T, env *cliTestEnv, args []string, opts ...cliOption) (string, string, error) {
	t.Helper()
	ctx := newCommandContext()
	var stdin, stdout, stderr bytes.Buffer
	for _, opt := range opts {
		opt(ctx, &stdin)
	}
	cmd := newRootCommandWithContext(ctx)
	cmd.SetIn(&stdin)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

type stubResolver struct {
	link string
}

func (s stubResolver) Resolve(_ context.Context, title string, _ int) (resolve.Selection, error) {
	if s.link == "" {
		return resolve.Selection{}, resolve.ErrNoResults
	}
	return resolve.Selection{Link: s.link, Label: title, Attempts: 1}, nil
}

type stubFetcher struct {
	requests *[]fetch.Request
}

func (s stubFetcher) Fetch(_ context.Context, req fetch.Request) fetch.Result {
	if s.requests != nil {
		*s.requests = append(*s.requests, req)
	}
	return fetch.Result{Success: true, Attempts: 1, Path: filepath.Join(req.Dir, req.Filename+".mp3"), Size: 2048}
}
