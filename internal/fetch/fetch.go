package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dustin/go-humanize"

	"songfetch/internal/fileutil"
	"songfetch/internal/logging"
)

// Downloader writes the media behind link to <dir>/<filename>.<source ext>
// and returns the written path.
type Downloader interface {
	Download(ctx context.Context, link, dir, filename string) (string, error)
}

// Transcoder converts src into dst. The fetcher only checks whether dst
// exists afterwards.
type Transcoder interface {
	Convert(ctx context.Context, src, dst string) error
}

// DurationProber reports the playing time of a media file.
type DurationProber interface {
	Duration(ctx context.Context, path string) (time.Duration, error)
}

// Options configures a Fetcher.
type Options struct {
	SourceExt  string
	TargetExt  string
	RetryDelay time.Duration
	// Prober is used for durations of files that were not transcoded to
	// MP3. Optional.
	Prober DurationProber
}

// Request describes one fetch.
type Request struct {
	Link               string
	Filename           string
	Dir                string
	MaxAttempts        int
	Convert            bool
	NormalizeExtension bool
}

// Result reports what happened during a fetch.
type Result struct {
	Success          bool
	Attempts         int
	Converted        bool
	ConversionFailed bool
	Renamed          bool
	Path             string
	Size             int64
	Duration         time.Duration
	// Err is the last download error when Success is false.
	Err error
}

// Fetcher downloads and post-processes media files.
type Fetcher struct {
	downloader Downloader
	transcoder Transcoder
	opts       Options
	logger     *slog.Logger
}

// New builds a Fetcher. transcoder may be nil when conversion is never requested.
func New(downloader Downloader, transcoder Transcoder, opts Options, logger *slog.Logger) *Fetcher {
	opts.SourceExt = strings.TrimPrefix(opts.SourceExt, ".")
	opts.TargetExt = strings.TrimPrefix(opts.TargetExt, ".")
	if opts.SourceExt == "" {
		opts.SourceExt = "mp4"
	}
	if opts.TargetExt == "" {
		opts.TargetExt = "mp3"
	}
	return &Fetcher{
		downloader: downloader,
		transcoder: transcoder,
		opts:       opts,
		logger:     logging.NewComponentLogger(logger, "fetch"),
	}
}

// SourcePath returns where a download for filename lands in dir.
func (f *Fetcher) SourcePath(dir, filename string) string {
	return filepath.Join(dir, filename+"."+f.opts.SourceExt)
}

// TargetPath returns the converted or renamed location for filename in dir.
func (f *Fetcher) TargetPath(dir, filename string) string {
	return filepath.Join(dir, filename+"."+f.opts.TargetExt)
}

// Fetch downloads req.Link and applies the requested post-processing.
func (f *Fetcher) Fetch(ctx context.Context, req Request) Result {
	logger := logging.WithContext(ctx, f.logger).With(logging.String("file", req.Filename))
	result := Result{}

	maxAttempts := req.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var downloaded string
	operation := func() error {
		result.Attempts++
		path, err := f.downloader.Download(ctx, req.Link, req.Dir, req.Filename)
		if err != nil {
			logger.Debug("download attempt failed",
				logging.Int(logging.FieldAttempt, result.Attempts),
				logging.Int("max_attempts", maxAttempts),
				logging.Error(err))
			return err
		}
		downloaded = path
		return nil
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(f.opts.RetryDelay), uint64(maxAttempts-1)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		result.Err = err
		return result
	}
	result.Success = true

	source := downloaded
	if source == "" {
		source = f.SourcePath(req.Dir, req.Filename)
	}
	target := f.TargetPath(req.Dir, req.Filename)
	result.Path = source

	if req.Convert {
		if f.convert(ctx, logger, source, target) {
			result.Converted = true
			result.Path = target
		} else {
			result.ConversionFailed = true
		}
	}

	if !result.Converted && req.NormalizeExtension && source != target {
		if err := replaceFile(source, target); err != nil {
			logging.WarnWithContext(logger, "extension rename failed", "rename_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "file kept with its download extension"))
		} else {
			result.Renamed = true
			result.Path = target
		}
	}

	f.describe(ctx, logger, &result)
	return result
}

// convert runs the transcoder and reports whether the target exists
// afterwards. The source is deleted only in that case.
func (f *Fetcher) convert(ctx context.Context, logger *slog.Logger, source, target string) bool {
	if f.transcoder == nil {
		logging.WarnWithContext(logger, "conversion requested without a transcoder", "conversion_failed")
		return false
	}
	if err := f.transcoder.Convert(ctx, source, target); err != nil {
		logger.Debug("transcoder reported an error", logging.Error(err))
	}
	if _, err := os.Stat(target); err != nil {
		logging.WarnWithContext(logger, "conversion failed", "conversion_failed",
			logging.String("target", target),
			logging.String(logging.FieldImpact, "download kept; conversion skipped"))
		return false
	}
	if err := os.Remove(source); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Debug("remove source after conversion", logging.Error(err))
	}
	return true
}

// replaceFile renames source to target, deleting an existing target first.
func replaceFile(source, target string) error {
	if _, err := os.Stat(target); err == nil {
		if err := os.Remove(target); err != nil {
			return fmt.Errorf("remove existing %s: %w", filepath.Base(target), err)
		}
	}
	if err := fileutil.MoveFile(source, target); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(source), err)
	}
	return nil
}

func (f *Fetcher) describe(ctx context.Context, logger *slog.Logger, result *Result) {
	info, err := os.Stat(result.Path)
	if err != nil {
		logger.Debug("stat fetched file", logging.Error(err))
		return
	}
	result.Size = info.Size()

	duration, err := f.duration(ctx, result.Path, result.Converted)
	if err != nil {
		logger.Debug("duration unavailable", logging.Error(err))
	}
	result.Duration = duration

	attrs := []logging.Attr{
		logging.String("path", result.Path),
		logging.String("size", humanize.Bytes(uint64(result.Size))),
		logging.Int(logging.FieldAttempt, result.Attempts),
	}
	if duration > 0 {
		attrs = append(attrs, logging.Duration("duration", duration.Round(time.Second)))
	}
	logger.Debug("fetched file ready", logging.Args(attrs...)...)
}

// duration decodes MP3 frames only for transcoded output. A renamed
// download keeps its original container whatever its extension says.
func (f *Fetcher) duration(ctx context.Context, path string, transcoded bool) (time.Duration, error) {
	if transcoded && strings.EqualFold(filepath.Ext(path), ".mp3") {
		return MP3Duration(path)
	}
	if f.opts.Prober != nil {
		return f.opts.Prober.Duration(ctx, path)
	}
	return 0, nil
}
