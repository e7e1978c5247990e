package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"songfetch/internal/config"
	"songfetch/internal/fetch"
	"songfetch/internal/media/ffmpeg"
	"songfetch/internal/media/youtube"
	"songfetch/internal/media/ytdlp"
	"songfetch/internal/pipeline"
	"songfetch/internal/resolve"
	"songfetch/internal/search"
)

// backendFactory builds the resolver and fetcher for a run. in and out are
// the terminal streams used by the interactive chooser.
type backendFactory func(cfg *config.Config, in io.Reader, out io.Writer, logger *slog.Logger) (pipeline.Resolver, pipeline.Fetcher, error)

func defaultBackends(cfg *config.Config, in io.Reader, out io.Writer, logger *slog.Logger) (pipeline.Resolver, pipeline.Fetcher, error) {
	searcher, err := buildSearcher(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	downloader, err := buildDownloader(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	resolver := resolve.New(searcher, newTerminalChooser(in, out), resolve.Options{
		BaseURL:     cfg.Search.BaseURL,
		MaxAttempts: cfg.Search.MaxAttempts,
		RetryDelay:  time.Duration(cfg.Search.RetryDelayMS) * time.Millisecond,
	}, logger)

	fetcher := fetch.New(downloader, ffmpeg.NewTranscoder(cfg.FFmpegBinary(), logger), fetch.Options{
		SourceExt:  cfg.Download.SourceExt,
		TargetExt:  cfg.Download.TargetExt,
		RetryDelay: time.Duration(cfg.Download.RetryDelayMS) * time.Millisecond,
		Prober:     ffmpeg.Prober{Binary: cfg.FFprobeBinary()},
	}, logger)

	return resolver, fetcher, nil
}

func buildSearcher(cfg *config.Config, logger *slog.Logger) (search.Searcher, error) {
	switch cfg.Search.Backend {
	case config.SearchBackendHTML:
		timeout := time.Duration(cfg.Search.RequestTimeout) * time.Second
		return search.NewHTML(cfg.Search.BaseURL, cfg.Search.UserAgent, timeout), nil
	case config.SearchBackendYtdlp:
		return search.NewYtdlp(ytdlp.New(cfg.YtdlpBinary(), logger)), nil
	default:
		return nil, fmt.Errorf("unsupported search backend %q", cfg.Search.Backend)
	}
}

func buildDownloader(cfg *config.Config, logger *slog.Logger) (fetch.Downloader, error) {
	switch cfg.Download.Backend {
	case config.DownloadBackendYouTube:
		timeout := time.Duration(cfg.Search.RequestTimeout) * time.Second
		return youtube.NewDownloader(cfg.Download.SourceExt, timeout, logger), nil
	case config.DownloadBackendYtdlp:
		client := ytdlp.New(cfg.YtdlpBinary(), logger)
		client.SourceExt = cfg.Download.SourceExt
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported download backend %q", cfg.Download.Backend)
	}
}
