package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	yt "github.com/kkdai/youtube/v2"

	"songfetch/internal/logging"
)

// ErrNoAudioFormat reports a video without any audio-bearing format.
var ErrNoAudioFormat = errors.New("no audio format available")

type videoClient interface {
	GetVideoContext(ctx context.Context, url string) (*yt.Video, error)
	GetStreamContext(ctx context.Context, video *yt.Video, format *yt.Format) (io.ReadCloser, int64, error)
}

// Downloader fetches audio with the kkdai client.
type Downloader struct {
	// Ext is the extension given to written files. Defaults to "mp4".
	Ext string

	client videoClient
	logger *slog.Logger
}

// NewDownloader builds a downloader whose HTTP requests time out after timeout.
func NewDownloader(ext string, timeout time.Duration, logger *slog.Logger) *Downloader {
	return &Downloader{
		Ext:    ext,
		client: &yt.Client{HTTPClient: &http.Client{Timeout: timeout}},
		logger: logging.NewComponentLogger(logger, "youtube"),
	}
}

// Download writes the selected audio stream of link and returns the path.
func (d *Downloader) Download(ctx context.Context, link, dir, filename string) (string, error) {
	video, err := d.client.GetVideoContext(ctx, link)
	if err != nil {
		return "", fmt.Errorf("fetch video metadata: %w", err)
	}
	format, err := SelectAudioFormat(video.Formats)
	if err != nil {
		return "", fmt.Errorf("%s: %w", video.ID, err)
	}

	ext := strings.TrimPrefix(strings.TrimSpace(d.Ext), ".")
	if ext == "" {
		ext = "mp4"
	}
	target := filepath.Join(dir, filename+"."+ext)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}

	stream, size, err := d.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return "", fmt.Errorf("start stream: %w", err)
	}
	defer stream.Close()

	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("open output file: %w", err)
	}
	written, copyErr := io.Copy(file, stream)
	closeErr := file.Close()
	if copyErr != nil {
		return "", fmt.Errorf("download stream: %w", copyErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("close output file: %w", closeErr)
	}
	if size > 0 && written != size {
		return "", fmt.Errorf("download stream: short write %d of %d bytes", written, size)
	}

	d.logger.Debug("stream written",
		logging.String("video_id", video.ID),
		logging.String("mime_type", format.MimeType),
		logging.Int("itag", format.ItagNo),
		logging.Int64("bytes", written))
	return target, nil
}

// SelectAudioFormat picks an audio-only format, preferring MP4 audio and then
// the highest bitrate. Formats that mix audio and video are used only when no
// audio-only format exists.
func SelectAudioFormat(formats yt.FormatList) (*yt.Format, error) {
	withAudio := formats.WithAudioChannels()
	if len(withAudio) == 0 {
		return nil, ErrNoAudioFormat
	}

	var audioOnly []*yt.Format
	for i := range withAudio {
		f := &withAudio[i]
		if f.Width == 0 && f.Height == 0 {
			audioOnly = append(audioOnly, f)
		}
	}
	if len(audioOnly) == 0 {
		return &withAudio[0], nil
	}

	sort.SliceStable(audioOnly, func(i, j int) bool {
		mi, mj := isMP4Audio(audioOnly[i]), isMP4Audio(audioOnly[j])
		if mi != mj {
			return mi
		}
		return audioOnly[i].Bitrate > audioOnly[j].Bitrate
	})
	return audioOnly[0], nil
}

func isMP4Audio(f *yt.Format) bool {
	return strings.HasPrefix(f.MimeType, "audio/mp4")
}
