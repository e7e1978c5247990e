package youtube

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	yt "github.com/kkdai/youtube/v2"

	"songfetch/internal/logging"
)

type fakeClient struct {
	video     *yt.Video
	body      string
	gotFormat *yt.Format
	err       error
}

func (f *fakeClient) GetVideoContext(_ context.Context, _ string) (*yt.Video, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.video, nil
}

func (f *fakeClient) GetStreamContext(_ context.Context, _ *yt.Video, format *yt.Format) (io.ReadCloser, int64, error) {
	f.gotFormat = format
	return io.NopCloser(strings.NewReader(f.body)), int64(len(f.body)), nil
}

func TestSelectAudioFormatPrefersMP4AudioOnly(t *testing.T) {
	formats := yt.FormatList{
		{ItagNo: 18, MimeType: `video/mp4; codecs="avc1, mp4a"`, AudioChannels: 2, Width: 640, Height: 360, Bitrate: 500000},
		{ItagNo: 251, MimeType: `audio/webm; codecs="opus"`, AudioChannels: 2, Bitrate: 160000},
		{ItagNo: 139, MimeType: `audio/mp4; codecs="mp4a.40.5"`, AudioChannels: 2, Bitrate: 48000},
		{ItagNo: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, AudioChannels: 2, Bitrate: 128000},
		{ItagNo: 137, MimeType: `video/mp4`, Width: 1920, Height: 1080},
	}
	got, err := SelectAudioFormat(formats)
	if err != nil {
		t.Fatalf("SelectAudioFormat: %v", err)
	}
	if got.ItagNo != 140 {
		t.Fatalf("expected itag 140, got %d", got.ItagNo)
	}
}

func TestSelectAudioFormatFallsBackToMuxed(t *testing.T) {
	formats := yt.FormatList{
		{ItagNo: 137, MimeType: `video/mp4`, Width: 1920, Height: 1080},
		{ItagNo: 18, MimeType: `video/mp4`, AudioChannels: 2, Width: 640, Height: 360},
	}
	got, err := SelectAudioFormat(formats)
	if err != nil {
		t.Fatalf("SelectAudioFormat: %v", err)
	}
	if got.ItagNo != 18 {
		t.Fatalf("expected muxed fallback, got %d", got.ItagNo)
	}
}

func TestSelectAudioFormatNone(t *testing.T) {
	_, err := SelectAudioFormat(yt.FormatList{{ItagNo: 137, Width: 1, Height: 1}})
	if !errors.Is(err, ErrNoAudioFormat) {
		t.Fatalf("expected ErrNoAudioFormat, got %v", err)
	}
}

func TestDownloadWritesStream(t *testing.T) {
	dir := t.TempDir()
	client := &fakeClient{
		video: &yt.Video{ID: "abc", Formats: yt.FormatList{
			{ItagNo: 140, MimeType: "audio/mp4", AudioChannels: 2, Bitrate: 128000},
		}},
		body: "audio-bytes",
	}
	d := &Downloader{client: client, logger: logging.NewNop()}

	path, err := d.Download(context.Background(), "https://www.youtube.com/watch?v=abc", dir, "Song_A")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if path != filepath.Join(dir, "Song_A.mp4") {
		t.Fatalf("unexpected path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "audio-bytes" {
		t.Fatalf("unexpected file contents %q (%v)", data, err)
	}
	if client.gotFormat == nil || client.gotFormat.ItagNo != 140 {
		t.Fatalf("unexpected stream format %+v", client.gotFormat)
	}
}

func TestDownloadMetadataError(t *testing.T) {
	d := &Downloader{client: &fakeClient{err: yt.ErrVideoPrivate}, logger: logging.NewNop()}
	_, err := d.Download(context.Background(), "https://www.youtube.com/watch?v=abc", t.TempDir(), "x")
	if !errors.Is(err, yt.ErrVideoPrivate) {
		t.Fatalf("expected wrapped client error, got %v", err)
	}
}
