package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"songfetch/internal/logging"
)

// Transcoder converts media files with ffmpeg.
type Transcoder struct {
	Binary string

	logger *slog.Logger
}

// NewTranscoder returns a transcoder for the ffmpeg binary (PATH lookup when empty).
func NewTranscoder(binary string, logger *slog.Logger) *Transcoder {
	return &Transcoder{Binary: binary, logger: logging.NewComponentLogger(logger, "ffmpeg")}
}

func (t *Transcoder) binary() string {
	if bin := strings.TrimSpace(t.Binary); bin != "" {
		return bin
	}
	return "ffmpeg"
}

// Args returns the ffmpeg arguments for converting src into dst. MP3 targets
// are encoded with LAME VBR quality 2; other targets let ffmpeg pick the
// codec from the extension.
func Args(src, dst string) []string {
	args := []string{"-hide_banner", "-nostdin", "-loglevel", "error", "-y", "-i", src, "-vn"}
	if strings.EqualFold(filepath.Ext(dst), ".mp3") {
		args = append(args, "-codec:a", "libmp3lame", "-q:a", "2")
	}
	return append(args, dst)
}

// Convert transcodes src into dst, overwriting dst.
func (t *Transcoder) Convert(ctx context.Context, src, dst string) error {
	if strings.TrimSpace(src) == "" || strings.TrimSpace(dst) == "" {
		return errors.New("ffmpeg convert: source and destination are required")
	}
	args := Args(src, dst)
	if t.logger != nil {
		t.logger.Debug("executing ffmpeg", logging.String("cmd", t.binary()), logging.Any("args", args))
	}
	cmd := exec.CommandContext(ctx, t.binary(), args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg convert: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
