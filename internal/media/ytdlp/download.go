package ytdlp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Download fetches the best audio stream of link into
// <dir>/<filename>.<SourceExt> and returns that path.
func (c *Client) Download(ctx context.Context, link, dir, filename string) (string, error) {
	if strings.TrimSpace(link) == "" {
		return "", fmt.Errorf("ytdlp: link is required")
	}
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf("ytdlp: dir is required")
	}
	ext := strings.TrimPrefix(strings.TrimSpace(c.SourceExt), ".")
	if ext == "" {
		ext = "mp4"
	}
	target := filepath.Join(dir, filename+"."+ext)

	args := []string{
		"--no-playlist",
		"--no-progress",
		"--no-colors",
		"--force-overwrites",
		"--format", "bestaudio[ext=m4a]/bestaudio",
		"-o", target,
		link,
	}
	stdout, stderr, err := c.exec(ctx, args...)
	if err != nil {
		return "", wrapExecError(c.PathOrDefault(), args, stdout, stderr, err)
	}
	if _, err := os.Stat(target); err != nil {
		return "", fmt.Errorf("ytdlp: expected output %s: %w", target, err)
	}
	return target, nil
}
