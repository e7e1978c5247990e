package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Entry is one item of a flat search listing.
type Entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type listing struct {
	Entries []Entry `json:"entries"`
}

// Search lists up to max results for query without resolving formats.
func (c *Client) Search(ctx context.Context, query string, max int) ([]Entry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("ytdlp: query is required")
	}
	if max <= 0 {
		max = 1
	}
	args := []string{
		"--flat-playlist",
		"--dump-single-json",
		"--no-warnings",
		fmt.Sprintf("ytsearch%d:%s", max, query),
	}
	stdout, stderr, err := c.exec(ctx, args...)
	if err != nil {
		return nil, wrapExecError(c.PathOrDefault(), args, stdout, stderr, err)
	}

	var out listing
	if err := json.Unmarshal(bytes.TrimSpace(stdout), &out); err != nil {
		return nil, fmt.Errorf("ytdlp: parse search json: %w", err)
	}
	return out.Entries, nil
}
