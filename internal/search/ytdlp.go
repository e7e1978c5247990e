package search

import (
	"context"

	"songfetch/internal/media/ytdlp"
)

// Ytdlp searches through yt-dlp's "ytsearchN:" pseudo-URL.
type Ytdlp struct {
	client *ytdlp.Client
}

// NewYtdlp wraps a yt-dlp client as a Searcher.
func NewYtdlp(client *ytdlp.Client) *Ytdlp {
	return &Ytdlp{client: client}
}

// Search lists up to max results. Entries without a URL fall back to a
// watch link built from the video id.
func (y *Ytdlp) Search(ctx context.Context, query string, max int) ([]Candidate, error) {
	entries, err := y.client.Search(ctx, query, max)
	if err != nil {
		return nil, err
	}
	candidates := make([]Candidate, 0, len(entries))
	for _, entry := range entries {
		link := entry.URL
		if link == "" && entry.ID != "" {
			link = "/watch?v=" + entry.ID
		}
		candidates = append(candidates, Candidate{Label: entry.Title, Link: link})
	}
	return candidates, nil
}
