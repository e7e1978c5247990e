package search

import "context"

// Candidate is one search result.
type Candidate struct {
	// Label is the result text as displayed by the site, untrimmed.
	Label string
	// Link is the result location, absolute or site-relative.
	Link string
}

// Searcher queries a search capability. max is the number of candidates the
// caller intends to use; backends may return more. An empty result with a
// nil error means nothing was found.
type Searcher interface {
	Search(ctx context.Context, query string, max int) ([]Candidate, error)
}

// SearcherFunc adapts a function into a Searcher.
type SearcherFunc func(ctx context.Context, query string, max int) ([]Candidate, error)

// Search calls f.
func (f SearcherFunc) Search(ctx context.Context, query string, max int) ([]Candidate, error) {
	return f(ctx, query, max)
}
