package resolve

import (
	"context"

	"songfetch/internal/search"
)

// Chooser picks one of the offered candidates for title and returns its
// index. Options are already filtered, trimmed and absolute.
type Chooser interface {
	Choose(ctx context.Context, title string, options []search.Candidate) (int, error)
}

// ChooserFunc adapts a function into a Chooser.
type ChooserFunc func(ctx context.Context, title string, options []search.Candidate) (int, error)

// Choose calls f.
func (f ChooserFunc) Choose(ctx context.Context, title string, options []search.Candidate) (int, error) {
	return f(ctx, title, options)
}

// First always picks the top candidate.
var First Chooser = Fixed(0)

// Fixed returns a chooser that always picks index i.
func Fixed(i int) Chooser {
	return ChooserFunc(func(context.Context, string, []search.Candidate) (int, error) {
		return i, nil
	})
}
