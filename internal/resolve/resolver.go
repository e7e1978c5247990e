package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"songfetch/internal/logging"
	"songfetch/internal/search"
)

// Options configures a Resolver.
type Options struct {
	// BaseURL resolves site-relative links such as "/watch?v=...".
	BaseURL string
	// MaxAttempts bounds how many searches are made for one title.
	MaxAttempts int
	// RetryDelay is the pause between attempts that found nothing.
	RetryDelay time.Duration
}

// Selection is the resolved link for a title.
type Selection struct {
	Link     string
	Label    string
	Attempts int
}

// Resolver turns titles into links.
type Resolver struct {
	searcher search.Searcher
	chooser  Chooser
	opts     Options
	logger   *slog.Logger
}

// New builds a Resolver. A nil chooser behaves like First.
func New(searcher search.Searcher, chooser Chooser, opts Options, logger *slog.Logger) *Resolver {
	if chooser == nil {
		chooser = First
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	return &Resolver{
		searcher: searcher,
		chooser:  chooser,
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "resolve"),
	}
}

// Resolve searches for title and selects one link among the first n usable
// candidates. With n <= 1 the first candidate is returned without consulting
// the chooser.
func (r *Resolver) Resolve(ctx context.Context, title string, n int) (Selection, error) {
	query := strings.TrimSpace(title)
	logger := logging.WithContext(ctx, r.logger)
	if n < 1 {
		n = 1
	}

	var (
		attempts   int
		candidates []search.Candidate
	)
	operation := func() error {
		attempts++
		found, err := r.attempt(ctx, query, n)
		switch Classify(err) {
		case OutcomeResolved:
			candidates = found
			return nil
		case OutcomeRetryable:
			logger.Debug("no usable search results",
				logging.String(logging.FieldTitle, query),
				logging.Int(logging.FieldAttempt, attempts),
				logging.Int("max_attempts", r.opts.MaxAttempts))
			return err
		default:
			return backoff.Permanent(err)
		}
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(r.opts.RetryDelay), uint64(r.opts.MaxAttempts-1)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		if Classify(err) == OutcomeRetryable {
			return Selection{Attempts: attempts}, fmt.Errorf("%w after %d attempts", ErrNoResults, attempts)
		}
		return Selection{Attempts: attempts}, err
	}

	choice := 0
	if n > 1 {
		options := candidates
		if len(options) > n {
			options = options[:n]
		}
		idx, err := r.chooser.Choose(ctx, query, options)
		if err != nil {
			return Selection{Attempts: attempts}, fmt.Errorf("choose link: %w", err)
		}
		if idx < 0 || idx >= len(options) {
			return Selection{Attempts: attempts}, fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidChoice, idx, len(options))
		}
		choice = idx
	}

	selected := candidates[choice]
	return Selection{Link: selected.Link, Label: selected.Label, Attempts: attempts}, nil
}

func (r *Resolver) attempt(ctx context.Context, query string, n int) ([]search.Candidate, error) {
	raw, err := r.searcher.Search(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	filtered := Filter(raw, r.opts.BaseURL)
	if len(filtered) == 0 {
		return nil, errEmptyAttempt
	}
	return filtered, nil
}

// Filter drops candidates with an empty label, a label starting with a
// newline or an empty link, makes links absolute against baseURL and keeps
// only the first occurrence of each link. Labels are trimmed.
func Filter(candidates []search.Candidate, baseURL string) []search.Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]search.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Label == "" || strings.HasPrefix(c.Label, "\n") {
			continue
		}
		label := strings.TrimSpace(c.Label)
		link := strings.TrimSpace(c.Link)
		if label == "" || link == "" {
			continue
		}
		link = Absolute(baseURL, link)
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}
		out = append(out, search.Candidate{Label: label, Link: link})
	}
	return out
}

// Absolute resolves link against baseURL. Links that are already absolute,
// or that cannot be parsed, are returned unchanged.
func Absolute(baseURL, link string) string {
	if baseURL == "" {
		return link
	}
	ref, err := url.Parse(link)
	if err != nil || ref.IsAbs() {
		return link
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return link
	}
	return base.ResolveReference(ref).String()
}
