// Package resolve maps a song title to a single media link.
//
// A Resolver queries a search.Searcher, discards degenerate and duplicate
// candidates, and retries empty result sets a bounded number of times with a
// constant delay. With one candidate requested the first result wins and no
// chooser is consulted; otherwise the injected Chooser picks among the top
// results. Relative links are made absolute against the site base URL.
//
// Failures carry sentinel errors (ErrNoResults, ErrSearchFailed,
// ErrInvalidChoice) and Classify maps any result onto an Outcome.
package resolve
