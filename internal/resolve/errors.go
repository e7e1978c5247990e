package resolve

import "errors"

var (
	// ErrNoResults reports that every attempt returned no usable candidates.
	ErrNoResults = errors.New("no search results")
	// ErrSearchFailed reports that the search capability returned an error.
	ErrSearchFailed = errors.New("search failed")
	// ErrInvalidChoice reports a chooser index outside the offered options.
	ErrInvalidChoice = errors.New("invalid choice")

	errEmptyAttempt = errors.New("search returned no usable candidates")
)

// Outcome classifies a resolution result.
type Outcome int

const (
	// OutcomeResolved means a link was selected.
	OutcomeResolved Outcome = iota
	// OutcomeRetryable means the attempt found nothing and may be repeated.
	OutcomeRetryable
	// OutcomePermanent means the title cannot be resolved in this run.
	OutcomePermanent
)

func (o Outcome) String() string {
	switch o {
	case OutcomeResolved:
		return "resolved"
	case OutcomeRetryable:
		return "retryable"
	case OutcomePermanent:
		return "permanent"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by a single attempt or by Resolve onto an
// Outcome. A nil error is OutcomeResolved.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeResolved
	case errors.Is(err, errEmptyAttempt):
		return OutcomeRetryable
	default:
		return OutcomePermanent
	}
}
