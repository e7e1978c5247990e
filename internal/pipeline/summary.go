package pipeline

import "time"

// Outcome labels used in Item.Outcome.
const (
	OutcomeKept             = "kept"
	OutcomeResolved         = "resolved"
	OutcomeResolveFailed    = "resolve_failed"
	OutcomeDownloaded       = "downloaded"
	OutcomeDownloadFailed   = "download_failed"
	OutcomeConversionFailed = "conversion_failed"
)

// Item is the per-title result of one pass.
type Item struct {
	Line    int    `json:"line"`
	Title   string `json:"title"`
	Phase   Phase  `json:"phase"`
	Outcome string `json:"outcome"`
	Link    string `json:"link,omitempty"`
	Path    string `json:"path,omitempty"`
	Size    int64  `json:"size,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Summary aggregates one run.
type Summary struct {
	RunID    string    `json:"run_id"`
	Phase    Phase     `json:"phase"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`

	Total            int    `json:"total"`
	Disabled         int    `json:"disabled"`
	Blank            int    `json:"blank"`
	Kept             int    `json:"kept"`
	Resolved         int    `json:"resolved"`
	ResolveFailed    int    `json:"resolve_failed"`
	Downloaded       int    `json:"downloaded"`
	DownloadFailed   int    `json:"download_failed"`
	Converted        int    `json:"converted"`
	ConversionFailed int    `json:"conversion_failed"`
	Items            []Item `json:"items"`
	Backup           string `json:"backup,omitempty"`
}

// Elapsed returns the run duration.
func (s Summary) Elapsed() time.Duration {
	if s.Finished.IsZero() {
		return 0
	}
	return s.Finished.Sub(s.Started)
}

// Failures returns the number of titles that failed in either pass.
func (s Summary) Failures() int {
	return s.ResolveFailed + s.DownloadFailed
}
