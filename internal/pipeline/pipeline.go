package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"songfetch/internal/config"
	"songfetch/internal/fetch"
	"songfetch/internal/fileutil"
	"songfetch/internal/logging"
	"songfetch/internal/resolve"
	"songfetch/internal/textutil"
	"songfetch/internal/titles"
)

// Resolver maps a title to a link.
type Resolver interface {
	Resolve(ctx context.Context, title string, n int) (resolve.Selection, error)
}

// Fetcher downloads one link.
type Fetcher interface {
	Fetch(ctx context.Context, req fetch.Request) fetch.Result
}

// Job is one record scheduled for download.
type Job struct {
	Index    int
	Title    string
	Link     string
	Label    string
	Filename string
}

// Runner executes pipeline runs against one title file.
type Runner struct {
	cfg      *config.Config
	resolver Resolver
	fetcher  Fetcher
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// New builds a Runner. resolver may be nil for fetch-only runs and fetcher
// may be nil for resolve-only runs.
func New(cfg *config.Config, resolver Resolver, fetcher Fetcher, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:      cfg,
		resolver: resolver,
		fetcher:  fetcher,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Run performs the passes selected by phase. The returned error is non-nil
// only for title file failures and cancellation; per-title failures are
// reported in the Summary.
func (r *Runner) Run(ctx context.Context, phase Phase) (Summary, error) {
	if phase == "" {
		phase = PhaseAll
	}
	if phase.resolves() && r.resolver == nil {
		return Summary{}, fmt.Errorf("pipeline: phase %s needs a resolver", phase)
	}
	if phase.fetches() && r.fetcher == nil {
		return Summary{}, fmt.Errorf("pipeline: phase %s needs a fetcher", phase)
	}

	summary := Summary{RunID: r.newID(), Phase: phase, Started: r.now()}
	ctx = logging.ContextWithRunID(ctx, summary.RunID)
	logger := logging.WithContext(ctx, r.logger)

	path := r.cfg.Paths.TitlesFile
	lock, err := titles.Lock(path)
	if err != nil {
		return summary, err
	}
	logger.Debug("title file locked", logging.String("lock", lock.Path()))
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("release title lock", logging.Error(err))
		}
	}()

	lines, err := titles.Load(path)
	if err != nil {
		return summary, err
	}
	sep := r.cfg.Titles.Separator
	records := titles.ParseAll(lines, sep)
	summary.Total = len(records)
	for _, rec := range records {
		switch StateOf(rec) {
		case StateDisabled:
			summary.Disabled++
		case StateBlank:
			summary.Blank++
		}
	}
	logger.Info("run started",
		logging.String(logging.FieldPhase, string(phase)),
		logging.String("titles_file", path),
		logging.Int("records", summary.Total),
		logging.Int("disabled", summary.Disabled))

	if r.cfg.Titles.Backup {
		backup, err := fileutil.Backup(path)
		if err != nil {
			return summary, err
		}
		summary.Backup = backup
	}

	labels := map[int]string{}
	if phase.resolves() {
		if err := r.resolvePass(ctx, logger, records, labels, &summary); err != nil {
			return summary, err
		}
		if err := r.checkpoint(logger, path, records, "resolve"); err != nil {
			return summary, err
		}
	}

	if phase.fetches() {
		if err := r.fetchPass(ctx, logger, records, labels, &summary); err != nil {
			return summary, err
		}
		if err := r.checkpoint(logger, path, records, "fetch"); err != nil {
			return summary, err
		}
	}

	summary.Finished = r.now()
	logger.Info("run finished",
		logging.String(logging.FieldPhase, string(phase)),
		logging.Int("resolved", summary.Resolved),
		logging.Int("resolve_failed", summary.ResolveFailed),
		logging.Int("downloaded", summary.Downloaded),
		logging.Int("download_failed", summary.DownloadFailed),
		logging.Duration("elapsed", summary.Elapsed().Round(time.Millisecond)))
	return summary, nil
}

func (r *Runner) resolvePass(ctx context.Context, logger *slog.Logger, records []titles.Record, labels map[int]string, summary *Summary) error {
	pending := 0
	for _, rec := range records {
		if StateOf(rec) == StateUnresolved || (StateOf(rec) == StateResolved && r.cfg.Download.ReResolve) {
			pending++
		}
	}

	n := 0
	for i := range records {
		rec := &records[i]
		state := StateOf(*rec)
		if state == StateDisabled || state == StateBlank {
			continue
		}
		title := rec.Query()
		if state == StateResolved && !r.cfg.Download.ReResolve {
			logger.Debug("link already exists", logging.String(logging.FieldTitle, title))
			summary.Kept++
			summary.Items = append(summary.Items, Item{Line: i + 1, Title: title, Phase: PhaseResolve, Outcome: OutcomeKept, Link: rec.URL()})
			continue
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		n++
		logger.Info("resolving title",
			logging.String(logging.FieldTitle, title),
			logging.String("progress", fmt.Sprintf("%d/%d", n, pending)))

		sel, err := r.resolver.Resolve(ctx, title, r.cfg.Search.Candidates)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			summary.ResolveFailed++
			impact := "title stays unresolved"
			if rec.HasLink() {
				rec.Link = ""
				impact = "previous link cleared; title stays unresolved"
			}
			logging.WarnWithContext(logger, "title not resolved", "resolve_failed",
				logging.String(logging.FieldTitle, title),
				logging.String("outcome", resolve.Classify(err).String()),
				logging.String(logging.FieldImpact, impact),
				logging.Error(err))
			summary.Items = append(summary.Items, Item{Line: i + 1, Title: title, Phase: PhaseResolve, Outcome: OutcomeResolveFailed, Detail: err.Error()})
			continue
		}

		rec.Link = sel.Link
		labels[i] = sel.Label
		summary.Resolved++
		logger.Info("title resolved",
			logging.String(logging.FieldTitle, title),
			logging.String("link", sel.Link),
			logging.String("label", sel.Label))
		logger.Debug("resolution attempts", logging.String(logging.FieldTitle, title), logging.Int("attempts", sel.Attempts))
		summary.Items = append(summary.Items, Item{Line: i + 1, Title: title, Phase: PhaseResolve, Outcome: OutcomeResolved, Link: sel.Link, Detail: sel.Label})
	}
	return nil
}

func (r *Runner) fetchPass(ctx context.Context, logger *slog.Logger, records []titles.Record, labels map[int]string, summary *Summary) error {
	jobs := r.jobs(records, labels)
	dl := r.cfg.Download
	for n, job := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Info("downloading",
			logging.String(logging.FieldTitle, job.Title),
			logging.String("file", job.Filename),
			logging.String("progress", fmt.Sprintf("%d/%d", n+1, len(jobs))))

		result := r.fetcher.Fetch(ctx, fetch.Request{
			Link:               job.Link,
			Filename:           job.Filename,
			Dir:                r.cfg.Paths.DownloadDir,
			MaxAttempts:        dl.MaxAttempts,
			Convert:            dl.Convert,
			NormalizeExtension: dl.NormalizeExtension,
		})
		if !result.Success {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			summary.DownloadFailed++
			detail := ""
			if result.Err != nil {
				detail = result.Err.Error()
			}
			logging.WarnWithContext(logger, "download failed", "download_failed",
				logging.String(logging.FieldTitle, job.Title),
				logging.Int("attempts", result.Attempts),
				logging.String("error", detail))
			summary.Items = append(summary.Items, Item{Line: job.Index + 1, Title: job.Title, Phase: PhaseFetch, Outcome: OutcomeDownloadFailed, Link: job.Link, Detail: detail})
			continue
		}

		records[job.Index].Disabled = true
		summary.Downloaded++
		outcome := OutcomeDownloaded
		if result.Converted {
			summary.Converted++
		}
		if result.ConversionFailed {
			summary.ConversionFailed++
			outcome = OutcomeConversionFailed
		}
		logger.Info("download complete",
			logging.String(logging.FieldTitle, job.Title),
			logging.String("path", result.Path),
			logging.Bool("converted", result.Converted))
		summary.Items = append(summary.Items, Item{Line: job.Index + 1, Title: job.Title, Phase: PhaseFetch, Outcome: outcome, Link: job.Link, Path: result.Path, Size: result.Size})
	}
	return nil
}

// jobs builds the download list from enabled records that carry a link.
func (r *Runner) jobs(records []titles.Record, labels map[int]string) []Job {
	var jobs []Job
	for i, rec := range records {
		if StateOf(rec) != StateResolved {
			continue
		}
		job := Job{Index: i, Title: rec.Query(), Link: rec.URL(), Label: labels[i]}
		job.Filename = Filename(job.Title, job.Label, r.cfg.Download.Naming)
		jobs = append(jobs, job)
	}
	return jobs
}

// Filename derives the download name for a title. With label naming the
// search result label is used when one is known from this run.
func Filename(title, label, naming string) string {
	if naming == config.NamingLabel && label != "" {
		return textutil.FileStem(label)
	}
	return textutil.FileStem(title)
}

func (r *Runner) checkpoint(logger *slog.Logger, path string, records []titles.Record, after string) error {
	if err := titles.Save(path, titles.Format(records, r.cfg.Titles.Separator)); err != nil {
		return fmt.Errorf("checkpoint after %s: %w", after, err)
	}
	logger.Debug("title file saved", logging.String("after", after), logging.String("path", path))
	return nil
}
