// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify classifies claimed bibliography entries against candidate
// metadata from the configured sources. The Engine runs a batch through a
// bounded worker pool; each worker walks the priority plan through the
// shared query cache, compares candidates, and resolves arXiv preprints to
// their official versions. Duplicate detection runs once every entry is done.
package verify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/citecheck/internal/cache"
	"github.com/pdiddy/citecheck/internal/normalize"
	"github.com/pdiddy/citecheck/internal/source"
	"github.com/pdiddy/citecheck/pkg/types"
)

// Entry-level failures.
var (
	// ErrMalformedEntry indicates an entry that cannot be verified as given.
	ErrMalformedEntry = errors.New("malformed entry")
)

// IsMalformed returns true if err reports a malformed entry.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedEntry)
}

// Batch-level reasons.
const (
	ReasonTimeout  = "timeout"
	ReasonCanceled = "canceled"
)

const defaultWorkers = 10

// Engine verifies batches of claimed entries.
type Engine struct {
	cfg    types.VerifyConfig
	cmp    *Comparator
	orch   *Orchestrator
	cache  *cache.Cache[[]types.CandidateMetadata]
	logger *zap.Logger

	now   func() time.Time
	newID func() string
}

type options struct {
	logger *zap.Logger
	venues *normalize.VenueTable
	cache  *cache.Cache[[]types.CandidateMetadata]
}

// Option customizes an Engine.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithVenueTable replaces the built-in venue table.
func WithVenueTable(t *normalize.VenueTable) Option {
	return func(o *options) { o.venues = t }
}

// WithCache shares a query cache across engines or runs.
func WithCache(c *cache.Cache[[]types.CandidateMetadata]) Option {
	return func(o *options) { o.cache = c }
}

// NewEngine builds an engine over the sources in reg.
func NewEngine(cfg types.VerifyConfig, reg *source.Registry, opts ...Option) *Engine {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.cache == nil {
		o.cache = cache.New[[]types.CandidateMetadata](cfg.Cache)
	}

	cmp := NewComparator(cfg.Thresholds, o.venues)
	return &Engine{
		cfg:    cfg,
		cmp:    cmp,
		orch:   NewOrchestrator(reg, cfg, o.cache, cmp, o.logger),
		cache:  o.cache,
		logger: o.logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Comparator returns the engine's comparator.
func (e *Engine) Comparator() *Comparator { return e.cmp }

// Verify classifies every entry and returns the complete report. Results
// keep input order. It never fails: source errors, malformed input, and
// the batch deadline all surface as per-entry statuses and reasons.
func (e *Engine) Verify(ctx context.Context, entries []types.ClaimedEntry) *types.VerificationReport {
	if e.cfg.BatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.BatchTimeout)
		defer cancel()
	}

	start := e.now()
	e.logger.Info("verification started", zap.Int("entries", len(entries)))

	results := make([]types.VerificationResult, len(entries))
	eligible := make([]bool, len(entries))

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	var g errgroup.Group
	g.SetLimit(workers)

	problems := validate(entries)
	for i := range entries {
		entry := &entries[i]
		if err := problems[i]; err != nil {
			results[i] = types.VerificationResult{
				Key:     entry.Key,
				Status:  types.StatusMalformed,
				Reasons: []string{err.Error()},
			}
			continue
		}
		if ctx.Err() != nil {
			results[i] = interrupted(entry.Key, ctx.Err())
			continue
		}
		g.Go(func() error {
			r := e.verifyOne(ctx, entry)
			if err := ctx.Err(); err != nil {
				r = interrupted(entry.Key, err)
			} else {
				eligible[i] = true
			}
			results[i] = r
			return nil
		})
	}
	_ = g.Wait()

	ids, groups := DuplicateGroups(entries, eligible, e.cfg.Thresholds)
	for i := range results {
		results[i].DuplicateGroup = ids[i]
	}

	report := &types.VerificationReport{
		RunID:           e.newID(),
		GeneratedAt:     e.now().UTC(),
		TotalCount:      len(entries),
		DuplicateGroups: groups,
		Results:         results,
		Cache:           e.cache.Stats(),
	}
	tally(report)

	e.logger.Info("verification finished",
		zap.String("run_id", report.RunID),
		zap.Int("verified", report.VerifiedCount),
		zap.Int("mismatch", report.MismatchCount),
		zap.Int("not_found", report.NotFoundCount),
		zap.Int("duplicates", report.DuplicateCount),
		zap.Duration("elapsed", e.now().Sub(start)))
	return report
}

// verifyOne runs the plan for one entry, then the resolver when the entry
// cites an arXiv preprint.
func (e *Engine) verifyOne(ctx context.Context, entry *types.ClaimedEntry) types.VerificationResult {
	preprint := e.cmp.IsArxivPreprint(entry)
	out := e.orch.Run(ctx, entry, preprint)

	r := types.VerificationResult{
		Key:             entry.Key,
		Status:          out.Status,
		Reasons:         out.Reasons,
		SourcesQueried:  out.Queried,
		IsArxivPreprint: preprint,
	}
	if out.Status != types.StatusNotFound && out.Candidate != nil {
		r.Candidate = out.Candidate
		r.Source = out.Candidate.Source
		m := out.Comparison.Match
		r.Match = &m
		r.MismatchReasons = out.Comparison.Reasons
	}
	if r.Status == types.StatusNotFound && len(r.Reasons) == 0 && len(out.Queried) == 0 {
		r.Reasons = []string{"no applicable source"}
	}

	if preprint {
		res := e.orch.Resolve(ctx, entry, out.Failed)
		r.ArxivURL = res.ArxivURL
		if res.Found {
			r.HasOfficialVersion = true
			r.OfficialCandidate = res.Candidate
			r.OfficialVenue = res.Venue
			r.OfficialURL = res.URL
		}
	}
	return r
}

func interrupted(key string, err error) types.VerificationResult {
	reason := ReasonTimeout
	if errors.Is(err, context.Canceled) {
		reason = ReasonCanceled
	}
	return types.VerificationResult{
		Key:      key,
		Status:   types.StatusNotFound,
		Reasons:  []string{reason},
		TimedOut: true,
	}
}

// validate returns a malformed-entry error per index, nil when the entry is
// usable. Only the second and later uses of a key are rejected.
func validate(entries []types.ClaimedEntry) []error {
	errs := make([]error, len(entries))
	seen := make(map[string]bool, len(entries))
	for i, en := range entries {
		switch {
		case en.Key == "":
			errs[i] = fmt.Errorf("%w: missing key", ErrMalformedEntry)
		case normalize.Title(en.Title) == "":
			errs[i] = fmt.Errorf("%w: missing title", ErrMalformedEntry)
		case seen[en.Key]:
			errs[i] = fmt.Errorf("%w: duplicate key %q", ErrMalformedEntry, en.Key)
		}
		if en.Key != "" {
			seen[en.Key] = true
		}
	}
	return errs
}

func tally(r *types.VerificationReport) {
	for i := range r.Results {
		res := &r.Results[i]
		switch res.Status {
		case types.StatusVerified:
			r.VerifiedCount++
		case types.StatusMismatch:
			r.MismatchCount++
		case types.StatusNotFound:
			r.NotFoundCount++
		case types.StatusMalformed:
			r.MalformedCount++
		}
		if res.DuplicateGroup > 0 {
			r.DuplicateCount++
		}
		if res.IsArxivPreprint {
			r.PreprintCount++
		}
		if res.HasOfficialVersion {
			r.OfficialFoundCount++
		}
	}
}
