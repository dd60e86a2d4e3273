// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/citecheck/internal/cache"
	"github.com/pdiddy/citecheck/internal/httputil"
	"github.com/pdiddy/citecheck/internal/normalize"
	"github.com/pdiddy/citecheck/internal/source"
	"github.com/pdiddy/citecheck/pkg/types"
)

// ReasonSourceUnavailable is recorded when every consulted source failed.
const ReasonSourceUnavailable = "source unavailable"

// defaultFetchTimeout bounds a fetch when neither the source nor the HTTP
// block configures a timeout.
const defaultFetchTimeout = 30 * time.Second

// Outcome is the orchestrator's best finding for one entry.
type Outcome struct {
	Status     types.Status
	Candidate  *types.CandidateMetadata
	Comparison *Comparison

	// Queried lists the sources consulted, in plan order, without repeats.
	Queried []types.SourceID

	// Reasons holds per-source failures, plus ReasonSourceUnavailable when
	// nothing succeeded.
	Reasons []string

	// Failed maps the cache key of every failed lookup to its error, so
	// later lookups for the same entry do not repeat them.
	Failed map[string]error
}

// Orchestrator walks the priority plan for one entry through the shared
// query cache.
type Orchestrator struct {
	registry *source.Registry
	steps    []types.StepConfig
	sources  map[types.SourceID]types.SourceConfig
	cache    *cache.Cache[[]types.CandidateMetadata]
	cmp      *Comparator
	logger   *zap.Logger
	timeout  time.Duration
}

// NewOrchestrator returns an orchestrator over the given plan. Steps that
// are disabled or whose source is not registered are dropped.
func NewOrchestrator(reg *source.Registry, cfg types.VerifyConfig, c *cache.Cache[[]types.CandidateMetadata], cmp *Comparator, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	steps := cfg.Steps
	if len(steps) == 0 {
		steps = types.DefaultSteps()
	}
	var plan []types.StepConfig
	for _, st := range steps {
		if !st.Enabled {
			continue
		}
		if _, ok := reg.Get(st.Source); !ok {
			continue
		}
		plan = append(plan, st)
	}
	return &Orchestrator{
		registry: reg,
		steps:    plan,
		sources:  cfg.Sources,
		cache:    c,
		cmp:      cmp,
		logger:   logger,
		timeout:  orDefault(cfg.HTTP.Timeout, defaultFetchTimeout),
	}
}

// Plan returns the effective step list.
func (o *Orchestrator) Plan() []types.StepConfig {
	return slices.Clone(o.steps)
}

// query builds the lookup for one step, or reports that the entry has
// nothing to look up with it.
func query(st types.StepConfig, e *types.ClaimedEntry) (source.Query, bool) {
	q := source.Query{Lookup: st.Lookup}
	switch st.Lookup {
	case types.LookupArxivID:
		q.ArxivID = EntryArxivID(e)
	case types.LookupDOI:
		if !normalize.IsArxivDOI(e.DOI) {
			q.DOI = e.DOI
		}
	case types.LookupTitle:
		q.Title = e.Title
	default:
		return q, false
	}
	return q, !q.IsEmpty()
}

// Run consults the plan in order and returns the best outcome. It stops at
// the first Verified candidate unless exhaustive is set, which preprints
// use so the resolver's later lookups hit the cache. Run never fails;
// source errors become reasons.
func (o *Orchestrator) Run(ctx context.Context, e *types.ClaimedEntry, exhaustive bool) Outcome {
	out := Outcome{Status: types.StatusNotFound}
	attempted, failed := 0, 0

	for _, st := range o.steps {
		if ctx.Err() != nil {
			break
		}
		q, ok := query(st, e)
		if !ok {
			continue
		}
		src, _ := o.registry.Get(st.Source)
		if !slices.Contains(out.Queried, st.Source) {
			out.Queried = append(out.Queried, st.Source)
		}

		attempted++
		cands, err := o.Lookup(ctx, src, q)
		if err != nil {
			failed++
			out.Reasons = append(out.Reasons, fmt.Sprintf("%s: %v", st.Source, err))
			if out.Failed == nil {
				out.Failed = make(map[string]error)
			}
			out.Failed[lookupKey(src, q)] = err
			continue
		}

		best, cmp := o.best(e, cands)
		if best == nil {
			continue
		}
		if better(cmp, out) {
			out.Status = cmp.Status
			out.Candidate = best
			out.Comparison = &cmp
		}
		if out.Status == types.StatusVerified && !exhaustive {
			break
		}
	}

	if attempted > 0 && failed == attempted {
		out.Reasons = append([]string{ReasonSourceUnavailable}, out.Reasons...)
	}
	return out
}

// best picks the candidate with the best classification, then the
// highest title+author score. Earlier candidates win exact ties.
func (o *Orchestrator) best(e *types.ClaimedEntry, cands []types.CandidateMetadata) (*types.CandidateMetadata, Comparison) {
	var (
		pick *types.CandidateMetadata
		cmp  Comparison
	)
	for i := range cands {
		c := o.cmp.Compare(e, &cands[i])
		if pick == nil || outranks(c, cmp) {
			pick, cmp = &cands[i], c
		}
	}
	if pick == nil {
		return nil, Comparison{}
	}
	cp := *pick
	return &cp, cmp
}

func statusRank(s types.Status) int {
	switch s {
	case types.StatusVerified:
		return 3
	case types.StatusMismatch:
		return 2
	default:
		return 1
	}
}

// outranks orders comparisons by status (Verified > Mismatch > NotFound),
// then by score.
func outranks(a, b Comparison) bool {
	if ra, rb := statusRank(a.Status), statusRank(b.Status); ra != rb {
		return ra > rb
	}
	return a.Score > b.Score
}

// better reports whether cmp improves on the running outcome.
func better(cmp Comparison, out Outcome) bool {
	if out.Comparison == nil {
		return true
	}
	return outranks(cmp, *out.Comparison)
}

func lookupKey(src source.Source, q source.Query) string {
	return cache.Key(src.Name(), q.Key())
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}

// Lookup returns the candidates src reports for q, fetching at most once
// per normalized query across the whole run. Unknown identifiers are an
// empty, cacheable result; other failures are returned and not cached.
func (o *Orchestrator) Lookup(ctx context.Context, src source.Source, q source.Query) ([]types.CandidateMetadata, error) {
	key := lookupKey(src, q)
	sc := o.sources[src.Name()]
	timeout := orDefault(sc.Timeout, o.timeout)
	log := o.logger.With(zap.String("source", string(src.Name())), zap.String("key", key))

	return o.cache.Do(ctx, key, func(ctx context.Context) ([]types.CandidateMetadata, error) {
		var cands []types.CandidateMetadata
		err := httputil.Retry(ctx, sc.Retries, source.IsTransient, func(ctx context.Context) error {
			actx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			res, err := src.Fetch(actx, q)
			if err != nil {
				if actx.Err() != nil && ctx.Err() == nil && !source.IsTransient(err) {
					err = &source.Error{Source: src.Name(), Err: fmt.Errorf("%w: %v", source.ErrUnavailable, err)}
				}
				return err
			}
			cands = res
			return nil
		})
		switch {
		case err == nil:
			log.Debug("fetched", zap.Int("candidates", len(cands)))
			return cands, nil
		case source.IsNotFound(err):
			log.Debug("not found")
			return []types.CandidateMetadata{}, nil
		default:
			log.Warn("source failed", zap.Error(err))
			return nil, err
		}
	})
}
