// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"context"

	"go.uber.org/zap"

	"github.com/pdiddy/citecheck/internal/normalize"
	"github.com/pdiddy/citecheck/pkg/types"
)

// Resolution is the official version found for an arXiv preprint.
type Resolution struct {
	Found     bool
	Candidate *types.CandidateMetadata
	Venue     string
	URL       string
	ArxivURL  string
}

// Resolve searches for a peer-reviewed version of the preprint e. It walks
// the plan's arXiv-id steps and then its title steps, and stops at the
// first step yielding an acceptable candidate. Among that step's accepted
// candidates the most prestigious venue wins, then the higher
// title+author score. Lookups listed in failed are not repeated.
func (o *Orchestrator) Resolve(ctx context.Context, e *types.ClaimedEntry, failed map[string]error) Resolution {
	res := Resolution{ArxivURL: arxivURL(e)}

	for _, lookup := range []types.Lookup{types.LookupArxivID, types.LookupTitle} {
		for _, st := range o.steps {
			if st.Lookup != lookup {
				continue
			}
			if ctx.Err() != nil {
				return res
			}
			q, ok := query(st, e)
			if !ok {
				continue
			}
			src, _ := o.registry.Get(st.Source)
			if _, ok := failed[lookupKey(src, q)]; ok {
				continue
			}
			cands, err := o.Lookup(ctx, src, q)
			if err != nil {
				continue
			}

			var accepted []types.CandidateMetadata
			for i := range cands {
				if o.cmp.IsOfficial(e, &cands[i]) {
					accepted = append(accepted, cands[i])
				}
			}
			if len(accepted) == 0 {
				continue
			}

			chosen := o.pickOfficial(e, accepted)
			res.Found = true
			res.Candidate = chosen
			res.Venue = o.cmp.venues.Format(chosen.Venue, chosen.Year)
			res.URL = officialURL(chosen, accepted)
			o.logger.Debug("official version found",
				zap.String("source", string(st.Source)),
				zap.String("venue", res.Venue))
			return res
		}
	}
	return res
}

// pickOfficial orders by venue prestige (Journal > Conference > Workshop),
// then by title+author score. Earlier candidates win exact ties.
func (o *Orchestrator) pickOfficial(e *types.ClaimedEntry, accepted []types.CandidateMetadata) *types.CandidateMetadata {
	bestIdx, bestRank, bestScore := -1, -1, 0.0
	for i := range accepted {
		rank := 0
		if v, ok := o.cmp.venues.Lookup(accepted[i].Venue); ok {
			rank = normalize.Prestige(v.Kind)
		}
		score := o.cmp.Score(e, &accepted[i])
		if bestIdx < 0 || rank > bestRank || (rank == bestRank && score > bestScore) {
			bestIdx, bestRank, bestScore = i, rank, score
		}
	}
	chosen := accepted[bestIdx]
	return &chosen
}
