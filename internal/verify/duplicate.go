// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"sort"

	"github.com/pdiddy/citecheck/internal/normalize"
	"github.com/pdiddy/citecheck/pkg/types"
)

// unionFind is a disjoint-set forest over entry indices.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	u := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range u.parent {
		u.parent[i] = i
	}
	return u
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	switch {
	case u.rank[ra] < u.rank[rb]:
		u.parent[ra] = rb
	case u.rank[ra] > u.rank[rb]:
		u.parent[rb] = ra
	default:
		u.parent[rb] = ra
		u.rank[ra]++
	}
}

// IsDuplicate reports whether a and b cite the same work: equal DOIs, or,
// unless both carry DOIs, equivalent titles with overlapping authors.
func IsDuplicate(a, b *types.ClaimedEntry, th types.Thresholds) bool {
	da, db := normalize.DOI(a.DOI), normalize.DOI(b.DOI)
	if da != "" && db != "" {
		return da == db
	}
	if normalize.TitleSimilarity(a.Title, b.Title) < th.TitleEquivalent {
		return false
	}
	return normalize.SymmetricOverlap(a.Authors, b.Authors) >= th.AuthorOverlap
}

// DuplicateGroups partitions the eligible entries into duplicate groups.
// It returns each entry's group id (0 for none) and the member keys of
// each group, where groups[i] holds id i+1. Ids follow the order of each
// group's smallest key, so they do not depend on input order.
func DuplicateGroups(entries []types.ClaimedEntry, eligible []bool, th types.Thresholds) ([]int, [][]string) {
	n := len(entries)
	uf := newUnionFind(n)
	for i := 0; i < n; i++ {
		if !eligible[i] {
			continue
		}
		for j := i + 1; j < n; j++ {
			if eligible[j] && IsDuplicate(&entries[i], &entries[j], th) {
				uf.union(i, j)
			}
		}
	}

	members := make(map[int][]int)
	for i := 0; i < n; i++ {
		if eligible[i] {
			r := uf.find(i)
			members[r] = append(members[r], i)
		}
	}

	var groups [][]string
	var groupIdx [][]int
	for _, idx := range members {
		if len(idx) < 2 {
			continue
		}
		keys := make([]string, len(idx))
		for k, i := range idx {
			keys[k] = entries[i].Key
		}
		sort.Strings(keys)
		groups = append(groups, keys)
		groupIdx = append(groupIdx, idx)
	}

	order := make([]int, len(groups))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return groups[order[a]][0] < groups[order[b]][0] })

	ids := make([]int, n)
	sorted := make([][]string, len(groups))
	for rank, g := range order {
		sorted[rank] = groups[g]
		for _, i := range groupIdx[g] {
			ids[i] = rank + 1
		}
	}
	return ids, sorted
}
