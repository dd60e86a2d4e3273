// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"slices"

	"github.com/pdiddy/citecheck/pkg/types"
)

// Registry maps source identifiers to their clients.
type Registry struct {
	sources map[types.SourceID]Source
}

// NewRegistry returns a registry holding the given sources. A later source
// with the same name replaces an earlier one.
func NewRegistry(sources ...Source) *Registry {
	r := &Registry{sources: make(map[types.SourceID]Source, len(sources))}
	for _, s := range sources {
		r.Register(s)
	}
	return r
}

// Register adds or replaces a source.
func (r *Registry) Register(s Source) {
	r.sources[s.Name()] = s
}

// Get returns the source registered under id.
func (r *Registry) Get(id types.SourceID) (Source, bool) {
	s, ok := r.sources[id]
	return s, ok
}

// Names lists registered sources in default priority order, followed by
// any custom sources sorted by name.
func (r *Registry) Names() []types.SourceID {
	var names, extra []types.SourceID
	for _, id := range types.AllSources {
		if _, ok := r.sources[id]; ok {
			names = append(names, id)
		}
	}
	for id := range r.sources {
		if !slices.Contains(types.AllSources, id) {
			extra = append(extra, id)
		}
	}
	slices.Sort(extra)
	return append(names, extra...)
}

// Build constructs a client for every enabled source in cfg. The local
// source is registered only when index is non-nil.
func Build(cfg types.VerifyConfig, index Index) *Registry {
	r := NewRegistry()
	for id, sc := range cfg.Sources {
		if !sc.Enabled {
			continue
		}
		switch id {
		case types.SourceArxiv:
			r.Register(NewArxivSource(sc, cfg.HTTP))
		case types.SourceCrossref:
			r.Register(NewCrossrefSource(sc, cfg.HTTP))
		case types.SourceDBLP:
			r.Register(NewDBLPSource(sc, cfg.HTTP))
		case types.SourceSemanticScholar:
			r.Register(NewSemanticScholarSource(sc, cfg.HTTP))
		case types.SourceOpenAlex:
			r.Register(NewOpenAlexSource(sc, cfg.HTTP))
		case types.SourceScholar:
			r.Register(NewScholarSource(sc, cfg.HTTP))
		case types.SourceLocal:
			if index != nil {
				r.Register(NewLocalSource(index, sc))
			}
		}
	}
	return r
}
