// Package factstore holds the collected assessment profile and pricing
// facts for one estimation run. It is a pass-through store: facts go in
// exactly as the collector produced them and come back out unchanged.
package factstore

import (
	"sync"

	"rds-cost/core/projection"
	"rds-cost/core/types"
)

const bytesPerGB = 1024 * 1024 * 1024

// Key identifies one fact in the store.
type Key struct {
	InstanceType string
	Deployment   types.Deployment
	Option       types.PricingOption
	Strategy     types.MigrationStrategy
}

// IndexKey identifies a fact within a single strategy.
type IndexKey struct {
	InstanceType string
	Deployment   types.Deployment
	Option       types.PricingOption
}

// Store collects the inputs of one estimation run.
type Store struct {
	mu      sync.RWMutex
	profile *types.AssessmentProfile
	facts   map[Key]*types.RateFact
}

// New creates an empty store.
func New() *Store {
	return &Store{facts: make(map[Key]*types.RateFact)}
}

func keyOf(f *types.RateFact) Key {
	return Key{
		InstanceType: f.Spec.InstanceType,
		Deployment:   f.Spec.Deployment,
		Option:       f.Option,
		Strategy:     f.Spec.Strategy,
	}
}

// SetProfile stores the parsed assessment profile.
func (s *Store) SetProfile(p *types.AssessmentProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
}

// Profile returns the stored profile, or an empty one if none was set.
func (s *Store) Profile() *types.AssessmentProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return &types.AssessmentProfile{}
	}
	return s.profile
}

// Put stores facts, replacing earlier facts with the same key.
func (s *Store) Put(facts ...*types.RateFact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range facts {
		s.facts[keyOf(f)] = f
	}
}

// Fact looks up a single fact.
func (s *Store) Fact(k Key) (*types.RateFact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.facts[k]
	return f, ok
}

// Index returns the facts of one strategy keyed by instance, deployment
// and option, the shape the report builder consumes.
func (s *Store) Index(strategy types.MigrationStrategy) map[IndexKey]*types.RateFact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := make(map[IndexKey]*types.RateFact)
	for k, f := range s.facts {
		if k.Strategy != strategy {
			continue
		}
		idx[IndexKey{InstanceType: k.InstanceType, Deployment: k.Deployment, Option: k.Option}] = f
	}
	return idx
}

// UnavailableReserved lists reserved facts the pricing source could not
// price. These drive the RDS offering fallback.
func (s *Store) UnavailableReserved() []*types.RateFact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*types.RateFact
	for _, f := range s.facts {
		if !f.Available && f.Option.IsReserved() {
			out = append(out, f)
		}
	}
	return out
}

// Traffic derives the daily network baseline from the profile's AWR
// counters, converting bytes/day to GB/day.
func (s *Store) Traffic() projection.Traffic {
	p := s.Profile()

	gb := func(bytes *float64) float64 {
		if bytes == nil {
			return 0
		}
		return *bytes / bytesPerGB
	}

	return projection.Traffic{
		SentDailyGB: gb(p.AWR.SQLNetSentBytesPerDay),
		RecvDailyGB: gb(p.AWR.SQLNetRecvBytesPerDay),
		RedoDailyGB: gb(p.AWR.RedoBytesPerDay),
	}
}

// HasTraffic reports whether the profile carried any network counters.
func (s *Store) HasTraffic() bool {
	return s.Profile().AWR.HasNetworkVolume()
}
