// Package ranker selects the best-scoring segmentation candidate. A
// candidate set is immutable local state produced once per Process call,
// not a long-lived shared index, so there is nothing to lock or register;
// the init guard catches ranking before Init, which is programmer error.
package ranker

import "log"

// CandidateRanker picks the index of the best of the given scores, or
// ok == false if scores is empty or every candidate was rejected.
type CandidateRanker interface {
	Rank(scores []float64, initial float64, improves func(score, best float64) bool) (bestIndex int, ok bool)
}

// WuKongRanker is initialised once and reused across Process calls,
// mirroring WuKongRanker.Init's double-init guard even though this
// ranker carries no per-document state of its own.
type WuKongRanker struct {
	initialized bool
}

func NewWuKongRanker() *WuKongRanker {
	return &WuKongRanker{}
}

func (r *WuKongRanker) Init() {
	if r.initialized {
		log.Fatal("ranker initialized twice")
	}
	r.initialized = true
}

// Rank scans scores in order, keeping the first candidate whose score
// improves (per the caller's comparator and seed) on the running best.
// Ties are not re-won, matching a strict '>' comparator fold left to
// right over first-discovered order.
func (r *WuKongRanker) Rank(scores []float64, initial float64, improves func(score, best float64) bool) (int, bool) {
	if !r.initialized {
		log.Fatal("ranker not initialized")
	}
	best := initial
	bestIdx, ok := -1, false
	for i, s := range scores {
		if improves(s, best) {
			best, bestIdx, ok = s, i, true
		}
	}
	return bestIdx, ok
}
