package ranker

import "testing"

func strictlyGreater(score, best float64) bool { return score > best }

func TestWuKongRankerPicksFirstImproving(t *testing.T) {
	r := NewWuKongRanker()
	r.Init()

	idx, ok := r.Rank([]float64{1, 5, 5, 2}, 0, strictlyGreater)
	if !ok {
		t.Fatal("Rank returned ok=false, want true")
	}
	if idx != 1 {
		t.Errorf("Rank index = %d, want 1 (first candidate reaching the max, a tie is not re-won)", idx)
	}
}

func TestWuKongRankerNoneImprove(t *testing.T) {
	r := NewWuKongRanker()
	r.Init()

	_, ok := r.Rank([]float64{-1, -2, -3}, 0, strictlyGreater)
	if ok {
		t.Error("Rank returned ok=true, want false: no score exceeds the seed")
	}
}

func TestWuKongRankerEmptyScores(t *testing.T) {
	r := NewWuKongRanker()
	r.Init()

	_, ok := r.Rank(nil, 0, strictlyGreater)
	if ok {
		t.Error("Rank on an empty score list returned ok=true, want false")
	}
}
