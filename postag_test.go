package hanseg

import "testing"

// TestTagPOSUsesDictionaryEntry checks the ordinary path: a word whose
// dictionary entry carries a concrete (non-ambiguous) POS code drives the
// tagger toward that state.
func TestTagPOSUsesDictionaryEntry(t *testing.T) {
	core := NewDictionary()
	nTag := EncodePOS("n")
	vTag := EncodePOS("v")
	core.Add("猫", 1000, nTag)
	core.Add("跑", 1000, vTag)

	lexical := NewContext()
	lexical.States = []int{nTag, vTag}
	lexical.TotalFreq = 2000
	lexical.StateFreq[nTag] = 1000
	lexical.StateFreq[vTag] = 1000
	lexical.StartProb[nTag] = 0.5
	lexical.StartProb[vTag] = 0.5
	lexical.TransitionProb[nTag] = map[int]float64{nTag: 0.1, vTag: 0.9}
	lexical.TransitionProb[vTag] = map[int]float64{nTag: 0.5, vTag: 0.5}

	cand := Candidate{Words: []*Word{
		{Content: "猫", Alias: "猫", Feature: Feature{Code: nTag}},
		{Content: "跑", Alias: "跑", Feature: Feature{Code: vTag}},
	}}

	tags := tagPOS(cand, core, lexical)
	if len(tags) != 2 {
		t.Fatalf("tagPOS returned %d tags, want 2", len(tags))
	}
	if tags[0].Code != nTag {
		t.Errorf("tags[0] = %q, want \"n\"", tags[0].Tag())
	}
	if tags[1].Code != vTag {
		t.Errorf("tags[1] = %q, want \"v\"", tags[1].Tag())
	}
}

// TestTagPOSUsesWordFeatureWhenAmbiguous checks that a dictionary row marked
// POS 2 ("use the word's own feature") routes the emission mass onto the
// word's own Feature.Code, not onto literal state 2.
func TestTagPOSUsesWordFeatureForCode2(t *testing.T) {
	core := NewDictionary()
	nxTag := EncodePOS("nx")
	core.Add("未##串", 500, 2)

	lexical := NewContext()
	lexical.States = []int{nxTag}
	lexical.TotalFreq = 500
	lexical.StateFreq[nxTag] = 500
	lexical.StartProb[nxTag] = 1.0
	lexical.TransitionProb[nxTag] = map[int]float64{nxTag: 1.0}

	cand := Candidate{Words: []*Word{
		{Content: "ABC", Alias: "未##串", Feature: Feature{Code: nxTag}},
	}}

	tags := tagPOS(cand, core, lexical)
	if len(tags) != 1 {
		t.Fatalf("tagPOS returned %d tags, want 1", len(tags))
	}
	if tags[0].Code != nxTag {
		t.Errorf("tags[0] = %d, want %d (the word's own feature code)", tags[0].Code, nxTag)
	}
}
