package hanseg

import "testing"

func TestIndexEncodeDecodeRoundTrip(t *testing.T) {
	n := 5
	for l := 0; l <= n; l++ {
		for r := l; r <= n; r++ {
			idx := indexEncode(l, r, n)
			gotL, gotR := indexDecode(idx, n)
			if gotL != l || gotR != r {
				t.Errorf("indexDecode(indexEncode(%d,%d,%d)) = (%d,%d), want (%d,%d)", l, r, n, gotL, gotR, l, r)
			}
		}
	}
}

func TestGenerateWordAccumulatesContent(t *testing.T) {
	g := NewWordsGraph()
	g.AppendAtom("你", Feature{Code: CTChinese})
	g.AppendAtom("好", Feature{Code: CTChinese})
	g.GenerateWord(0, 2, Feature{}, 10, "")
	w := g.GetWord(0, 2)
	if w == nil || w.Content != "你好" {
		t.Fatalf("GetWord(0,2) = %v, want content \"你好\"", w)
	}
	if w.Alias != "你好" {
		t.Errorf("default alias = %q, want content itself", w.Alias)
	}
}

func TestCalculateBigramWeightPrefersSeenBigram(t *testing.T) {
	bigram := BiDictionary{}
	bigram["a"+wordSegmenter+"b"] = 1000

	prev := &Word{Content: "a", Alias: "a", Weight: 50}
	next := &Word{Content: "b", Alias: "b", Weight: 20}
	unseenNext := &Word{Content: "c", Alias: "c", Weight: 20}

	seenWeight := calculateBigramWeight(prev, next, bigram)
	unseenWeight := calculateBigramWeight(prev, unseenNext, bigram)

	// A higher bigram frequency must produce a lower -log(prob) weight
	// (a cheaper edge), since the transition is more probable.
	if seenWeight >= unseenWeight {
		t.Errorf("weight with seen bigram (%v) should be less than weight with unseen bigram (%v)", seenWeight, unseenWeight)
	}
}

func TestTopCandidatesSingleWordSentence(t *testing.T) {
	g := NewWordsGraph()
	atomize(g, "你")
	matchWords(g, buildCoreForMatch())
	g.GenerateWordsDag(BiDictionary{})

	cands := g.TopCandidates(1)
	if len(cands) != 1 {
		t.Fatalf("TopCandidates(1) returned %d candidates, want 1", len(cands))
	}
	var words []string
	for _, w := range cands[0].Words {
		words = append(words, w.Content)
	}
	want := []string{SentenceBegin, "你", SentenceEnd}
	if len(words) != len(want) {
		t.Fatalf("words = %v, want %v", words, want)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("words[%d] = %q, want %q (full %v)", i, words[i], want[i], words)
		}
	}
}
