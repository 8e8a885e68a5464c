package hanseg

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		r    rune
		want int
	}{
		{'a', CTLetter},
		{'9', CTNum},
		{'。', CTDelimiter},
		{'中', CTChinese},
	}
	for _, c := range cases {
		if got := classify(c.r); got != c.want {
			t.Errorf("classify(%q) = %d, want %d", c.r, got, c.want)
		}
	}
}

func TestAtomizeMergesRuns(t *testing.T) {
	g := NewWordsGraph()
	atomize(g, "ab12你好")

	var contents []string
	for _, a := range g.Atoms {
		contents = append(contents, a.Content)
	}
	want := []string{SentenceBegin, "ab", "12", "你", "好", SentenceEnd}
	if len(contents) != len(want) {
		t.Fatalf("atoms = %v, want %v", contents, want)
	}
	for i := range want {
		if contents[i] != want[i] {
			t.Errorf("atoms[%d] = %q, want %q (full %v)", i, contents[i], want[i], contents)
		}
	}
}

// TestAtomizeStable re-runs atomisation on the same sentence and expects
// identical atom sequences, content and class both.
func TestAtomizeStable(t *testing.T) {
	const sentence = "张华平在北京说的ok123。"
	first := NewWordsGraph()
	atomize(first, sentence)
	for i := 0; i < 3; i++ {
		again := NewWordsGraph()
		atomize(again, sentence)
		if len(again.Atoms) != len(first.Atoms) {
			t.Fatalf("run %d produced %d atoms, want %d", i, len(again.Atoms), len(first.Atoms))
		}
		for j := range first.Atoms {
			if again.Atoms[j] != first.Atoms[j] {
				t.Errorf("run %d atom[%d] = %+v, want %+v", i, j, again.Atoms[j], first.Atoms[j])
			}
		}
	}
}

func TestAtomizeEmptySentence(t *testing.T) {
	g := NewWordsGraph()
	atomize(g, "")
	if len(g.Atoms) != 2 {
		t.Fatalf("atomize(\"\") produced %d atoms, want 2 (just the sentinels)", len(g.Atoms))
	}
	if g.Atoms[0].Content != SentenceBegin || g.Atoms[1].Content != SentenceEnd {
		t.Errorf("atoms = %v, want [%q %q]", g.Atoms, SentenceBegin, SentenceEnd)
	}
}

func buildCoreForMatch() *Dictionary {
	d := NewDictionary()
	d.Add(SentenceBegin, 1, CTSentenceBegin)
	d.Add(SentenceEnd, 1, CTSentenceEnd)
	d.Add("你", 100, EncodePOS("r"))
	d.Add("好", 200, EncodePOS("a"))
	d.Add("你好", 500, EncodePOS("l"))
	return d
}

func TestMatchWordsSeedsDictionaryAndAmbiguousSpans(t *testing.T) {
	g := NewWordsGraph()
	atomize(g, "你好")
	matchWords(g, buildCoreForMatch())

	if w := g.GetWord(1, 2); w == nil || w.Content != "你" {
		t.Errorf("GetWord(1,2) = %v, want word \"你\"", w)
	}
	if w := g.GetWord(2, 3); w == nil || w.Content != "好" {
		t.Errorf("GetWord(2,3) = %v, want word \"好\"", w)
	}
	if w := g.GetWord(1, 3); w == nil || w.Content != "你好" {
		t.Errorf("GetWord(1,3) = %v, want word \"你好\"", w)
	}
}

func TestMatchWordsFallsBackOnUnknownAtom(t *testing.T) {
	g := NewWordsGraph()
	atomize(g, "你Z")
	matchWords(g, buildCoreForMatch())

	if w := g.GetWord(2, 3); w == nil {
		t.Fatal("GetWord(2,3) = nil, want a fallback word for the unknown letter atom")
	} else if w.Alias != OOVWordNX {
		t.Errorf("fallback word alias = %q, want %q", w.Alias, OOVWordNX)
	}
}

func TestLatticeReachableAfterMatch(t *testing.T) {
	g := NewWordsGraph()
	atomize(g, "你好")
	matchWords(g, buildCoreForMatch())
	if !g.Reachable() {
		t.Error("Reachable() = false after matchWords, want true")
	}
}
