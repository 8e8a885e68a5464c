package hanseg

import "math"

// Atom is the minimal indivisible unit of input: a Han character, a
// punctuation mark, or a maximal run of ASCII letters/digits.
type Atom struct {
	Content string
	Class   Feature
}

// Word is one edge of the atom-DAG: a content string, POS feature, weight
// (the summed dictionary frequency for a matched word, the pattern weight
// for a merged OOV word), and the alias it presents to the statistical
// models.
type Word struct {
	Content string
	Feature Feature
	Weight  float64
	Alias   string
}

// NewWord builds a Word, defaulting Alias to Content when alias is empty.
func NewWord(content string, feature Feature, weight float64, alias string) *Word {
	if alias == "" {
		alias = content
	}
	return &Word{Content: content, Feature: feature, Weight: weight, Alias: alias}
}

// WordsGraph is the per-sentence lattice: an atom list, the atom-DAG of
// words seeded over it, and the bigram-weighted word-DAG derived from that
//. It is created per sentence, mutated by the atomiser/matcher and
// the OOV detector in sequence, then read only during the pipeline
// orchestrator's candidate enumeration.
type WordsGraph struct {
	Atoms []Atom
	// words[left][right] = the Word spanning atoms[left:right].
	words map[int]map[int]*Word
	// wordsDag[packed(u)][packed(v)] = bigram weight of edge u -> v.
	wordsDag map[int]map[int]float64
}

// NewWordsGraph returns an empty lattice.
func NewWordsGraph() *WordsGraph {
	return &WordsGraph{
		words:    map[int]map[int]*Word{},
		wordsDag: map[int]map[int]float64{},
	}
}

// AppendAtom appends one atom and registers an empty row for its index in
// the atom-DAG, so every atom index is present as a key; no word is added
// here, that is left to GenerateWord.
func (g *WordsGraph) AppendAtom(content string, class Feature) {
	g.Atoms = append(g.Atoms, Atom{Content: content, Class: class})
	idx := len(g.Atoms) - 1
	if g.words[idx] == nil {
		g.words[idx] = map[int]*Word{}
	}
}

// GenerateWord merges atoms[left:right] into one Word and records it as the
// edge [left, right) of the atom-DAG.
func (g *WordsGraph) GenerateWord(left, right int, feature Feature, weight float64, alias string) {
	var content string
	for i := left; i < right; i++ {
		content += g.Atoms[i].Content
	}
	if g.words[left] == nil {
		g.words[left] = map[int]*Word{}
	}
	g.words[left][right] = NewWord(content, feature, weight, alias)
}

// GetWord returns the word spanning [left, right), or nil.
func (g *WordsGraph) GetWord(left, right int) *Word {
	row, ok := g.words[left]
	if !ok {
		return nil
	}
	return row[right]
}

// wordsAt returns atom index i's row of outgoing word edges and whether the
// index has a row at all; a row registered by AppendAtom may be empty.
func (g *WordsGraph) wordsAt(i int) (map[int]*Word, bool) {
	row, ok := g.words[i]
	return row, ok
}

// indexEncode packs an atom-DAG edge [l, r) into the word-DAG's integer
// key space as l*(n+1) + r. The packed form is kept for compatibility with
// dumped diagnostics.
func indexEncode(l, r, n int) int {
	return l*(n+1) + r
}

// indexDecode is the inverse of indexEncode.
func indexDecode(index, n int) (int, int) {
	return index / (n + 1), index % (n + 1)
}

// GenerateWordsDag rebuilds the bigram-weighted word-DAG from the current
// atom-DAG. Called once after the matcher seeds the lattice,
// and again after the OOV detector rewrites it.
func (g *WordsGraph) GenerateWordsDag(bigram BiDictionary) {
	g.wordsDag = map[int]map[int]float64{}
	n := len(g.Atoms)
	for left, row := range g.words {
		for right, prevWord := range row {
			prevIdx := indexEncode(left, right, n)
			if g.wordsDag[prevIdx] == nil {
				g.wordsDag[prevIdx] = map[int]float64{}
			}
			nextRow, ok := g.wordsAt(right)
			if !ok {
				continue
			}
			for nextRight, nextWord := range nextRow {
				nextIdx := indexEncode(right, nextRight, n)
				g.wordsDag[prevIdx][nextIdx] = calculateBigramWeight(prevWord, nextWord, bigram)
			}
		}
	}
}

// calculateBigramWeight is the -log of a smoothed linear interpolation
// between the unigram and bigram estimates for the edge prev -> next.
func calculateBigramWeight(prev, next *Word, bigram BiDictionary) float64 {
	const a = 0.1
	d := 1.0 / MaxFrequency
	biFreq := float64(bigram.Get(prev.Alias, next.Alias))
	return -math.Log(
		a*(1+prev.Weight)/(MaxFrequency+80000) +
			(1-a)*((1-d)*biFreq/(prev.Weight+1)+d),
	)
}

// Candidate is one enumerated segmentation: the words in order and the
// (left, right) atom-DAG span each came from.
type Candidate struct {
	Words []*Word
	Spans [][2]int
}

// TopCandidates enumerates the k shortest (highest-probability) paths over
// the word-DAG via Yen's algorithm, decoding each back into a Candidate.
func (g *WordsGraph) TopCandidates(k int) []Candidate {
	n := len(g.Atoms)
	if n == 0 {
		return nil
	}
	graph := Graph[int](g.wordsDag)
	src := indexEncode(0, 1, n)
	dst := indexEncode(n-1, n, n)

	paths := YenKSP(graph, src, dst, k)
	out := make([]Candidate, 0, len(paths))
	for _, p := range paths {
		cand := Candidate{}
		for _, v := range p.Path {
			l, r := indexDecode(v, n)
			cand.Words = append(cand.Words, g.GetWord(l, r))
			cand.Spans = append(cand.Spans, [2]int{l, r})
		}
		out = append(out, cand)
	}
	return out
}

// Reachable reports whether every atom index has a directed path to the
// terminal atom, using the atom-DAG (not the bigram-weighted word-DAG,
// which may not exist yet).
func (g *WordsGraph) Reachable() bool {
	n := len(g.Atoms)
	if n == 0 {
		return true
	}
	terminal := n - 1
	memo := make(map[int]bool, n)
	var reaches func(i int) bool
	reaches = func(i int) bool {
		if i == terminal {
			return true
		}
		if v, ok := memo[i]; ok {
			return v
		}
		memo[i] = false // guard against cycles, though the lattice is a DAG
		row := g.words[i]
		for right := range row {
			if right > i && reaches(right) {
				memo[i] = true
				return true
			}
		}
		return memo[i]
	}
	for i := 0; i < terminal; i++ {
		if !reaches(i) {
			return false
		}
	}
	return true
}
