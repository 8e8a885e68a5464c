package hanseg

import (
	"math"
	"regexp"
)

// oovPass is one of the three OOV detection passes run in order: person
// (nr), transliterated person (tr), location (ns).
type oovPass struct {
	kind  string // "nr", "tr", "ns"
	dict  *Dictionary
	ctx   *Context
	alias string
}

var trNsPattern = regexp.MustCompile(`^BC*D`)

// oovTagEncode/oovTagDecode map a role letter (A, B, C, ...) to/from its
// 0-based state code, per the glossary's "role string" definition.
func oovTagEncode(letter byte) int { return int(letter) - 65 }
func oovTagDecode(code int) byte   { return byte(65 + code) }

// detectOOV runs all three passes over the single best current
// segmentation and rewrites g in place. It first builds the word-DAG from
// the matcher's output itself; the caller must rebuild the word-DAG again
// afterwards.
func detectOOV(g *WordsGraph, bigram BiDictionary, core *Dictionary, nr, tr, ns *oovPass) {
	g.GenerateWordsDag(bigram)
	candidates := g.TopCandidates(1)
	if len(candidates) == 0 {
		return
	}
	best := candidates[0]

	nrTag := oovTagging(best, nr, core)
	trTag := oovTagging(best, tr, core)
	nsTag := oovTagging(best, ns, core)

	generateOOVWords(g, "nr", nrTag, best.Spans, nr)
	generateOOVWords(g, "tr", trTag, best.Spans, tr)
	generateOOVWords(g, "ns", nsTag, best.Spans, ns)
}

// oovTagging builds the pass's HMM model for the current segmentation's
// words and role-tags them with Viterbi.
func oovTagging(cand Candidate, pass *oovPass, core *Dictionary) []byte {
	model := generateOOVHMMModel(cand, pass, core)
	_, path := Viterbi(model)
	tag := make([]byte, len(path))
	for i, p := range path {
		tag[i] = oovTagDecode(p)
	}
	return tag
}

// generateOOVHMMModel builds the observation sequence and emission table
// for one OOV pass, following the documented "pre-fill with the smoothing
// fallback, then overwrite with real data" pattern, including the
// synthetic background entry and the skip of role 44.
func generateOOVHMMModel(cand Candidate, pass *oovPass, core *Dictionary) *HMMModel {
	const a = 0.1
	model := NewHMMModel(pass.ctx.States, pass.ctx.StartProb, pass.ctx.TransitionProb)

	for _, w := range cand.Words {
		model.AddObservation(w.Content)

		for _, state := range pass.ctx.States {
			model.SetEmission(state, w.Content, a*1/float64(pass.ctx.TotalFreq))
		}

		coreEntries := core.Get(w.Content)
		oovEntries := pass.dict.Get(w.Content)

		var coreTotal, oovTotal int
		for _, e := range coreEntries {
			coreTotal += e.Freq
		}
		for _, e := range oovEntries {
			oovTotal += e.Freq
		}

		background := max(coreTotal-oovTotal, 1)
		rows := append(append([]Entry(nil), oovEntries...), Entry{Freq: background, POS: 0})

		for _, e := range rows {
			if e.POS == 44 {
				continue
			}
			stateFreq := max(pass.ctx.StateFreq[e.POS], 1)
			model.SetEmission(e.POS, w.Content,
				(1-a)*(float64(e.Freq)+0.1)/float64(stateFreq)+a*1/float64(pass.ctx.TotalFreq))
		}
	}
	return model
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// generateOOVWords pattern-matches the role string, computes each match's
// pattern weight, and creates/replaces the merged OOV word in the lattice
// when it improves on (or introduces) coverage of its span.
func generateOOVWords(g *WordsGraph, kind string, tag []byte, spans [][2]int, pass *oovPass) {
	i, n := 0, len(tag)
	for i < n {
		pattern, weight, ok := matchOOVPattern(kind, tag[i:])
		if !ok {
			i++
			continue
		}
		weight += computePossibility(g, i, spans, pattern, pass)

		left, right := spans[i][0], spans[i+len(pattern)-1][1]
		existing := g.GetWord(left, right)

		if existing == nil || weight < existing.Weight {
			feature := NewFeatureFromTag(kind)
			if kind == "tr" {
				// A transliterated person collapses into the person tag.
				feature = NewFeatureFromTag("nr")
			}
			alias := pass.alias
			g.GenerateWord(left, right, feature, weight, alias)
		}
		i += len(pattern)
	}
}

// matchOOVPattern tries the pass-specific pattern list against the role
// string starting at the current position, returning the matched pattern
// and its -log(factor) weight contribution.
func matchOOVPattern(kind string, tag []byte) (pattern string, weight float64, ok bool) {
	switch kind {
	case "nr":
		for _, p := range nrPatterns {
			if len(p) <= len(tag) && string(tag[:len(p)]) == p {
				return p, -math.Log(nrFactor[p]), true
			}
		}
		return "", 0, false
	case "tr", "ns":
		m := trNsPattern.Find(tag)
		if m == nil {
			return "", 0, false
		}
		// tr/ns patterns carry no factor table; their base weight is
		// log(1.0).
		return string(m), math.Log(1.0), true
	default:
		return "", 0, false
	}
}

// computePossibility sums, over the matched roles,
// log(start_freq(p)) - log(oov_freq(w, p)+1).
func computePossibility(g *WordsGraph, start int, spans [][2]int, pattern string, pass *oovPass) float64 {
	var weight float64
	j := start
	for _, roleByte := range []byte(pattern) {
		role := oovTagEncode(roleByte)
		l, r := spans[j][0], spans[j][1]
		// The word at this span was produced by the single best
		// segmentation passed into oovTagging, so GetWord always hits.
		wordContent := g.GetWord(l, r).Content
		oovFreq := pass.dict.GetFrequency(wordContent, role)
		startFreq := pass.ctx.ProbToFrequency(pass.ctx.StartProb[role])
		weight += math.Log(startFreq) - math.Log(float64(oovFreq)+1)
		j++
	}
	return weight
}
