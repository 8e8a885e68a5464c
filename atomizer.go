package hanseg

import (
	"strings"
	"unicode"
)

// classify returns the CT_* character class for a rune.
func classify(r rune) int {
	switch {
	case r <= unicode.MaxASCII && unicode.IsLetter(r):
		return CTLetter
	case r <= unicode.MaxASCII && unicode.IsDigit(r):
		return CTNum
	case strings.ContainsRune(sepCSentence, r),
		strings.ContainsRune(sepCSubSentence, r),
		strings.ContainsRune(sepESentence, r),
		strings.ContainsRune(sepESubSentence, r):
		return CTDelimiter
	default:
		return CTChinese
	}
}

// atomize splits sentence into atoms, merging
// consecutive letter runs and consecutive digit runs into one atom each,
// and bracket the result with the SENTENCE_BEGIN/SENTENCE_END sentinels.
func atomize(g *WordsGraph, sentence string) {
	g.AppendAtom(SentenceBegin, Feature{Code: CTSentenceBegin})

	prevType := 0
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			g.AppendAtom(cur.String(), Feature{Code: prevType})
			cur.Reset()
		}
	}

	for _, r := range sentence {
		curType := classify(r)
		if (curType == CTNum || curType == CTLetter) && curType == prevType {
			cur.WriteRune(r)
		} else {
			flush()
			cur.WriteRune(r)
		}
		prevType = curType
	}
	flush()

	g.AppendAtom(SentenceEnd, Feature{Code: CTSentenceEnd})
}

// matchWords seeds the atom-DAG from the core dictionary. For every
// non-sentinel atom index, walk the trie from that position and insert an
// edge for every matching prefix; fall back to a single-atom OOV word when
// nothing matches.
func matchWords(g *WordsGraph, core *Dictionary) {
	n := len(g.Atoms)
	if n < 2 {
		return
	}

	seedSentinel := func(idx int, content string) {
		entries := core.Get(content)
		if len(entries) == 0 {
			// Sentinels must be present in the core dictionary; an empty
			// entry here means the data store was built without them.
			g.GenerateWord(idx, idx+1, Feature{}, 0, "")
			return
		}
		g.GenerateWord(idx, idx+1, Feature{Code: entries[0].POS}, float64(entries[0].Freq), "")
	}
	seedSentinel(0, SentenceBegin)

	for i := 1; i < n-1; i++ {
		suffixAtoms := g.Atoms[i:]
		suffix := make([]rune, 0, len(suffixAtoms))
		for _, a := range suffixAtoms {
			suffix = append(suffix, []rune(a.Content)...)
		}

		matches := core.Matches(suffix)
		matched := matchesAlignToAtoms(g, i, matches)
		if len(matched) == 0 {
			seedFallback(g, i)
			continue
		}
		for _, m := range matched {
			pos := 0
			if len(m.Entries) == 1 {
				pos = m.Entries[0].POS
			}
			// Filter: a single unambiguous POS in the reserved (0,256)
			// range encodes a system sentinel, not an ordinary word.
			if len(m.Entries) == 1 && pos > 0 && pos < 256 {
				continue
			}
			weight := 0
			for _, e := range m.Entries {
				weight += e.Freq
			}
			right := i + m.AtomLen
			g.GenerateWord(i, right, Feature{Code: pos}, float64(weight), "")
		}
	}

	seedSentinel(n-1, SentenceEnd)
}

// alignedMatch is a dictionary match re-expressed in atom-length terms
// rather than rune-length terms, since a matched key's rune count need not
// equal the number of atoms it spans (a letter/digit run is one atom but
// several runes).
type alignedMatch struct {
	Entries []Entry
	AtomLen int
}

// matchesAlignToAtoms walks the same atom suffix the dictionary was
// matched against and reports, for each dictionary match, how many atoms
// (not runes) it consumed.
func matchesAlignToAtoms(g *WordsGraph, start int, matches []Match) []alignedMatch {
	if len(matches) == 0 {
		return nil
	}
	out := make([]alignedMatch, 0, len(matches))
	for _, m := range matches {
		runesNeeded := len([]rune(m.Text))
		atomsUsed, runesSeen := 0, 0
		for idx := start; idx < len(g.Atoms) && runesSeen < runesNeeded; idx++ {
			runesSeen += len([]rune(g.Atoms[idx].Content))
			atomsUsed++
		}
		if runesSeen != runesNeeded {
			// The dictionary key's boundary falls inside a merged
			// letter/digit atom: not a valid atom-aligned match.
			continue
		}
		out = append(out, alignedMatch{Entries: m.Entries, AtomLen: atomsUsed})
	}
	return out
}

// seedFallback inserts the single-atom OOV word used when no dictionary
// match starts at atom index i.
func seedFallback(g *WordsGraph, i int) {
	atom := g.Atoms[i]
	switch atom.Class.Code {
	case CTNum:
		g.GenerateWord(i, i+1, NewFeatureFromTag("m"), 0, OOVWordM)
	case CTLetter:
		g.GenerateWord(i, i+1, NewFeatureFromTag("nx"), 0, OOVWordNX)
	default:
		g.GenerateWord(i, i+1, Feature{}, 0, "")
	}
}
