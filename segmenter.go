package hanseg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aosen/hanseg/loader"
	"github.com/aosen/hanseg/ranker"
	"github.com/aosen/hanseg/scorer"
)

// ErrInternalInconsistency is returned when the word-DAG cannot reach its
// terminal node after the matcher's single-atom fallback should have made
// that impossible.
var ErrInternalInconsistency = errors.New("hanseg: internal inconsistency: word lattice has no path to sentence end")

// Token is one (word, POS tag) pair of a finished segmentation.
type Token struct {
	Word string
	POS  string
}

// Result is the ordered token sequence produced by Process/ProcessSentence,
// with the SENTENCE_BEGIN/SENTENCE_END sentinels already stripped.
type Result struct {
	Tokens []Token
}

// Segmenter is the C10 pipeline orchestrator: segment -> detect OOV ->
// re-segment -> tag -> rescore -> pick best, for one sentence at a time.
// A Segmenter is safe for concurrent use once built: its DataStore is
// read-only and every call allocates its own WordsGraph and HMM tables.
type Segmenter struct {
	store     *DataStore
	scoreMode scorer.ScoreMode
	topK      int
	scorer    scorer.CandidateScorer
	ranker    *ranker.WuKongRanker

	nr, tr, ns *oovPass
}

// Option configures a Segmenter at construction time.
type Option func(*Segmenter)

// WithScoreMode selects between the reproduced scoring bug (ScoreCompat,
// the default) and the corrected rolling-max seed (ScoreCorrected).
func WithScoreMode(mode scorer.ScoreMode) Option {
	return func(s *Segmenter) { s.scoreMode = mode }
}

// WithTopK overrides the number of candidates Process/ProcessSentence
// enumerate before rescoring (default 1).
func WithTopK(k int) Option {
	return func(s *Segmenter) {
		if k > 0 {
			s.topK = k
		}
	}
}

// NewSegmenter loads a DataStore from dataDir via loader.FileSource and
// returns a ready-to-use Segmenter.
func NewSegmenter(dataDir string, opts ...Option) (*Segmenter, error) {
	return NewSegmenterFrom(loader.NewFileSource(dataDir), opts...)
}

// NewSegmenterFrom is the general entry point for any loader.DataSource
// (FileSource, KVSource, MongoSource, MySQLSource).
func NewSegmenterFrom(source loader.DataSource, opts ...Option) (*Segmenter, error) {
	store := NewDataStore()
	if err := store.LoadFrom(source); err != nil {
		return nil, err
	}

	s := &Segmenter{
		store:  store,
		topK:   1,
		scorer: scorer.NewDefaultScorer(),
		ranker: ranker.NewWuKongRanker(),
		nr:     &oovPass{kind: "nr", dict: store.NR, ctx: store.NRCtx, alias: OOVWordNR},
		tr:     &oovPass{kind: "tr", dict: store.TR, ctx: store.TRCtx, alias: OOVWordNR},
		ns:     &oovPass{kind: "ns", dict: store.NS, ctx: store.NSCtx, alias: OOVWordNS},
	}
	s.ranker.Init()
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Process splits text into sentences on the delimiter set "。！？：；…"
// (the delimiter is kept with the left sentence), processes each with the
// Segmenter's configured top-K, and concatenates the results in order.
func (s *Segmenter) Process(text string) (Result, error) {
	var out Result
	for _, sentence := range splitSentences(text) {
		r, err := s.processWithK(sentence, s.topK)
		if err != nil {
			return Result{}, err
		}
		out.Tokens = append(out.Tokens, r.Tokens...)
	}
	return out, nil
}

// ProcessSentence segments and tags a single sentence with the
// Segmenter's configured top-K.
func (s *Segmenter) ProcessSentence(sentence string) (Result, error) {
	return s.processWithK(sentence, s.topK)
}

// topCandidates runs the full segment/detect-OOV/re-segment pipeline and
// returns the top-k candidates without tagging or rescoring.
func (s *Segmenter) topCandidates(sentence string, k int) ([]Candidate, error) {
	g, err := s.buildLattice(sentence)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, nil
	}
	candidates := g.TopCandidates(k)
	if len(candidates) == 0 {
		return nil, ErrInternalInconsistency
	}
	return candidates, nil
}

func (s *Segmenter) buildLattice(sentence string) (g *WordsGraph, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternalInconsistency, r)
		}
	}()

	g = NewWordsGraph()
	atomize(g, sentence)
	if len(g.Atoms) <= 2 {
		// No non-sentinel atoms: the caller gets an empty result, not an
		// error, so signal it via a nil graph.
		return nil, nil
	}
	matchWords(g, s.store.Core)
	detectOOV(g, s.store.Bigram, s.store.Core, s.nr, s.tr, s.ns)
	g.GenerateWordsDag(s.store.Bigram)
	if !g.Reachable() {
		panic("word lattice unreachable after matcher fallback")
	}
	return g, nil
}

// processWithK runs the full pipeline and rescoring selection for one
// sentence at the given top-K.
func (s *Segmenter) processWithK(sentence string, k int) (Result, error) {
	g, err := s.buildLattice(sentence)
	if err != nil {
		return Result{}, err
	}
	if g == nil {
		return Result{}, nil
	}

	candidates := g.TopCandidates(k)
	if len(candidates) == 0 {
		return Result{}, ErrInternalInconsistency
	}

	taggedTags := make([][]Feature, len(candidates))
	scores := make([]float64, len(candidates))
	for i, cand := range candidates {
		tags := tagPOS(cand, s.store.Core, s.store.Lexical)
		taggedTags[i] = tags

		words := make([]scorer.ScoredWord, len(cand.Words))
		for j, w := range cand.Words {
			words[j] = scorer.ScoredWord{Weight: w.Weight, TagCode: tags[j].Code}
		}
		scores[i] = s.scorer.Score(words, s.store.Lexical.TransitionProb, s.store.Lexical.StartProb)
	}

	mode := s.scoreMode
	bestIdx, ok := s.ranker.Rank(scores, mode.InitialBest(), mode.Improves)
	if !ok {
		bestIdx = 0
	}

	best := candidates[bestIdx]
	tags := taggedTags[bestIdx]
	return Result{Tokens: stripSentinels(best, tags)}, nil
}

// stripSentinels converts a tagged candidate into a Token list, dropping
// the leading SENTENCE_BEGIN and trailing SENTENCE_END words.
func stripSentinels(cand Candidate, tags []Feature) []Token {
	var out []Token
	for i, w := range cand.Words {
		if w.Content == SentenceBegin || w.Content == SentenceEnd {
			continue
		}
		out = append(out, Token{Word: w.Content, POS: tags[i].Tag()})
	}
	return out
}

// splitSentences splits text on the sentence delimiter set "。！？：；…",
// keeping the delimiter attached to the sentence on its left, and drops
// any trailing empty fragment.
func splitSentences(text string) []string {
	var out []string
	var cur strings.Builder
	for _, r := range text {
		cur.WriteRune(r)
		if strings.ContainsRune(sepCSentence, r) {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

// FormatResult renders a Result as "w/p w/p …".
func FormatResult(r Result) string {
	parts := make([]string, len(r.Tokens))
	for i, t := range r.Tokens {
		parts[i] = t.Word + "/" + t.POS
	}
	return strings.Join(parts, " ")
}
