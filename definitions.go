// Package hanseg implements a Chinese word segmenter with part-of-speech
// tagging, modelled after the ICTCLAS / NShort-path family: dictionary-seeded
// word lattice, bigram-weighted k-shortest-paths, HMM-Viterbi OOV detection
// and HMM-Viterbi POS tagging.
package hanseg

import "strconv"

// Sentinel atoms/words that bracket every sentence lattice.
const (
	SentenceBegin = "始##始"
	SentenceEnd   = "末##末"
)

// OOV alias placeholders. Regular dictionary words alias to themselves;
// these let the HMM contexts generalise over sparse literal names/numbers.
const (
	OOVWordNR = "未##人" // merged person name
	OOVWordNS = "未##地" // merged location name
	OOVWordNX = "未##串" // out-of-vocabulary letter run
	OOVWordM  = "未##数" // out-of-vocabulary digit run
)

const wordSegmenter = "@" // bigram key joiner: "prev@next"

// Sentence/sub-sentence delimiter sets. Sentence splitting keeps the
// delimiter with the left sentence.
const (
	sepCSentence    = "。！？：；…"
	sepCSubSentence = "、，（）“”‘’"
	sepESentence    = "!?:;"
	sepESubSentence = ",()'\""
)

// Character-class tags produced by the atomiser (CT_*). Codes 1..20 are
// reserved for character classes and must never collide with a real POS
// code, which is why matches whose sole POS falls in (0,256) are filtered
// out of the dictionary lookup (see matchWords).
const (
	CTSentenceBegin = 1
	CTSentenceEnd   = 4
	CTDelimiter     = 6
	CTChinese       = 7
	CTLetter        = 8
	CTNum           = 9
)

// MaxFrequency is the global frequency normaliser used throughout the
// bigram-weight and OOV-weight formulas.
const MaxFrequency = 2079997

// nrPatterns is the fixed, ordered list of role-string patterns tried for
// the "nr" (person name) OOV pass. First match wins.
var nrPatterns = []string{
	"BBCD", "BBC", "BBE", "BBZ", "BCD", "BEE", "BE", "BG",
	"BXD", "BZ", "CD", "EE", "FB", "Y", "XD",
}

// nrFactor is the fixed per-pattern weighting factor for the "nr" pass.
var nrFactor = map[string]float64{
	"BBCD": 0.003606, "BBC": 0.000021, "BBE": 0.001314, "BBZ": 0.000315,
	"BCD": 0.656624, "BEE": 0.000021, "BE": 0.146116, "BG": 0.009136,
	"BXD": 0.000042, "BZ": 0.038971, "CD": 0.090367, "EE": 0.000273,
	"FB": 0.009157, "Y": 0.034324, "XD": 0.009735,
}

// FeatureKind distinguishes the numeric ranges a POS-code can fall into, per
// the design note that a bare int invites misuse across those ranges.
type FeatureKind int

const (
	// KindAmbiguous marks code 0: aggregate/ambiguous across POS.
	KindAmbiguous FeatureKind = iota
	// KindCharClass marks a code <= 20: one of the CT_* character classes.
	KindCharClass
	// KindUseWordFeature marks code 2: "use the word's own feature" (the
	// POS tagger substitutes word.Feature.Code for state 2 lookups).
	KindUseWordFeature
	// KindPOS marks any code above 20; an ordinary encoded 1-or-2 character
	// POS tag is always >= 256.
	KindPOS
)

// Feature wraps a POS-code int with its kind, so callers don't have to
// remember which numeric range means what.
type Feature struct {
	Code int
}

// NewFeatureFromTag encodes a 1- or 2-character POS tag string into a Feature.
func NewFeatureFromTag(tag string) Feature {
	return Feature{Code: EncodePOS(tag)}
}

// Kind classifies the Feature's code into one of the four POS-code ranges.
func (f Feature) Kind() FeatureKind {
	switch {
	case f.Code == 0:
		return KindAmbiguous
	case f.Code == 2:
		return KindUseWordFeature
	case f.Code <= 20:
		return KindCharClass
	default:
		return KindPOS
	}
}

// Tag decodes the Feature back into its POS tag string.
func (f Feature) Tag() string {
	return DecodePOS(f.Code)
}

// EncodePOS packs a 1- or 2-character POS tag into its integer code:
// ord(c1)*256 + (c2 ? ord(c2) : 0).
func EncodePOS(tag string) int {
	switch len(tag) {
	case 1:
		return int(tag[0]) * 256
	case 2:
		return int(tag[0])*256 + int(tag[1])
	default:
		return 0
	}
}

// DecodePOS is the inverse of EncodePOS; a byte < 65 is dropped rather
// than emitted. A code below 256 is not an encoded tag and is returned as
// its decimal number.
func DecodePOS(code int) string {
	if code < 256 {
		return strconv.Itoa(code)
	}
	b1, b2 := code/256, code%256
	var out []byte
	if b1 >= 65 {
		out = append(out, byte(b1))
	}
	if b2 >= 65 {
		out = append(out, byte(b2))
	}
	return string(out)
}
