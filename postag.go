package hanseg

// tagPOS runs Viterbi over the candidate's word aliases using the lexical
// HMM context and the core dictionary, and returns the raw decoded
// POS-code sequence. The POS-2 substitution happens only while building
// the emission table (see generatePOSHMMModel), never on the decoded tags.
func tagPOS(cand Candidate, core *Dictionary, lexical *Context) []Feature {
	model := generatePOSHMMModel(cand, core, lexical)
	_, path := Viterbi(model)

	out := make([]Feature, len(path))
	for i, p := range path {
		out[i] = Feature{Code: p}
	}
	return out
}

// generatePOSHMMModel builds the observation sequence (word aliases) and
// emission table for the lexical HMM, following the same
// pre-fill-then-overwrite pattern as the OOV passes: every (state, alias)
// starts at the
// smoothing fallback, then real dictionary rows for that alias overwrite
// it, substituting p* = word.Feature.Code wherever the row's own POS
// field is 2 ("use the word's own feature").
func generatePOSHMMModel(cand Candidate, core *Dictionary, lexical *Context) *HMMModel {
	const a = 0.1
	model := NewHMMModel(lexical.States, lexical.StartProb, lexical.TransitionProb)

	for _, w := range cand.Words {
		model.AddObservation(w.Alias)

		for _, state := range lexical.States {
			model.SetEmission(state, w.Alias, a*1/float64(lexical.TotalFreq))
		}

		for _, e := range core.Get(w.Alias) {
			pos := e.POS
			if pos == 2 {
				pos = w.Feature.Code
			}
			stateFreq := max(lexical.StateFreq[pos], 1)
			model.SetEmission(pos, w.Alias,
				(1-a)*(float64(e.Freq)+0.1)/float64(stateFreq)+a*1/float64(lexical.TotalFreq))
		}
	}
	return model
}
