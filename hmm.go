package hanseg

// HMMModel holds a fresh hidden Markov model built for one tagging call
// (OOV role-tagging or POS tagging). Emission tables are mutable, so every
// pass builds one of these from scratch and discards it rather than
// sharing across calls.
type HMMModel struct {
	States         []int
	Observations   []string
	StartProb      map[int]float64
	TransitionProb map[int]map[int]float64
	EmissionProb   map[int]map[string]float64
}

// NewHMMModel returns an HMMModel with the given states/start/transition
// probabilities and an empty emission table and observation sequence.
func NewHMMModel(states []int, startProb map[int]float64, transProb map[int]map[int]float64) *HMMModel {
	return &HMMModel{
		States:         states,
		StartProb:      startProb,
		TransitionProb: transProb,
		EmissionProb:   make(map[int]map[string]float64),
	}
}

// AddObservation appends one observation to the model's sequence.
func (m *HMMModel) AddObservation(obs string) {
	m.Observations = append(m.Observations, obs)
}

// SetEmission records P(obs | state). Later calls for the same (state, obs)
// overwrite earlier ones, implementing the "pre-fill with the smoothing
// fallback, then overwrite with real data" pattern used by both the OOV
// detector and the POS tagger.
func (m *HMMModel) SetEmission(state int, obs string, prob float64) {
	row, ok := m.EmissionProb[state]
	if !ok {
		row = make(map[string]float64)
		m.EmissionProb[state] = row
	}
	row[obs] = prob
}

// Viterbi runs the standard discrete HMM decoder over the model's
// observation sequence. The caller must have pre-filled every
// (state, observation) emission and every (state, state) transition it
// will need; this decoder performs no fallback arithmetic of its own, and
// a genuinely missing entry is read as 0.
func Viterbi(model *HMMModel) (float64, []int) {
	obs := model.Observations
	states := model.States
	if len(obs) == 0 || len(states) == 0 {
		return 0, nil
	}

	v := make([]map[int]float64, len(obs))
	path := make(map[int][]int, len(states))

	v[0] = make(map[int]float64, len(states))
	for _, s := range states {
		v[0][s] = model.StartProb[s] * model.EmissionProb[s][obs[0]]
		path[s] = []int{s}
	}

	for t := 1; t < len(obs); t++ {
		v[t] = make(map[int]float64, len(states))
		newPath := make(map[int][]int, len(states))
		for _, s := range states {
			bestProb, bestPrev := -1.0, states[0]
			for _, prev := range states {
				prob := v[t-1][prev] * model.TransitionProb[prev][s] * model.EmissionProb[s][obs[t]]
				if prob > bestProb {
					bestProb, bestPrev = prob, prev
				}
			}
			v[t][s] = bestProb
			newPath[s] = append(append([]int{}, path[bestPrev]...), s)
		}
		path = newPath
	}

	last := len(obs) - 1
	bestProb, bestState := -1.0, states[0]
	for _, s := range states {
		if v[last][s] > bestProb {
			bestProb, bestState = v[last][s], s
		}
	}
	return bestProb, path[bestState]
}
