package hanseg

import "testing"

// TestViterbiHealthyFever reproduces the canonical Healthy/Fever Viterbi
// worked example: three days of symptom observations ("normal", "cold",
// "dizzy") decode to the diagnosis Healthy, Healthy, Fever.
func TestViterbiHealthyFever(t *testing.T) {
	const (
		healthy = 0
		fever   = 1
	)
	states := []int{healthy, fever}
	startProb := map[int]float64{healthy: 0.6, fever: 0.4}
	transProb := map[int]map[int]float64{
		healthy: {healthy: 0.7, fever: 0.3},
		fever:   {healthy: 0.4, fever: 0.6},
	}

	model := NewHMMModel(states, startProb, transProb)
	// observations: normal, cold, dizzy
	obs := []string{"normal", "cold", "dizzy"}
	for _, o := range obs {
		model.AddObservation(o)
	}
	model.SetEmission(healthy, "normal", 0.5)
	model.SetEmission(healthy, "cold", 0.4)
	model.SetEmission(healthy, "dizzy", 0.1)
	model.SetEmission(fever, "normal", 0.1)
	model.SetEmission(fever, "cold", 0.3)
	model.SetEmission(fever, "dizzy", 0.6)

	prob, path := Viterbi(model)

	const wantProb = 0.01512
	if diff := prob - wantProb; diff > 1e-5 || diff < -1e-5 {
		t.Errorf("Viterbi probability = %v, want %v", prob, wantProb)
	}

	wantPath := []int{healthy, healthy, fever}
	if len(path) != len(wantPath) {
		t.Fatalf("Viterbi path = %v, want %v", path, wantPath)
	}
	for i := range path {
		if path[i] != wantPath[i] {
			t.Errorf("Viterbi path[%d] = %d, want %d (full path %v)", i, path[i], wantPath[i], path)
		}
	}
}

func TestViterbiEmptyObservations(t *testing.T) {
	model := NewHMMModel([]int{0, 1}, map[int]float64{0: 0.5, 1: 0.5}, map[int]map[int]float64{})
	prob, path := Viterbi(model)
	if prob != 0 || path != nil {
		t.Errorf("Viterbi with no observations = (%v, %v), want (0, nil)", prob, path)
	}
}
