package hanseg

// Context is an HMM context: states, smoothed start/transition
// probabilities, and per-state totals. Loaded once at startup and never
// mutated. Populated by DataStore.LoadFrom via the loader package, which
// owns the on-disk .ctx parsing.
type Context struct {
	States         []int
	TotalFreq      int
	StateFreq      map[int]int
	StartProb      map[int]float64
	TransitionProb map[int]map[int]float64
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{
		StateFreq:      make(map[int]int),
		StartProb:      make(map[int]float64),
		TransitionProb: make(map[int]map[int]float64),
	}
}

// ProbToFrequency converts a start probability back into a frequency by
// multiplying by (TotalFreq + number of states); for an add-one-smoothed
// start probability that gives the state frequency plus one. Used by the
// OOV pattern-weight formula.
func (c *Context) ProbToFrequency(prob float64) float64 {
	return prob * float64(c.TotalFreq+len(c.States))
}

