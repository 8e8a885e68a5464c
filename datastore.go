package hanseg

import (
	"fmt"

	"github.com/aosen/hanseg/loader"
)

// DataStore holds every dictionary, bigram map, and HMM context a
// Segmenter needs, built once at startup and never mutated afterwards.
// Backed by a pluggable loader.DataSource rather than a fixed file path.
type DataStore struct {
	Core *Dictionary
	NR   *Dictionary
	NS   *Dictionary
	TR   *Dictionary

	Bigram BiDictionary

	Lexical *Context
	NRCtx   *Context
	NSCtx   *Context
	TRCtx   *Context
}

// NewDataStore returns an empty DataStore ready for Load/LoadFrom.
func NewDataStore() *DataStore {
	return &DataStore{Bigram: BiDictionary{}}
}

// Load populates the DataStore from the standard on-disk layout rooted at
// dataDir ("coreDict.dct", "nr.dct", "ns.dct", "tr.dct", "bigramDict.dct",
// "lexical.ctx", "nr.ctx", "ns.ctx", "tr.ctx").
func (ds *DataStore) Load(dataDir string) error {
	return ds.LoadFrom(loader.NewFileSource(dataDir))
}

// LoadFrom populates the DataStore from any DataSource, closing it when
// done regardless of outcome.
func (ds *DataStore) LoadFrom(source loader.DataSource) error {
	defer source.Close()

	var err error
	if ds.Core, err = buildDictionary(source, "coreDict"); err != nil {
		return err
	}
	if ds.NR, err = buildDictionary(source, "nr"); err != nil {
		return err
	}
	if ds.NS, err = buildDictionary(source, "ns"); err != nil {
		return err
	}
	if ds.TR, err = buildDictionary(source, "tr"); err != nil {
		return err
	}
	if ds.Bigram, err = buildBigram(source, "bigramDict"); err != nil {
		return err
	}
	if ds.Lexical, err = buildContext(source, "lexical"); err != nil {
		return err
	}
	if ds.NRCtx, err = buildContext(source, "nr"); err != nil {
		return err
	}
	if ds.NSCtx, err = buildContext(source, "ns"); err != nil {
		return err
	}
	if ds.TRCtx, err = buildContext(source, "tr"); err != nil {
		return err
	}
	return nil
}

func buildDictionary(source loader.DataSource, name string) (*Dictionary, error) {
	rows, err := source.LoadDict(name)
	if err != nil {
		return nil, fmt.Errorf("hanseg: load dictionary %q: %w", name, err)
	}
	d := NewDictionary()
	for _, r := range rows {
		d.Add(r.Word, r.Freq, r.POS)
	}
	return d, nil
}

func buildBigram(source loader.DataSource, name string) (BiDictionary, error) {
	rows, err := source.LoadBigram(name)
	if err != nil {
		return nil, fmt.Errorf("hanseg: load bigram dictionary %q: %w", name, err)
	}
	b := BiDictionary{}
	for _, r := range rows {
		b[r.Prev+wordSegmenter+r.Next] = r.Freq
	}
	return b, nil
}

func buildContext(source loader.DataSource, name string) (*Context, error) {
	data, err := source.LoadContext(name)
	if err != nil {
		return nil, fmt.Errorf("hanseg: load context %q: %w", name, err)
	}
	c := NewContext()
	c.States = data.States
	c.TotalFreq = data.TotalFreq
	n := len(data.States)

	for _, state := range data.States {
		freq := data.StateFreq[state]
		c.StateFreq[state] = freq
		c.StartProb[state] = float64(freq+1) / float64(data.TotalFreq+n)
	}
	for _, stateI := range data.States {
		freqI := c.StateFreq[stateI]
		row := make(map[int]float64, n)
		for _, stateJ := range data.States {
			count := data.TransitionFreq[stateI][stateJ]
			if freqI == 0 {
				row[stateJ] = 0
				continue
			}
			row[stateJ] = (1-0.1)*float64(count)/float64(freqI) + 0.1*float64(freqI)/float64(data.TotalFreq)
		}
		c.TransitionProb[stateI] = row
	}
	return c, nil
}
