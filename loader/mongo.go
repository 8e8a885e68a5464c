package loader

import (
	"fmt"
	"strconv"

	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// atoiMust parses an int-keyed map's string key back into an int. The
// context documents' map keys are decimal state codes, so a parse failure
// means the stored document is corrupt.
func atoiMust(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		panic("loader: corrupt mongo context key " + s)
	}
	return v
}

// mongoDictRow/mongoBigramRow/mongoContextRow are the document shapes
// stored per collection; Source distinguishes which of coreDict/nr/ns/tr
// a dictionary or bigram row belongs to: one collection per row shape,
// partitioned by Source.
type mongoDictRow struct {
	Source string `bson:"source"`
	Word   string `bson:"word"`
	Freq   int    `bson:"freq"`
	POS    int    `bson:"pos"`
}

type mongoBigramRow struct {
	Source string `bson:"source"`
	Prev   string `bson:"prev"`
	Next   string `bson:"next"`
	Freq   int    `bson:"freq"`
}

type mongoContextRow struct {
	Source         string                    `bson:"source"`
	States         []int                     `bson:"states"`
	TotalFreq      int                       `bson:"total_freq"`
	StateFreq      map[string]int            `bson:"state_freq"`
	TransitionFreq map[string]map[string]int `bson:"transition_freq"`
}

// MongoSource reads the same three row shapes from MongoDB collections
// ("dict", "bigram", "context").
type MongoSource struct {
	session *mgo.Session
	dbName  string
}

// NewMongoSource dials url and selects database dbName.
func NewMongoSource(url, dbName string) (*MongoSource, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("loader: dial mongodb: %w", err)
	}
	if err := session.Ping(); err != nil {
		session.Close()
		return nil, fmt.Errorf("loader: ping mongodb: %w", err)
	}
	session.SetMode(mgo.Monotonic, true)
	return &MongoSource{session: session, dbName: dbName}, nil
}

func (s *MongoSource) LoadDict(name string) ([]DictEntry, error) {
	c := s.session.DB(s.dbName).C("dict")
	var rows []mongoDictRow
	if err := c.Find(bson.M{"source": name}).All(&rows); err != nil {
		return nil, fmt.Errorf("loader: mongo load dict %q: %w", name, err)
	}
	out := make([]DictEntry, len(rows))
	for i, r := range rows {
		out[i] = DictEntry{Word: r.Word, Freq: r.Freq, POS: r.POS}
	}
	return out, nil
}

func (s *MongoSource) LoadBigram(name string) ([]BigramEntry, error) {
	c := s.session.DB(s.dbName).C("bigram")
	var rows []mongoBigramRow
	if err := c.Find(bson.M{"source": name}).All(&rows); err != nil {
		return nil, fmt.Errorf("loader: mongo load bigram %q: %w", name, err)
	}
	out := make([]BigramEntry, len(rows))
	for i, r := range rows {
		out[i] = BigramEntry{Prev: r.Prev, Next: r.Next, Freq: r.Freq}
	}
	return out, nil
}

func (s *MongoSource) LoadContext(name string) (ContextData, error) {
	c := s.session.DB(s.dbName).C("context")
	var row mongoContextRow
	if err := c.Find(bson.M{"source": name}).One(&row); err != nil {
		return ContextData{}, fmt.Errorf("loader: mongo load context %q: %w", name, err)
	}
	stateFreq := make(map[int]int, len(row.StateFreq))
	for k, v := range row.StateFreq {
		stateFreq[atoiMust(k)] = v
	}
	transFreq := make(map[int]map[int]int, len(row.TransitionFreq))
	for k, inner := range row.TransitionFreq {
		row := make(map[int]int, len(inner))
		for k2, v := range inner {
			row[atoiMust(k2)] = v
		}
		transFreq[atoiMust(k)] = row
	}
	return ContextData{
		States:         row.States,
		TotalFreq:      row.TotalFreq,
		StateFreq:      stateFreq,
		TransitionFreq: transFreq,
	}, nil
}

func (s *MongoSource) Close() error {
	s.session.Close()
	return nil
}
