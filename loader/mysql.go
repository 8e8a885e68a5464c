package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/astaxie/beego/orm"
)

// mysqlDictRow/mysqlBigramRow/mysqlContextRow are the ORM-registered
// models: one table per row shape, partitioned by Source.
type mysqlDictRow struct {
	Id     int
	Source string `orm:"size(16)"`
	Word   string `orm:"size(64)"`
	Freq   int
	POS    int
}

type mysqlBigramRow struct {
	Id     int
	Source string `orm:"size(16)"`
	Prev   string `orm:"size(64)"`
	Next   string `orm:"size(64)"`
	Freq   int
}

type mysqlContextRow struct {
	Id             int
	Source         string `orm:"size(16);unique"`
	States         string `orm:"type(text)"` // space-separated ints
	TotalFreq      int
	StateFreq      string `orm:"type(text)"` // "state:freq state:freq ..."
	TransitionFreq string `orm:"type(text)"` // "statei,statej:count ..."
}

// MySQLSource reads the same three row shapes from SQL tables via
// github.com/astaxie/beego/orm.
type MySQLSource struct {
	alias string
}

var mysqlRegistered = map[string]bool{}

// NewMySQLSource registers dbinfo (a beego/orm driver DSN) under a unique
// alias and ensures the three tables exist.
func NewMySQLSource(alias, dbinfo string) (*MySQLSource, error) {
	if !mysqlRegistered[alias] {
		orm.RegisterDriver("mysql", orm.DRMySQL)
		if err := orm.RegisterDataBase(alias, "mysql", dbinfo); err != nil {
			return nil, fmt.Errorf("loader: register mysql database: %w", err)
		}
		orm.RegisterModel(new(mysqlDictRow), new(mysqlBigramRow), new(mysqlContextRow))
		if err := orm.RunSyncdb(alias, false, false); err != nil {
			return nil, fmt.Errorf("loader: sync mysql tables: %w", err)
		}
		mysqlRegistered[alias] = true
	}
	return &MySQLSource{alias: alias}, nil
}

func (s *MySQLSource) orm() orm.Ormer {
	o := orm.NewOrm()
	o.Using(s.alias)
	return o
}

func (s *MySQLSource) LoadDict(name string) ([]DictEntry, error) {
	var rows []mysqlDictRow
	if _, err := s.orm().QueryTable(new(mysqlDictRow)).Filter("Source", name).All(&rows); err != nil {
		return nil, fmt.Errorf("loader: mysql load dict %q: %w", name, err)
	}
	out := make([]DictEntry, len(rows))
	for i, r := range rows {
		out[i] = DictEntry{Word: r.Word, Freq: r.Freq, POS: r.POS}
	}
	return out, nil
}

func (s *MySQLSource) LoadBigram(name string) ([]BigramEntry, error) {
	var rows []mysqlBigramRow
	if _, err := s.orm().QueryTable(new(mysqlBigramRow)).Filter("Source", name).All(&rows); err != nil {
		return nil, fmt.Errorf("loader: mysql load bigram %q: %w", name, err)
	}
	out := make([]BigramEntry, len(rows))
	for i, r := range rows {
		out[i] = BigramEntry{Prev: r.Prev, Next: r.Next, Freq: r.Freq}
	}
	return out, nil
}

func (s *MySQLSource) LoadContext(name string) (ContextData, error) {
	var row mysqlContextRow
	if err := s.orm().QueryTable(new(mysqlContextRow)).Filter("Source", name).One(&row); err != nil {
		return ContextData{}, fmt.Errorf("loader: mysql load context %q: %w", name, err)
	}

	var states []int
	for _, f := range strings.Fields(row.States) {
		v, err := strconv.Atoi(f)
		if err != nil {
			return ContextData{}, fmt.Errorf("loader: mysql context %q: bad state %q", name, f)
		}
		states = append(states, v)
	}

	stateFreq := make(map[int]int, len(states))
	for _, pair := range strings.Fields(row.StateFreq) {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			continue
		}
		k, _ := strconv.Atoi(kv[0])
		v, _ := strconv.Atoi(kv[1])
		stateFreq[k] = v
	}

	transFreq := make(map[int]map[int]int, len(states))
	for _, entry := range strings.Fields(row.TransitionFreq) {
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			continue
		}
		pair := strings.SplitN(parts[0], ",", 2)
		if len(pair) != 2 {
			continue
		}
		i, _ := strconv.Atoi(pair[0])
		j, _ := strconv.Atoi(pair[1])
		count, _ := strconv.Atoi(parts[1])
		if transFreq[i] == nil {
			transFreq[i] = map[int]int{}
		}
		transFreq[i][j] = count
	}

	return ContextData{
		States:         states,
		TotalFreq:      row.TotalFreq,
		StateFreq:      stateFreq,
		TransitionFreq: transFreq,
	}, nil
}

func (s *MySQLSource) Close() error { return nil }
