package loader

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/cznic/kv"
)

// KVSource wraps a FileSource with a github.com/cznic/kv B+-tree cache of
// the parsed rows, keyed by "<path>:<size>:<mtime-unixnano>" so a second
// process pointed at the same data directory skips the text parse and
// re-reads only the gob-encoded rows.
type KVSource struct {
	files *FileSource
	db    *kv.DB
}

// NewKVSource opens (or creates) the cache database at cachePath and wraps
// a FileSource rooted at dataDir.
func NewKVSource(dataDir, cachePath string) (*KVSource, error) {
	db, err := openOrCreateKV(cachePath)
	if err != nil {
		return nil, fmt.Errorf("loader: open kv cache %q: %w", cachePath, err)
	}
	return &KVSource{files: NewFileSource(dataDir), db: db}, nil
}

func openOrCreateKV(path string) (*kv.DB, error) {
	db, err := kv.Open(path, &kv.Options{})
	if err != nil {
		return kv.Create(path, &kv.Options{})
	}
	return db, nil
}

func (s *KVSource) cacheKey(name, ext string) ([]byte, error) {
	path := s.files.path(name, ext)
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("%s:%d:%d", path, info.Size(), info.ModTime().UnixNano())), nil
}

func (s *KVSource) LoadDict(name string) ([]DictEntry, error) {
	key, err := s.cacheKey(name, ".dct")
	if err != nil {
		return nil, fmt.Errorf("loader: stat dict %q: %w", name, err)
	}
	if cached, err := s.db.Get(nil, key); err == nil && cached != nil {
		var rows []DictEntry
		if decErr := gob.NewDecoder(bytes.NewReader(cached)).Decode(&rows); decErr == nil {
			return rows, nil
		}
	}
	rows, err := s.files.LoadDict(name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rows); err == nil {
		s.db.Set(key, buf.Bytes())
	}
	return rows, nil
}

func (s *KVSource) LoadBigram(name string) ([]BigramEntry, error) {
	key, err := s.cacheKey(name, ".dct")
	if err != nil {
		return nil, fmt.Errorf("loader: stat bigram %q: %w", name, err)
	}
	if cached, err := s.db.Get(nil, key); err == nil && cached != nil {
		var rows []BigramEntry
		if decErr := gob.NewDecoder(bytes.NewReader(cached)).Decode(&rows); decErr == nil {
			return rows, nil
		}
	}
	rows, err := s.files.LoadBigram(name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rows); err == nil {
		s.db.Set(key, buf.Bytes())
	}
	return rows, nil
}

func (s *KVSource) LoadContext(name string) (ContextData, error) {
	key, err := s.cacheKey(name, ".ctx")
	if err != nil {
		return ContextData{}, fmt.Errorf("loader: stat context %q: %w", name, err)
	}
	if cached, err := s.db.Get(nil, key); err == nil && cached != nil {
		var data ContextData
		if decErr := gob.NewDecoder(bytes.NewReader(cached)).Decode(&data); decErr == nil {
			return data, nil
		}
	}
	data, err := s.files.LoadContext(name)
	if err != nil {
		return ContextData{}, err
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(data); err == nil {
		s.db.Set(key, buf.Bytes())
	}
	return data, nil
}

func (s *KVSource) Close() error {
	return s.db.Close()
}
