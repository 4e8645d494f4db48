package cache

import (
	"compress/gzip"
	"encoding/gob"
	"os"
)

// FlatFile is a Store backed by a single gob-serialized, gzip-compressed
// blob loaded wholesale into memory at open time. Suited to small baked
// sets where startup cost does not matter; for large sets prefer the
// indexed Badger store.
type FlatFile struct {
	entries map[string][]byte
}

// OpenFlatFile loads a baked flat-file store. A missing, truncated, or
// corrupt file returns *IOError.
func OpenFlatFile(path string) (*FlatFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer zr.Close()

	var entries map[string][]byte
	if err := gob.NewDecoder(zr).Decode(&entries); err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return &FlatFile{entries: entries}, nil
}

// Get returns the blob for key. Reads are lock-free: the map is never
// mutated after load.
func (s *FlatFile) Get(key string) ([]byte, bool, error) {
	data, ok := s.entries[key]
	return data, ok, nil
}

// Len returns the number of baked entries.
func (s *FlatFile) Len() int { return len(s.entries) }

// Close releases the store. A flat file holds no open resources after load.
func (s *FlatFile) Close() error { return nil }

// WriteFlatFile bakes entries into the flat-file format read by
// OpenFlatFile. Used by the bake tool, never by the interactive path.
func WriteFlatFile(path string, entries map[string][]byte) error {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Path: path, Err: err}
	}
	zw := gzip.NewWriter(f)
	if err := gob.NewEncoder(zw).Encode(entries); err != nil {
		f.Close()
		return &IOError{Path: path, Err: err}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return &IOError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Path: path, Err: err}
	}
	return nil
}
