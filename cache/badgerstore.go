package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
)

// Key layout inside the Badger store. Entries live under entryPrefix keyed
// by the canonical cache key; paramPrefix holds a secondary index over the
// parameter columns for range queries by the bake tooling.
const (
	entryPrefix = "ent|"
	paramPrefix = "idx|"
)

// EntryMeta is the indexed header baked next to each entry blob.
type EntryMeta struct {
	AngleStart   float64
	AngleEnd     float64
	SampleCount  int
	BoundedCount int
}

func (m EntryMeta) indexKey(cacheKey string) []byte {
	var b strings.Builder
	b.WriteString(paramPrefix)
	b.WriteString(strconv.FormatFloat(m.AngleStart, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(m.AngleEnd, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(m.SampleCount))
	b.WriteByte('|')
	b.WriteString(cacheKey)
	return []byte(b.String())
}

// BadgerStore is a Store backed by an embedded Badger database, queried by
// exact cache key through a connection held open for the session's
// lifetime. The interactive path opens it read-only; only the bake tooling
// opens it writable.
type BadgerStore struct {
	db   *badger.DB
	path string
}

// OpenBadger opens a baked store read-only. Failures (missing directory,
// corrupt manifest) return *IOError so the caller can degrade to
// memory-only caching.
func OpenBadger(path string, logger *slog.Logger) (*BadgerStore, error) {
	return openBadger(path, true, logger)
}

// OpenBadgerWritable opens (or creates) a store for baking.
func OpenBadgerWritable(path string, logger *slog.Logger) (*BadgerStore, error) {
	return openBadger(path, false, logger)
}

func openBadger(path string, readOnly bool, logger *slog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(readOnly).
		WithLogger(badgerLogger{logger})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return &BadgerStore{db: db, path: path}, nil
}

// Get returns the blob stored under the exact cache key. Concurrent reads
// are safe; the store is append-only and read-only in interactive use.
func (s *BadgerStore) Get(key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(entryPrefix + key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &IOError{Path: s.path, Err: err}
	}
	return data, true, nil
}

// Set bakes one entry and its parameter-index row. Only valid on a
// writable store.
func (s *BadgerStore) Set(key string, meta EntryMeta, data []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(entryPrefix+key), data); err != nil {
			return err
		}
		return txn.Set(meta.indexKey(key), []byte(strconv.Itoa(meta.BoundedCount)))
	})
	if err != nil {
		return &IOError{Path: s.path, Err: err}
	}
	return nil
}

// Keys returns every baked cache key, via the entry prefix. Intended for
// bake-tool inspection, not the hot path.
func (s *BadgerStore) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte(entryPrefix)})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().Key()[len(entryPrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, &IOError{Path: s.path, Err: err}
	}
	return keys, nil
}

// Close releases the database. Safe to call once; required on session
// teardown so the directory lock is dropped deterministically.
func (s *BadgerStore) Close() error {
	if err := s.db.Close(); err != nil {
		return &IOError{Path: s.path, Err: err}
	}
	return nil
}

// badgerLogger adapts slog to Badger's logger interface. A nil slog logger
// silences Badger entirely.
type badgerLogger struct {
	l *slog.Logger
}

func (b badgerLogger) Errorf(format string, args ...any) { b.log(slog.LevelError, format, args...) }
func (b badgerLogger) Warningf(format string, args ...any) {
	b.log(slog.LevelWarn, format, args...)
}
func (b badgerLogger) Infof(format string, args ...any)  { b.log(slog.LevelDebug, format, args...) }
func (b badgerLogger) Debugf(format string, args ...any) { b.log(slog.LevelDebug, format, args...) }

func (b badgerLogger) log(level slog.Level, format string, args ...any) {
	if b.l == nil {
		return
	}
	b.l.Log(context.Background(), level, strings.TrimSpace(fmt.Sprintf(format, args...)),
		slog.String("component", "badger"))
}
