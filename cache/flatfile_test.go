package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFlatFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baked.gob.gz")
	entries := map[string][]byte{
		"a0=0|a1=100|n=300|t=0|f=0": []byte("blob-one"),
		"a0=0|a1=50|n=100|t=0|f=0":  []byte("blob-two"),
	}
	if err := WriteFlatFile(path, entries); err != nil {
		t.Fatal(err)
	}

	s, err := OpenFlatFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	for key, want := range entries {
		got, ok, err := s.Get(key)
		if err != nil || !ok {
			t.Fatalf("Get(%q) = (_, %v, %v)", key, ok, err)
		}
		if string(got) != string(want) {
			t.Errorf("Get(%q) = %q, want %q", key, got, want)
		}
	}

	if _, ok, err := s.Get("missing"); ok || err != nil {
		t.Errorf("missing key: ok=%v err=%v, want clean miss", ok, err)
	}
}

func TestOpenFlatFileMissing(t *testing.T) {
	_, err := OpenFlatFile(filepath.Join(t.TempDir(), "nope.gob.gz"))
	var ioerr *IOError
	if !errors.As(err, &ioerr) {
		t.Fatalf("error = %v, want *IOError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error does not unwrap to os.ErrNotExist: %v", err)
	}
}

func TestOpenFlatFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.gob.gz")
	if err := os.WriteFile(path, []byte("not gzip at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := OpenFlatFile(path)
	var ioerr *IOError
	if !errors.As(err, &ioerr) {
		t.Fatalf("error = %v, want *IOError", err)
	}
	if ioerr.Path != path {
		t.Errorf("IOError.Path = %q, want %q", ioerr.Path, path)
	}
}
