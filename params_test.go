package floret

import (
	"math/rand"
	"strings"
	"testing"
)

func TestCacheKeyDeterministic(t *testing.T) {
	p := Params{AngleStart: 0, AngleEnd: 100, SampleCount: 300, Truncate: true, TruncateFactor: 2}
	if a, b := p.CacheKey(), p.CacheKey(); a != b {
		t.Errorf("identical params produced different keys: %q vs %q", a, b)
	}
}

func TestCacheKeyFormat(t *testing.T) {
	p := Params{AngleStart: 0, AngleEnd: 100, SampleCount: 300, Truncate: true, TruncateFactor: 2}
	got := p.CacheKey()
	want := "a0=0|a1=100|n=300|t=1|f=2"
	if got != want {
		t.Errorf("CacheKey() = %q, want %q", got, want)
	}
}

func TestCacheKeyNormalizesDisabledFactor(t *testing.T) {
	a := Params{AngleEnd: 100, SampleCount: 300, Truncate: false, TruncateFactor: 2}
	b := Params{AngleEnd: 100, SampleCount: 300, Truncate: false, TruncateFactor: 7}
	if a.CacheKey() != b.CacheKey() {
		t.Errorf("disabled truncation should ignore factor: %q vs %q", a.CacheKey(), b.CacheKey())
	}
	c := Params{AngleEnd: 100, SampleCount: 300, Truncate: true, TruncateFactor: 2}
	if a.CacheKey() == c.CacheKey() {
		t.Errorf("enabled and disabled truncation share key %q", a.CacheKey())
	}
}

func TestCacheKeyCollisionFree(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	seen := make(map[string]Params, 2000)
	for i := 0; i < 2000; i++ {
		p := Params{
			AngleStart:  rng.Float64() * 100,
			AngleEnd:    100 + rng.Float64()*400,
			SampleCount: 5 + rng.Intn(5000),
			Truncate:    rng.Intn(2) == 1,
		}
		if p.Truncate {
			p.TruncateFactor = 0.5 + rng.Float64()*4
		}
		key := p.CacheKey()
		if prev, dup := seen[key]; dup && prev != p {
			t.Fatalf("distinct params share key %q: %+v vs %+v", key, prev, p)
		}
		seen[key] = p
	}
}

func TestCacheKeySeparators(t *testing.T) {
	// Fields are delimited, so adjacent numeric fields cannot bleed into
	// each other the way bare concatenation would allow.
	a := Params{AngleStart: 1, AngleEnd: 23, SampleCount: 4}
	b := Params{AngleStart: 12, AngleEnd: 3, SampleCount: 4}
	if a.CacheKey() == b.CacheKey() {
		t.Errorf("field bleed: %q", a.CacheKey())
	}
	if !strings.Contains(a.CacheKey(), "|") {
		t.Errorf("key %q carries no field separator", a.CacheKey())
	}
}

func TestResultSizeBytes(t *testing.T) {
	empty := &Result{}
	if empty.sizeBytes() <= 0 {
		t.Errorf("empty result size = %d, want positive", empty.sizeBytes())
	}

	pts, err := Generate(0, 100, 500)
	if err != nil {
		t.Fatal(err)
	}
	full := &Result{Points: pts}
	if full.sizeBytes() <= empty.sizeBytes() {
		t.Errorf("size does not grow with points: %d vs %d", full.sizeBytes(), empty.sizeBytes())
	}
	// Each point carries two float64s.
	if delta := full.sizeBytes() - empty.sizeBytes(); delta != int64(len(pts))*16 {
		t.Errorf("point accounting = %d bytes, want %d", delta, len(pts)*16)
	}
}
