package hostinfo

import "testing"

func TestCollect(t *testing.T) {
	f := Collect()
	if f.Cores < 1 {
		t.Errorf("Cores = %d, want at least 1", f.Cores)
	}
	if f.MemoryMB < 1 {
		t.Errorf("MemoryMB = %d, want positive", f.MemoryMB)
	}
}

func TestCollectDeterministic(t *testing.T) {
	a, b := Collect(), Collect()
	if a != b {
		t.Errorf("consecutive probes differ: %+v vs %+v", a, b)
	}
}
