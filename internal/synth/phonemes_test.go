package synth

import "testing"

func TestPhonemeInfoBounds(t *testing.T) {
	for i, info := range PhonemeInfo {
		if info.Offset+info.Length > PoolLen {
			t.Fatalf("phoneme %d: offset+length=%d exceeds pool %d", i, info.Offset+info.Length, PoolLen)
		}
	}
}

func TestGetPhonemeSamplesBounds(t *testing.T) {
	pool := DefaultPool()
	for i := 0; i < PhonemeCount; i++ {
		samples := GetPhonemeSamples(pool, i)
		if len(samples) != PhonemeInfo[i].Length {
			t.Fatalf("phoneme %d: got %d samples, want %d", i, len(samples), PhonemeInfo[i].Length)
		}
	}
}

func TestGetPhonemeSamplesOutOfRange(t *testing.T) {
	pool := DefaultPool()
	if got := GetPhonemeSamples(pool, -1); len(got) == 0 {
		t.Fatalf("expected short silence buffer for negative index")
	}
	if got := GetPhonemeSamples(pool, 1000); len(got) == 0 {
		t.Fatalf("expected short silence buffer for out-of-range index")
	}
}
