package synth

import "testing"

func sampleSlice(n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(i * 10)
	}
	return out
}

func TestApplyAmplitudeIdentityAndSilence(t *testing.T) {
	x := sampleSlice(8)
	if got := ApplyAmplitude(x, 15); !equal16(got, x) {
		t.Fatalf("amplitude 15 not identity: %v vs %v", got, x)
	}
	zero := ApplyAmplitude(x, 0)
	if len(zero) != len(x) {
		t.Fatalf("amplitude 0 changed length")
	}
	for _, v := range zero {
		if v != 0 {
			t.Fatalf("amplitude 0 not all zero: %v", zero)
		}
	}
}

func TestApplyFilterSilence(t *testing.T) {
	x := sampleSlice(5)
	out := ApplyFilter(x, 0xFF)
	if len(out) != len(x) {
		t.Fatalf("filter silence changed length")
	}
	for _, v := range out {
		if v != 0 {
			t.Fatalf("filter 0xFF not silent: %v", out)
		}
	}
	pass := ApplyFilter(x, 0x10)
	if !equal16(pass, x) {
		t.Fatalf("non-silence filter should pass through")
	}
}

func TestTimeStretchIdentityAndShrink(t *testing.T) {
	x := sampleSlice(8)
	if got := TimeStretch(x, 0); !equal16(got, x) {
		t.Fatalf("duration 0 not identity")
	}
	if got := TimeStretch(x, 1); !equal16(got, x) {
		t.Fatalf("duration 1 not identity")
	}
	half := TimeStretch(x, 2)
	if len(half) != len(x)/2 {
		t.Fatalf("duration 2 length = %d, want %d", len(half), len(x)/2)
	}
	quarter := TimeStretch(x, 3)
	if len(quarter) != len(x)/4 {
		t.Fatalf("duration 3 length = %d, want %d", len(quarter), len(x)/4)
	}
}

func TestPitchShiftNeutral(t *testing.T) {
	x := sampleSlice(10)
	out := PitchShift(x, 2048)
	if len(out) < len(x)-1 || len(out) > len(x)+1 {
		t.Fatalf("neutral pitch shift length = %d, want ~%d", len(out), len(x))
	}
}

func TestDurationCyclesNeverNegative(t *testing.T) {
	for r := 0; r <= 15; r++ {
		for d := 0; d <= 3; d++ {
			durMs := ((16 - r) * 4096) / 1023 * (4 - d)
			cycles := durMs * 12_288_000 / 1000
			if cycles < 0 {
				t.Fatalf("negative duration cycles for r=%d d=%d", r, d)
			}
		}
	}
}

func equal16(a, b []int16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
