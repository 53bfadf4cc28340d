// Package synth implements the SSI-263 audio DSP pipeline (amplitude,
// filter, time-stretch, pitch-shift), the phoneme sample table, and a
// real-time audio player, grounded on original_source/qns/synth/dsp.py,
// phonemes (via tools/extract_phonemes.py's output contract), and
// synth/player.py.
package synth

// ApplyAmplitude linearly scales samples by amplitude/15. amplitude==0
// yields all-zero output of the same length; amplitude==15 is identity.
func ApplyAmplitude(samples []int16, amplitude int) []int16 {
	out := make([]int16, len(samples))
	switch {
	case amplitude <= 0:
		return out
	case amplitude >= 15:
		copy(out, samples)
		return out
	}
	scale := float64(amplitude) / 15.0
	for i, s := range samples {
		out[i] = int16(float64(s) * scale)
	}
	return out
}

// ApplyFilter is the resonance filter slot. filterFreq==0xFF produces
// silence of the same length; any other value passes samples through
// unchanged (the formant filter itself is unimplemented — spec.md §9).
func ApplyFilter(samples []int16, filterFreq byte) []int16 {
	out := make([]int16, len(samples))
	if filterFreq == 0xFF {
		return out
	}
	copy(out, samples)
	return out
}

// TimeStretch adjusts playback duration by sample averaging according
// to the SSI-263 duration mode: 0/1 identity, 2 averages consecutive
// pairs (length halves), 3 averages consecutive quadruples (length
// quarters). Averaging is an integer mean, rounding toward zero.
func TimeStretch(samples []int16, duration int) []int16 {
	if duration == 0 || duration == 1 {
		out := make([]int16, len(samples))
		copy(out, samples)
		return out
	}
	avg := 2
	if duration == 3 {
		avg = 4
	}
	outLen := len(samples) / avg
	if outLen == 0 {
		out := make([]int16, len(samples))
		copy(out, samples)
		return out
	}
	out := make([]int16, outLen)
	for i := 0; i < outLen; i++ {
		var sum int32
		for j := 0; j < avg; j++ {
			sum += int32(samples[i*avg+j])
		}
		out[i] = int16(sum / int32(avg))
	}
	return out
}

// PitchShift resamples by ratio = 1 + (inflection-2048)/4096 via linear
// interpolation. Ratios within 0.01 of 1.0 are treated as identity
// (skip resampling). The output has floor(len/ratio) samples, minimum 1;
// an empty input yields an empty output.
func PitchShift(samples []int16, inflection int) []int16 {
	ratio := 1.0 + float64(inflection-2048)/4096.0
	if diff := ratio - 1.0; diff > -0.01 && diff < 0.01 {
		out := make([]int16, len(samples))
		copy(out, samples)
		return out
	}
	oldLen := len(samples)
	if oldLen == 0 {
		return nil
	}
	newLen := int(float64(oldLen) / ratio)
	if newLen < 1 {
		newLen = 1
	}
	out := make([]int16, newLen)
	if oldLen == 1 {
		for i := range out {
			out[i] = samples[0]
		}
		return out
	}
	step := float64(oldLen-1) / float64(newLen-1)
	if newLen == 1 {
		step = 0
	}
	for i := 0; i < newLen; i++ {
		pos := step * float64(i)
		lo := int(pos)
		if lo >= oldLen-1 {
			out[i] = samples[oldLen-1]
			continue
		}
		frac := pos - float64(lo)
		a, b := float64(samples[lo]), float64(samples[lo+1])
		out[i] = int16(a + (b-a)*frac)
	}
	return out
}

// NormalizeFloat converts int16 PCM into [-1.0, 1.0] float32 samples for
// submission to the audio player.
func NormalizeFloat(samples []int16) []float32 {
	out := make([]float32, len(samples))
	for i, s := range samples {
		out[i] = float32(s) / 32768.0
	}
	return out
}
