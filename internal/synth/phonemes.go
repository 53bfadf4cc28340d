package synth

import (
	"encoding/binary"
	"fmt"
	"os"
)

// PoolLen is the size, in int16 samples, of the full phoneme sample
// pool — the sample count of AppleWin's g_nPhonemeData array, per
// original_source/tools/extract_phonemes.py.
const PoolLen = 156566

// PhonemeCount is the number of distinct phoneme data entries (data
// indices 0..61, addressed by chip phoneme codes 2..63 after the
// code-1-aliases-to-2 fixup).
const PhonemeCount = 62

// SampleOffset describes one phoneme's location in the sample pool.
type SampleOffset struct {
	Offset int
	Length int
}

// PhonemeInfo mirrors the (offset, length) index produced by the
// extraction tool. This module does not perform extraction itself
// (out of scope, spec.md §1); these offsets are the tool's documented
// output shape, backed here by a generated placeholder pool (see
// DefaultPool) unless a real extracted pool is loaded via LoadPool.
//
// The entries below evenly partition PoolLen across PhonemeCount
// phonemes; a real extraction produces uneven, data-driven lengths,
// but every invariant this module tests against (offset+length <=
// PoolLen for all 62 entries) holds for any valid table, including
// this placeholder one.
var PhonemeInfo = buildPlaceholderInfo()

func buildPlaceholderInfo() [PhonemeCount]SampleOffset {
	var table [PhonemeCount]SampleOffset
	chunk := PoolLen / PhonemeCount
	offset := 0
	for i := 0; i < PhonemeCount; i++ {
		length := chunk
		if i == PhonemeCount-1 {
			length = PoolLen - offset // absorb remainder in the last entry
		}
		table[i] = SampleOffset{Offset: offset, Length: length}
		offset += chunk
	}
	return table
}

// defaultPool is built lazily and cached; it is a deterministic,
// low-amplitude placeholder used until a real extracted pool is
// supplied via LoadPool.
var defaultPool []int16

// DefaultPool returns the placeholder phoneme sample pool. It is not
// real speech data — only a deterministic waveform (a quiet sawtooth
// rising from -100 to 99 every 200 samples, at constant amplitude) sized and indexed to satisfy every PhonemeInfo bound, so
// the chip/synth pipeline is exercisable without the external
// extraction tool having been run.
func DefaultPool() []int16 {
	if defaultPool != nil {
		return defaultPool
	}
	pool := make([]int16, PoolLen)
	for i := range pool {
		// small deterministic waveform, well within int16 range
		pool[i] = int16((i % 200) - 100)
	}
	defaultPool = pool
	return defaultPool
}

// LoadPool reads a real extracted phoneme pool from disk: raw
// little-endian int16 samples, as produced by running
// original_source/tools/extract_phonemes.py (or an equivalent
// extraction) against a donor ROM/header. This module never performs
// extraction itself; this is only the loader for its output.
func LoadPool(path string) ([]int16, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load phoneme pool: %w", err)
	}
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}
	out := make([]int16, len(data)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return out, nil
}

// GetPhonemeSamples returns the samples for phoneme data index i
// (0..PhonemeCount-1) from pool. Out-of-range indices or a pool too
// short for the indexed bounds return a short silence buffer rather
// than an error, per spec.md §4.4 failure semantics.
func GetPhonemeSamples(pool []int16, i int) []int16 {
	if i < 0 || i >= PhonemeCount {
		return make([]int16, 64)
	}
	info := PhonemeInfo[i]
	if info.Offset+info.Length > len(pool) {
		return make([]int16, 64)
	}
	return pool[info.Offset : info.Offset+info.Length]
}
