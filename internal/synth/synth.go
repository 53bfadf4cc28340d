package synth

// State mirrors the SSI-263 chip registers in decoded form, grounded on
// original_source/qns/synth/ssi263_synth.py's SSI263State.
type State struct {
	Phoneme      byte // 6-bit (0-63)
	Duration     int  // 2-bit (0-3); 0 = no averaging (longest output)
	Inflection   int  // 12-bit (0-4095); 2048 = neutral pitch
	Rate         int  // 4-bit (0-15)
	Articulation int  // 3-bit (0-7)
	Amplitude    int  // 4-bit (0-15)
	FilterFreq   byte // 8-bit; 0xFF = silence
	Control      bool // CTL bit; true = standby/power-down
}

// Synth is the SSI-263 chip's register-write target: it mirrors chip
// state in decoded form and, on a phoneme trigger, runs the DSP chain
// and submits PCM to a Player. Constructing with a nil Player disables
// audio output without affecting chip state (spec.md §4.3 failure
// semantics: "a missing synth binding suppresses audio output only").
type Synth struct {
	State State
	Pool  []int16
	Player *Player

	OnPhoneme func(phoneme byte)
}

// New constructs a Synth using the given sample pool (DefaultPool() if
// nil) and player (nil disables audio output).
func New(pool []int16, player *Player) *Synth {
	if pool == nil {
		pool = DefaultPool()
	}
	return &Synth{
		State: State{Inflection: 2048, Rate: 8, Amplitude: 15, Control: true},
		Pool:  pool,
		Player: player,
	}
}

// WriteDurPhon handles a write to the Duration/Phoneme register.
func (s *Synth) WriteDurPhon(value byte) {
	s.State.Duration = int(value>>6) & 0x03
	s.State.Phoneme = value & 0x3F
	if !s.State.Control {
		s.playCurrent()
	}
}

// WriteInflect handles a write to the Inflection register: sets I10:I3.
func (s *Synth) WriteInflect(value byte) {
	s.State.Inflection = (s.State.Inflection & 0x807) | (int(value) << 3)
}

// WriteRateInf handles a write to the Rate/Inflection register.
func (s *Synth) WriteRateInf(value byte) {
	s.State.Rate = int(value>>4) & 0x0F
	i11 := int(value>>3) & 0x01
	i2_0 := int(value) & 0x07
	s.State.Inflection = (i11 << 11) | (s.State.Inflection & 0x7F8) | i2_0
}

// WriteCtrlAmp handles a write to the Control/Articulation/Amplitude
// register. A 1->0 CTL transition wakes the chip and plays the current
// phoneme.
func (s *Synth) WriteCtrlAmp(value byte) {
	old := s.State.Control
	s.State.Control = value&0x80 != 0
	s.State.Articulation = int(value>>4) & 0x07
	s.State.Amplitude = int(value) & 0x0F

	if old && !s.State.Control {
		s.playCurrent()
	}
}

// WriteFilter handles a write to the Filter Frequency register.
func (s *Synth) WriteFilter(value byte) {
	s.State.FilterFreq = value
}

func (s *Synth) playCurrent() {
	phoneme := s.State.Phoneme
	if s.OnPhoneme != nil {
		s.OnPhoneme(phoneme)
	}
	if s.Player == nil {
		return
	}
	// Amplitude 0 is forced to full volume at play time, working around
	// a VOLUME register quirk in the original hardware/firmware combo;
	// grounded on original_source/qns/synth/ssi263_synth.py's
	// _play_current_phoneme. The raw register mirror in s.State is left
	// untouched.
	amplitude := s.State.Amplitude
	if amplitude == 0 {
		amplitude = 15
	}
	samples := s.PhonemeAudio(phoneme, amplitude, s.State.Inflection, s.State.Duration, s.State.FilterFreq)
	s.Player.Play(samples)
}

// PhonemeAudio renders float32 PCM for a single chip phoneme code
// through the full DSP chain, per spec.md §4.4's phoneme index mapping:
// code 0 (pause) -\> 50ms silence; code 1 aliases to code 2; codes 2-63
// map to data indices 0-61.
func (s *Synth) PhonemeAudio(phoneme byte, amplitude, inflection, duration int, filterFreq byte) []float32 {
	if phoneme == 0 {
		return make([]float32, sampleRate/20) // 50ms of silence
	}
	if phoneme == 1 {
		phoneme = 2
	}
	dataIndex := int(phoneme) - 2
	samples := GetPhonemeSamples(s.Pool, dataIndex)

	samples = ApplyAmplitude(samples, amplitude)
	samples = ApplyFilter(samples, filterFreq)
	samples = TimeStretch(samples, duration)
	samples = PitchShift(samples, inflection)
	return NormalizeFloat(samples)
}

const sampleRate = 22050
