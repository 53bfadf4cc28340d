package synth

import "testing"

func TestSynthRegisterMirroring(t *testing.T) {
	s := New(nil, nil)
	s.WriteDurPhon(0xC5) // mode=3 (0xC0), phoneme=5
	if s.State.Duration != 3 || s.State.Phoneme != 5 {
		t.Fatalf("durphon decode = dur=%d phon=%d, want 3/5", s.State.Duration, s.State.Phoneme)
	}
	s.WriteRateInf(0x00)
	if s.State.Rate != 0 {
		t.Fatalf("rate = %d, want 0", s.State.Rate)
	}
	s.WriteCtrlAmp(0x7F) // CTL=0, art=7, amp=15
	if s.State.Control {
		t.Fatalf("control should be false after CTL=0 write")
	}
	if s.State.Amplitude != 15 {
		t.Fatalf("amplitude = %d, want 15", s.State.Amplitude)
	}
}

func TestSynthPlaysOnCTLWakeup(t *testing.T) {
	var played byte
	s := New(nil, nil)
	s.OnPhoneme = func(p byte) { played = p }

	s.WriteDurPhon(0x05) // mode 0 (irq disabled), phoneme 5, but standby still on (Control true by default)
	if played != 0 {
		t.Fatalf("should not play while in standby")
	}
	s.WriteCtrlAmp(0x00) // CTL 1->0 wakeup
	if played != 5 {
		t.Fatalf("played = %d, want 5 on CTL wakeup", played)
	}
}

func TestZeroAmplitudeForcedToFullVolumeAtPlayTime(t *testing.T) {
	player := NewPlayer(nil)
	s := New(nil, player)
	s.OnPhoneme = func(byte) {}

	s.WriteDurPhon(0x05)    // phoneme 5, mode 0
	s.WriteCtrlAmp(0x00)    // CTL 1->0 wakeup, amplitude=0
	if s.State.Amplitude != 0 {
		t.Fatalf("raw register mirror should stay 0, got %d", s.State.Amplitude)
	}

	out := make([]byte, DeviceBlockFrames*4)
	if _, err := player.Read(out); err != nil {
		t.Fatalf("Read: %v", err)
	}
	silent := true
	for _, b := range out {
		if b != 0 {
			silent = false
			break
		}
	}
	if silent {
		t.Fatalf("amplitude=0 should play at full volume, not silence, per the VOLUME-bug workaround")
	}
}

func TestPhonemeAudioMapping(t *testing.T) {
	s := New(nil, nil)
	pause := s.PhonemeAudio(0, 15, 2048, 0, 0x00)
	if len(pause) == 0 {
		t.Fatalf("pause phoneme should yield silence samples")
	}
	for _, v := range pause {
		if v != 0 {
			t.Fatalf("pause phoneme should be silent")
		}
	}

	aliasSamples := s.PhonemeAudio(1, 15, 2048, 0, 0x00)
	code2Samples := s.PhonemeAudio(2, 15, 2048, 0, 0x00)
	if len(aliasSamples) != len(code2Samples) {
		t.Fatalf("phoneme 1 should alias to phoneme 2 output length")
	}
}
