package ssi263

import "testing"

func TestPhonemeEmissionAndIRQ(t *testing.T) {
	var irqLine int = -1
	c := New(0xC0, 12_288_000, nil)
	c.SetIRQCallback(func(state int) { irqLine = state })

	c.Write(0xC0+RegDurPhon, 0xC5) // mode 3, phoneme 5 — standby still on, no emission yet
	if c.Speaking() {
		t.Fatalf("should not be speaking while in standby")
	}

	c.Write(0xC0+RegRateInf, 0x00) // R=0
	c.Write(0xC0+RegCtrlAmp, 0x7F) // CTL=0 (wakeup), amp=15

	if !c.Speaking() {
		t.Fatalf("expected speaking=true after CTL wakeup")
	}
	log := c.PhonemeLog()
	if len(log) != 1 || log[0] != 5 {
		t.Fatalf("phoneme log = %v, want [5]", log)
	}

	wantCycles := uint64(786_432)
	if got := c.durationCycles(); got != wantCycles {
		t.Fatalf("duration_cycles = %d, want %d", got, wantCycles)
	}

	c.SetCycleCount(wantCycles - 1)
	c.CheckPendingIRQ(wantCycles - 1)
	if irqLine != -1 {
		t.Fatalf("IRQ fired early at cycle %d", wantCycles-1)
	}
	if !c.Speaking() {
		t.Fatalf("should still be speaking just before duration elapses")
	}

	c.SetCycleCount(wantCycles)
	c.CheckPendingIRQ(wantCycles)
	if irqLine != 1 {
		t.Fatalf("IRQ line = %d, want 1 after duration elapses", irqLine)
	}
	if c.Speaking() {
		t.Fatalf("speaking should clear once IRQ fires")
	}
}

func TestStandbyCancelsPending(t *testing.T) {
	irqCount := 0
	c := New(0xC0, 12_288_000, nil)
	c.SetIRQCallback(func(state int) { irqCount++ })

	c.Write(0xC0+RegDurPhon, 0xC5)
	c.Write(0xC0+RegRateInf, 0x00)
	c.Write(0xC0+RegCtrlAmp, 0x7F) // wakeup, emits phoneme 5

	c.SetCycleCount(100_000)
	c.Write(0xC0+RegCtrlAmp, 0x80) // standby: 0->1 CTL transition
	if c.Speaking() {
		t.Fatalf("speaking should be false immediately after standby")
	}

	// advance well past the would-be duration and confirm no IRQ fires
	c.SetCycleCount(1_000_000)
	c.CheckPendingIRQ(1_000_000)
	if irqCount != 0 {
		t.Fatalf("IRQ fired %d times after standby cancel, want 0", irqCount)
	}
}

func TestReadRegister4ReflectsSpeaking(t *testing.T) {
	c := New(0x00, 1_000_000, nil)
	if got := c.Read(RegFilter); got != 0x00 {
		t.Fatalf("reg4 read = %#x, want 0x00 when not speaking", got)
	}
	c.Write(RegCtrlAmp, 0x00) // wakeup with default phoneme 0
	if got := c.Read(RegFilter); got != 0x80 {
		t.Fatalf("reg4 read = %#x, want 0x80 when speaking", got)
	}
	if got := c.Read(RegDurPhon); got != 0xFF {
		t.Fatalf("non-reg4 read = %#x, want 0xFF", got)
	}
}

func TestUnknownPhonemeLogsQuestionMark(t *testing.T) {
	if name := phonemeName(0xFF & 0x3F); name == "" {
		t.Fatalf("phonemeName should never be empty")
	}
	// every code in [0,63] is defined in the upstream table; confirm the
	// fallback path itself never panics for an out-of-table byte.
	if got := phonemeName(200); got != "?" {
		t.Fatalf("phonemeName(200) = %q, want \"?\"", got)
	}
}

func TestDurationCyclesNeverNegative(t *testing.T) {
	c := New(0x00, 12_288_000, nil)
	for r := 0; r <= 15; r++ {
		for d := 0; d <= 3; d++ {
			c.rateInf = byte(r << 4)
			c.durPhon = byte(d << 6)
			if c.durationCycles() > 1<<40 {
				t.Fatalf("implausible duration for r=%d d=%d", r, d)
			}
		}
	}
}

type fakeSynth struct {
	durPhon, inflect, rateInf, ctrlAmp, filter byte
	calls                                      int
}

func (f *fakeSynth) WriteDurPhon(v byte) { f.durPhon = v; f.calls++ }
func (f *fakeSynth) WriteInflect(v byte) { f.inflect = v; f.calls++ }
func (f *fakeSynth) WriteRateInf(v byte) { f.rateInf = v; f.calls++ }
func (f *fakeSynth) WriteCtrlAmp(v byte) { f.ctrlAmp = v; f.calls++ }
func (f *fakeSynth) WriteFilter(v byte)  { f.filter = v; f.calls++ }

func TestRegisterWritesForwardToSynthBinding(t *testing.T) {
	fs := &fakeSynth{}
	c := New(0x00, 1_000_000, nil)
	c.SetSynth(fs)

	c.Write(RegDurPhon, 0x11)
	c.Write(RegInflect, 0x22)
	c.Write(RegRateInf, 0x33)
	c.Write(RegCtrlAmp, 0x44)
	c.Write(RegFilter, 0x55)

	if fs.durPhon != 0x11 || fs.inflect != 0x22 || fs.rateInf != 0x33 || fs.ctrlAmp != 0x44 || fs.filter != 0x55 {
		t.Fatalf("synth binding did not mirror all five register writes: %+v", fs)
	}
	if fs.calls != 5 {
		t.Fatalf("synth binding calls = %d, want 5", fs.calls)
	}
}

func TestMissingSynthBindingLeavesChipStateUnaffected(t *testing.T) {
	c := New(0x00, 12_288_000, nil) // no SetSynth call
	c.Write(RegDurPhon, 0xC5)
	c.Write(RegRateInf, 0x00)
	c.Write(RegCtrlAmp, 0x7F)
	if !c.Speaking() {
		t.Fatalf("chip state should progress normally without a synth binding")
	}
}
