// Package ssi263 implements the register-level state machine for the
// SSI-263 phoneme speech chip: register decode, phoneme emission,
// duration-cycle timing, and deferred completion-interrupt scheduling.
// Grounded closely on original_source/qns/ssi263.py, which this chip
// model is a near-direct reimplementation of.
package ssi263

import (
	"github.com/sirupsen/logrus"
)

// Register offsets within the chip's 5-byte register file.
const (
	RegDurPhon = 0
	RegInflect = 1
	RegRateInf = 2
	RegCtrlAmp = 3
	RegFilter  = 4
)

// Duration/Phoneme mode field (bits 7:6 of RegDurPhon).
const (
	ModeIRQDisabled         = 0x00
	ModeFrameImmediate      = 0x40
	ModePhonemeImmediate    = 0x80
	ModePhonemeTransitioned = 0xC0
)

const controlBit = 0x80

// SynthBinding is the outbound audio synthesis target a chip can drive.
// internal/synth.Synth implements this interface; a nil binding
// suppresses audio output only (spec.md §4.3 failure semantics).
type SynthBinding interface {
	WriteDurPhon(value byte)
	WriteInflect(value byte)
	WriteRateInf(value byte)
	WriteCtrlAmp(value byte)
	WriteFilter(value byte)
}

// IRQFunc asserts (1) or clears (0) the chip's A/R interrupt line.
type IRQFunc func(state int)

// Chip is the SSI-263 state machine.
type Chip struct {
	basePort byte
	clockHz  uint64

	durPhon  byte
	inflect  byte
	rateInf  byte
	ctrlAmp  byte
	filter   byte

	speaking       bool
	irqEnabled     bool
	currentPhoneme byte

	pendingIRQCycle *uint64
	currentCycle    uint64

	phonemeLog    []byte
	phonemeLogCap int

	synth   SynthBinding
	irq     IRQFunc
	onPhon  func(phoneme byte, name string)

	log *logrus.Logger
}

// New constructs a Chip at the given base I/O port with the given CPU
// clock (Hz), used for duration-cycle calculations.
func New(basePort byte, clockHz uint64, log *logrus.Logger) *Chip {
	return &Chip{
		basePort:      basePort,
		clockHz:       clockHz,
		durPhon:       0xC0, // mode transitioned, phoneme 0
		ctrlAmp:       0x80, // CTL=1 (standby)
		filter:        0xFF, // silence
		phonemeLogCap: 256,
		log:           log,
	}
}

// SetSynth connects an audio synthesis binding; subsequent register
// writes are forwarded to it.
func (c *Chip) SetSynth(s SynthBinding) { c.synth = s }

// SetIRQCallback connects the A/R interrupt-line callback (wired to CPU
// IRQ line 1 by convention — spec.md §4.6).
func (c *Chip) SetIRQCallback(f IRQFunc) { c.irq = f }

// SetPhonemeCallback connects a callback invoked on every phoneme
// emission with its code and resolved name.
func (c *Chip) SetPhonemeCallback(f func(phoneme byte, name string)) { c.onPhon = f }

// Speaking reports whether a phoneme is currently in progress.
func (c *Chip) Speaking() bool { return c.speaking }

// PhonemeLog returns a copy of the accumulated phoneme log.
func (c *Chip) PhonemeLog() []byte {
	out := make([]byte, len(c.phonemeLog))
	copy(out, c.phonemeLog)
	return out
}

// ClearPhonemeLog empties the phoneme log.
func (c *Chip) ClearPhonemeLog() { c.phonemeLog = c.phonemeLog[:0] }

// SetCycleCount updates the chip's notion of "now" for scheduling,
// called by the host loop between execution chunks.
func (c *Chip) SetCycleCount(cycles uint64) { c.currentCycle = cycles }

// CheckPendingIRQ fires the deferred completion interrupt if its
// scheduled cycle has arrived.
func (c *Chip) CheckPendingIRQ(now uint64) {
	if c.pendingIRQCycle != nil && now >= *c.pendingIRQCycle {
		c.pendingIRQCycle = nil
		c.speaking = false
		if c.irq != nil {
			c.irq(1)
		}
	}
}

// Read handles a register read, relative to basePort.
func (c *Chip) Read(port byte) byte {
	reg := int(port) - int(c.basePort)
	if reg == RegFilter {
		if c.speaking {
			return 0x80
		}
		return 0x00
	}
	return 0xFF
}

// Write handles a register write, relative to basePort.
func (c *Chip) Write(port byte, value byte) {
	reg := int(port) - int(c.basePort)
	switch reg {
	case RegDurPhon:
		c.durPhon = value
		mode := value & 0xC0
		phoneme := value & 0x3F
		c.irqEnabled = mode != ModeIRQDisabled
		if c.synth != nil {
			c.synth.WriteDurPhon(value)
		}
		if c.ctrlAmp&controlBit == 0 { // not in standby
			c.speakPhoneme(phoneme)
		}

	case RegInflect:
		c.inflect = value
		if c.synth != nil {
			c.synth.WriteInflect(value)
		}

	case RegRateInf:
		c.rateInf = value
		if c.synth != nil {
			c.synth.WriteRateInf(value)
		}

	case RegCtrlAmp:
		oldCTL := c.ctrlAmp & controlBit
		c.ctrlAmp = value
		newCTL := value & controlBit
		if c.synth != nil {
			c.synth.WriteCtrlAmp(value)
		}
		switch {
		case oldCTL != 0 && newCTL == 0:
			c.speakPhoneme(c.durPhon & 0x3F)
		case oldCTL == 0 && newCTL != 0:
			c.speaking = false
			c.pendingIRQCycle = nil
		}

	case RegFilter:
		c.filter = value
		if c.synth != nil {
			c.synth.WriteFilter(value)
		}
	}
}

// GetIOHandlers returns the ports of all 5 chip registers (basePort to
// basePort+4), at which Read and Write are to be registered on an
// iobus.Bus.
func (c *Chip) GetIOHandlers() []byte {
	ports := make([]byte, 5)
	for i := range ports {
		ports[i] = c.basePort + byte(i)
	}
	return ports
}

func (c *Chip) speakPhoneme(phoneme byte) {
	c.currentPhoneme = phoneme
	c.phonemeLog = append(c.phonemeLog, phoneme)
	if len(c.phonemeLog) > c.phonemeLogCap {
		c.phonemeLog = c.phonemeLog[len(c.phonemeLog)-c.phonemeLogCap:]
	}

	name := phonemeName(phoneme)
	durationCycles := c.durationCycles()
	if c.log != nil {
		c.log.WithFields(logrus.Fields{
			"phoneme": phoneme, "name": name, "duration_cycles": durationCycles,
		}).Debug("ssi263 phoneme")
	}

	if c.onPhon != nil {
		c.onPhon(phoneme, name)
	}

	c.speaking = true
	if c.irqEnabled {
		target := c.currentCycle + durationCycles
		c.pendingIRQCycle = &target
	}
}

// durationCycles computes the phoneme duration in CPU cycles from the
// AppleWin heuristic (spec.md §4.3):
//
//	duration_ms = floor(((16-R)*4096)/1023) * (4-D)
//	duration_cycles = floor(duration_ms * f_Hz / 1000)
func (c *Chip) durationCycles() uint64 {
	rate := uint64(c.rateInf>>4) & 0x0F
	durMode := uint64(c.durPhon>>6) & 0x03
	durationMs := ((16 - rate) * 4096 / 1023) * (4 - durMode)
	return durationMs * c.clockHz / 1000
}

// phonemeName resolves a chip phoneme code to its display name, or "?"
// for unknown/reserved codes (spec.md §4.3 failure semantics: unknown
// phonemes are still scheduled with the normal duration).
func phonemeName(code byte) string {
	if info, ok := phonemeTable[code]; ok {
		return info.name
	}
	return "?"
}
