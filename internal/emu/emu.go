// Package emu wires the MMU, I/O bus, peripherals, SSI-263 chip, synth,
// and CPU facade into a single Machine and drives the chunked
// execution loop from spec.md §4.6, grounded on the teacher's
// internal/bus.Bus + internal/emu.Machine split (here reunified around
// the BSPLUS port map instead of the DMG memory map).
package emu

import (
	"bytes"
	"encoding/gob"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/sirupsen/logrus"

	"github.com/bnsemu/qns/internal/cpu"
	"github.com/bnsemu/qns/internal/iobus"
	"github.com/bnsemu/qns/internal/mmu"
	"github.com/bnsemu/qns/internal/peripherals"
	"github.com/bnsemu/qns/internal/romfile"
	"github.com/bnsemu/qns/internal/ssi263"
	"github.com/bnsemu/qns/internal/synth"
)

// BSPLUS port assignments (spec.md §6.4).
const (
	portKeyClr    = 0x20
	portITC       = 0x34
	portCBR       = 0x38
	portBBR       = 0x39
	portCBAR      = 0x3A
	portKeyboard  = 0x40
	portDisplay   = 0x80
	portDisplayEnd = 0x83
	portSSI263    = 0xC0
	portSSI263End = 0xC4
)

// execChunkCycles is the host-loop granularity between IRQ-scheduling
// checkpoints (spec.md §4.6).
const execChunkCycles = 1000

// Machine is the top-level BNS emulator: it owns every subsystem and
// exposes the operations a CLI front-end drives.
type Machine struct {
	cfg Config
	log *logrus.Logger

	mmu     *mmu.MMU
	io      *iobus.Bus
	kbd     *peripherals.Keyboard
	display *peripherals.Display
	wdog    *peripherals.Watchdog
	ssi     *ssi263.Chip
	syn     *synth.Synth
	player  *synth.Player
	cpuFac  *cpu.Facade

	cyclesRun uint64
}

// New constructs a Machine. audioCtx may be nil for headless/test
// operation; an Engine may be nil to run the CPU facade in degraded
// mode (spec.md §4.6/§9: instruction decoding is an external
// collaborator).
func New(cfg Config, engine cpu.Engine, audioCtx *audio.Context, log *logrus.Logger) *Machine {
	if log == nil {
		log = logrus.New()
	}

	m := &Machine{
		cfg:     cfg,
		log:     log,
		mmu:     mmu.New(),
		io:      iobus.New(log),
		kbd:     nil,
		display: peripherals.NewDisplay(cfg.DisplayCells),
		wdog:    peripherals.NewWatchdog(),
	}
	m.io.Tracing = cfg.Trace

	var player *synth.Player
	if cfg.Audio {
		player = synth.NewPlayer(audioCtx)
	}
	m.player = player
	m.syn = synth.New(nil, player)

	m.ssi = ssi263.New(portSSI263, cfg.ClockHz, log)
	m.ssi.SetSynth(m.syn)

	m.cpuFac = cpu.New(engine, cfg.ClockHz, log)
	m.kbd = peripherals.NewKeyboard(func(state int) {
		m.cpuFac.SetIRQLine(cpu.IRQLineKeyboard, state)
	})
	m.ssi.SetIRQCallback(func(state int) {
		m.cpuFac.SetIRQLine(cpu.IRQLineSSI263, state)
	})

	m.registerIO()
	m.cpuFac.SetCallbacks(m.memRead, m.memWrite, m.io.Read, m.io.Write)
	return m
}

func (m *Machine) registerIO() {
	m.io.Register(portKeyClr, nil, func(_ byte, _ byte) { m.kbd.Release() })
	m.io.RegisterRange(portITC, portITC, func(_ byte) byte { return 0xFF }, func(_ byte, _ byte) {
		// decoded for trace only (spec.md §6.4); the interrupt-enable
		// state itself is not modeled.
	})

	m.io.Register(portCBR, func(_ byte) byte { return m.mmu.CBR() }, func(_ byte, v byte) { m.mmu.SetMMU(&v, nil, nil) })
	m.io.Register(portBBR, func(_ byte) byte { return m.mmu.BBR() }, func(_ byte, v byte) { m.mmu.SetMMU(nil, &v, nil) })
	m.io.Register(portCBAR, func(_ byte) byte { return m.mmu.CBAR() }, func(_ byte, v byte) { m.mmu.SetMMU(nil, nil, &v) })

	m.io.Register(portKeyboard, m.kbd.Read, m.kbd.Write)

	// Display occupies 0x80-0x83; port 0x80 is overlaid by the watchdog
	// on writes (spec.md §6.4: "writes reset watchdog, reads go to
	// display").
	for p := portDisplay; p <= portDisplayEnd; p++ {
		port := byte(p)
		offset := int(port) - portDisplay
		m.io.Register(port, func(_ byte) byte { return m.display.Read(offset) }, func(_ byte, v byte) { m.display.Write(offset, v) })
	}
	m.io.Register(portDisplay, func(_ byte) byte { return m.display.Read(0) }, func(_ byte, _ byte) { m.wdog.Write(0, 0) })

	for p := portSSI263; p <= portSSI263End; p++ {
		port := byte(p)
		m.io.Register(port, m.ssi.Read, m.ssi.Write)
	}
}

func (m *Machine) memRead(addr uint32) byte  { return m.mmu.Read(addr) }
func (m *Machine) memWrite(addr uint32, v byte) { m.mmu.Write(addr, v) }

// LoadROM loads a ROM file (any of the three accepted shapes, detected
// by internal/romfile) into the MMU.
func (m *Machine) LoadROM(path string, data []byte) {
	firmware := romfile.Load(path, data, m.log)
	m.mmu.LoadROM(firmware)
}

// SetTrace enables or disables I/O bus tracing.
func (m *Machine) SetTrace(on bool) { m.io.Tracing = on }

// Reset resets the CPU facade and starts the audio player (if audio is
// enabled), mirroring original_source/qns/bns.py's reset().
func (m *Machine) Reset() error {
	m.cpuFac.Reset()
	if m.player != nil {
		return m.player.Start()
	}
	return nil
}

// Press/Release forward to the keyboard peripheral.
func (m *Machine) PressKeys(dots byte) { m.kbd.Press(dots) }
func (m *Machine) ReleaseKeys()        { m.kbd.Release() }

// DisplayText returns the current Braille display's best-effort ASCII
// rendering, for diagnostics/tests.
func (m *Machine) DisplayText() string { return m.display.Text() }

// PhonemeLog returns the SSI-263 chip's recent phoneme emission log.
func (m *Machine) PhonemeLog() []byte { return m.ssi.PhonemeLog() }

// CyclesRun returns the total number of CPU cycles executed so far.
func (m *Machine) CyclesRun() uint64 { return m.cyclesRun }

// Run executes up to budget CPU cycles in fixed-size chunks, servicing
// the SSI-263 deferred-IRQ scheduler between each chunk, and stops
// early the moment the CPU halts (spec.md §4.6: "While !halted ∧
// cycles_run < budget"). A budget of 0 means unbounded — run until
// halted — matching original_source/qns/bns.py:129's
// `while (max_cycles == 0 or cycles_run < max_cycles) and not
// self.cpu.halted`. Callers passing budget 0 must attach an Engine
// capable of halting, or be prepared to cancel some other way (the
// original relies on a user's Ctrl+C; degraded mode never halts and
// will run forever under an unbounded budget, same as the stub it is
// grounded on). Audio output is stopped on every exit path, matching
// original_source/qns/bns.py's run(), which always calls
// self.audio.stop() in a finally block.
func (m *Machine) Run(budget uint64) (cyclesRun uint64) {
	defer func() {
		if m.player != nil {
			m.player.Stop()
		}
	}()

	for (budget == 0 || cyclesRun < budget) && !m.cpuFac.Halted() {
		chunk := execChunkCycles
		if budget != 0 {
			if remaining := budget - cyclesRun; remaining < uint64(chunk) {
				chunk = int(remaining)
			}
		}
		if chunk <= 0 {
			break
		}

		executed := m.cpuFac.Run(chunk)
		cyclesRun += uint64(executed)
		m.cyclesRun = cyclesRun

		m.ssi.SetCycleCount(m.cyclesRun)
		m.ssi.CheckPendingIRQ(m.cyclesRun)
	}
	return cyclesRun
}

// Step runs a single execChunkCycles-sized chunk, for interactive/debug
// single-stepping, returning 0 without executing if the CPU has
// already halted.
func (m *Machine) Step() int {
	if m.cpuFac.Halted() {
		return 0
	}
	executed := m.cpuFac.Run(execChunkCycles)
	m.cyclesRun += uint64(executed)
	m.ssi.SetCycleCount(m.cyclesRun)
	m.ssi.CheckPendingIRQ(m.cyclesRun)
	return executed
}

// Halted reports whether the CPU facade has halted.
func (m *Machine) Halted() bool { return m.cpuFac.Halted() }

// machineSnapshot is the gob-encodable save-state envelope, grounded on
// the teacher's busState pattern (internal/bus.Bus.Snapshot/Restore).
type machineSnapshot struct {
	MMU       []byte
	CyclesRun uint64
}

// SaveState serializes MMU state and the cycle counter. CPU-engine and
// SSI-263 state are intentionally excluded: the engine is an opaque
// external collaborator (spec.md §1) and SSI-263 state is audio-only
// and safe to restart fresh on load.
func (m *Machine) SaveState() []byte {
	s := machineSnapshot{MMU: m.mmu.Snapshot(), CyclesRun: m.cyclesRun}
	var buf bytes.Buffer
	_ = gob.NewEncoder(&buf).Encode(s)
	return buf.Bytes()
}

// LoadState restores a previous SaveState. Malformed data is ignored.
func (m *Machine) LoadState(data []byte) {
	var s machineSnapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return
	}
	m.mmu.Restore(s.MMU)
	m.cyclesRun = s.CyclesRun
}
