// Package cpu models the Z180 CPU as an opaque execution engine behind a
// stable callback facade. Instruction decoding itself is out of scope
// (spec.md §1); this package exists to give the rest of the emulator a
// fixed contract to drive regardless of whether a real engine is wired
// in, grounded on original_source/qns/cpu.py's CFFI-or-stub duality.
package cpu

import "github.com/sirupsen/logrus"

// Reg identifies a CPU register addressable through Engine.GetState,
// mirroring the index space original_source/qns/cpu.py reserves
// (0x100000 + offset) for its stub register map.
type Reg int

const (
	RegPC Reg = iota
	RegSP
	RegAF
	RegBC
	RegDE
	RegHL
	RegIX
	RegIY
	RegCBR
	RegBBR
	RegCBAR
)

// IRQ line numbers, by BNS convention: line 1 is SSI-263 A/R, line 2 is
// the keyboard latch (spec.md §4.6).
const (
	IRQLineSSI263   = 1
	IRQLineKeyboard = 2
)

// Line states.
const (
	LineClear  = 0
	LineAssert = 1
)

// MemReadFunc, MemWriteFunc, IOReadFunc, IOWriteFunc are the four
// callbacks an Engine invokes synchronously during Execute; they must
// never be invoked outside of an Execute call.
type (
	MemReadFunc  func(addr uint32) byte
	MemWriteFunc func(addr uint32, value byte)
	IOReadFunc   func(port byte) byte
	IOWriteFunc  func(port byte, value byte)
)

// Engine is the pluggable Z180 execution core. A real engine decodes
// and executes Z180 instructions, calling back into the four callbacks
// for every memory and I/O access. No such engine is provided by this
// module (spec.md explicitly scopes out instruction decoding); Facade
// falls back to a degraded-mode stub when none is supplied.
type Engine interface {
	// Reset returns the engine to its power-on state.
	Reset()
	// Execute runs up to cycles worth of instructions, invoking the
	// facade's callbacks as memory/IO are touched, and returns the
	// number of cycles actually consumed.
	Execute(cycles int) int
	// GetState returns the current value of a register.
	GetState(reg Reg) uint32
	// SetIRQLine asserts or clears an IRQ line.
	SetIRQLine(line int, state int)
	// Halted reports whether the engine has executed a halt instruction.
	Halted() bool
}

// Facade is the fixed interface the rest of the emulator drives,
// regardless of whether a real Engine is attached. It owns the four
// callback slots an Engine calls back into, and operates in "degraded
// mode" — consuming the requested cycles without touching memory or
// I/O — whenever engine is nil.
type Facade struct {
	engine Engine
	clock  uint64

	memRead  MemReadFunc
	memWrite MemWriteFunc
	ioRead   IOReadFunc
	ioWrite  IOWriteFunc

	regs map[Reg]uint32

	// halted is the degraded-mode halt flag. A stub never executes a
	// halt instruction, so it is always false — matching
	// original_source/qns/cpu.py's stub, whose self._halted starts
	// false and nothing in the stub path ever sets it.
	halted bool

	log *logrus.Logger
}

// New constructs a Facade for the given engine (nil for degraded mode)
// at the given clock frequency in Hz.
func New(engine Engine, clockHz uint64, log *logrus.Logger) *Facade {
	f := &Facade{
		engine: engine,
		clock:  clockHz,
		regs: map[Reg]uint32{
			RegPC: 0x0000,
			RegSP: 0xFFFF,
		},
		log: log,
	}
	if engine == nil && log != nil {
		log.Warn("cpu: no engine attached, running in degraded mode (no instructions execute)")
	}
	return f
}

// SetCallbacks wires the four memory/IO callbacks an attached Engine
// uses. Any nil callback is treated as a no-op / 0xFF-returning stub.
func (f *Facade) SetCallbacks(memRead MemReadFunc, memWrite MemWriteFunc, ioRead IOReadFunc, ioWrite IOWriteFunc) {
	f.memRead = memRead
	f.memWrite = memWrite
	f.ioRead = ioRead
	f.ioWrite = ioWrite
}

// HasEngine reports whether a real execution engine is attached.
func (f *Facade) HasEngine() bool { return f.engine != nil }

// Clock returns the configured CPU clock in Hz.
func (f *Facade) Clock() uint64 { return f.clock }

// Reset resets the attached engine, or the degraded-mode register
// shadow if none is attached.
func (f *Facade) Reset() {
	if f.engine != nil {
		f.engine.Reset()
		return
	}
	f.regs[RegPC] = 0x0000
	f.regs[RegSP] = 0xFFFF
	f.halted = false
}

// Halted reports whether execution has halted: delegated to the
// attached engine, or the degraded-mode flag (always false — a stub
// never executes a halt instruction) when none is attached. Mirrors
// original_source/qns/cpu.py's `halted` property.
func (f *Facade) Halted() bool {
	if f.engine != nil {
		return f.engine.Halted()
	}
	return f.halted
}

// Run executes up to cycles worth of instructions and returns the
// actual number of cycles consumed. In degraded mode, it reports the
// full request consumed without touching memory or I/O — matching
// original_source/qns/cpu.py's stub run(), which "just returns cycles
// without doing anything."
func (f *Facade) Run(cycles int) int {
	if f.engine != nil {
		return f.engine.Execute(cycles)
	}
	return cycles
}

// GetState returns a register's value: from the attached engine, or
// from the degraded-mode shadow map (zero for unset registers).
func (f *Facade) GetState(reg Reg) uint32 {
	if f.engine != nil {
		return f.engine.GetState(reg)
	}
	return f.regs[reg]
}

// SetPC sets the program counter, used by the loader to establish the
// reset vector / entry point before the first Run call.
func (f *Facade) SetPC(pc uint32) {
	if f.engine != nil {
		// A real engine would expose a setter; until one exists, PC is
		// only observable through Reset + the engine's own reset vector.
		return
	}
	f.regs[RegPC] = pc
}

// SetIRQLine asserts or clears an IRQ line on the attached engine. In
// degraded mode this is a no-op: without an instruction decoder there
// is nothing to interrupt.
func (f *Facade) SetIRQLine(line int, state int) {
	if f.engine != nil {
		f.engine.SetIRQLine(line, state)
	}
}

// ReadMem invokes the registered memory-read callback, or returns 0xFF
// if none is set.
func (f *Facade) ReadMem(addr uint32) byte {
	if f.memRead != nil {
		return f.memRead(addr)
	}
	return 0xFF
}

// WriteMem invokes the registered memory-write callback, a no-op if
// none is set.
func (f *Facade) WriteMem(addr uint32, value byte) {
	if f.memWrite != nil {
		f.memWrite(addr, value)
	}
}

// ReadIO invokes the registered I/O-read callback, or returns 0xFF if
// none is set (spec.md §4.1: an unregistered port reads as 0xFF).
func (f *Facade) ReadIO(port byte) byte {
	if f.ioRead != nil {
		return f.ioRead(port)
	}
	return 0xFF
}

// WriteIO invokes the registered I/O-write callback, a no-op if none
// is set.
func (f *Facade) WriteIO(port byte, value byte) {
	if f.ioWrite != nil {
		f.ioWrite(port, value)
	}
}
