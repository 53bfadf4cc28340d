package emu

// Config contains settings that affect emulation behavior.
type Config struct {
	Trace      bool // trace I/O port transactions and write addresses
	Audio      bool // open a real audio output device
	ClockHz    uint64
	DisplayCells int
}

// DefaultConfig returns the power-on configuration for the BSPLUS
// variant: 12.288 MHz clock, audio enabled, a 40-cell Braille display.
func DefaultConfig() Config {
	return Config{
		Audio:        true,
		ClockHz:      12_288_000,
		DisplayCells: 40,
	}
}
