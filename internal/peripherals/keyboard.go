// Package peripherals implements the BNS Braille chord keyboard, Braille
// cell display, and watchdog timer, grounded on
// original_source/qns/io.py's BrailleKeyboard/BrailleDisplay/Watchdog.
package peripherals

// IRQFunc is invoked with 1 to assert, 0 to clear an interrupt line.
type IRQFunc func(state int)

// Keyboard models the 8-dot Braille chord keyboard latch. Writes are
// ignored (input-only device); an IRQ callback fires on every
// 0-\>non-zero transition, grounded on the teacher's bus.go
// updateJoypadIRQ edge-detection style.
type Keyboard struct {
	dots byte
	irq  IRQFunc
}

// NewKeyboard constructs a keyboard with no chord pressed.
func NewKeyboard(irq IRQFunc) *Keyboard {
	return &Keyboard{irq: irq}
}

// Read returns the current chord latch and clears it, per the polling
// contract (spec.md §3: "polling clears the latch when the firmware
// reads it").
func (k *Keyboard) Read(_ byte) byte {
	v := k.dots
	k.dots = 0
	return v
}

// Write is a no-op; the keyboard is input only.
func (k *Keyboard) Write(_ byte, _ byte) {}

// Press sets the current chord (bitmask of dots 1-8) and fires the IRQ
// callback on a 0-\>non-zero transition.
func (k *Keyboard) Press(dots byte) {
	was := k.dots
	k.dots = dots
	if was == 0 && k.dots != 0 && k.irq != nil {
		k.irq(1)
	}
}

// Release clears the chord latch via the KEYCLR port, independent of
// Read's own clear-on-read behavior; it models a full key-up even if
// firmware never polls in between.
func (k *Keyboard) Release() {
	k.dots = 0
}
