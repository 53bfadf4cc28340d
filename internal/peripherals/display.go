package peripherals

// Display is the Braille cell display: a 40-cell output buffer at
// base_port+0 (data) and base_port+1 (status). Grounded on
// original_source/qns/io.py BrailleDisplay.
type Display struct {
	cells  int
	buffer []byte
	cursor int
}

// NewDisplay constructs a Display with the given cell count (40 for
// the standard BSPLUS unit).
func NewDisplay(cells int) *Display {
	return &Display{cells: cells, buffer: make([]byte, cells)}
}

// Read handles reads relative to the display's base port: offset 0 is
// unused for reads here (display is write-mostly, like the original),
// offset 1 is the status port (always ready), anything else is 0xFF.
func (d *Display) Read(offset int) byte {
	if offset == 1 {
		return 0x00 // ready
	}
	return 0xFF
}

// Write handles writes relative to the display's base port: offset 0 is
// the data port, advancing the write cursor until the buffer is full.
func (d *Display) Write(offset int, value byte) {
	if offset != 0 {
		return
	}
	if d.cursor < d.cells {
		d.buffer[d.cursor] = value
		d.cursor++
	}
}

// ResetCursor returns the write cursor to the first cell, as firmware
// typically does before refreshing the full line.
func (d *Display) ResetCursor() { d.cursor = 0 }

// Text renders the current cell buffer as a best-effort ASCII
// approximation for diagnostics/tests (placeholder dot-pattern mapping,
// matching the original's get_text: printable bytes pass through,
// everything else becomes '.').
func (d *Display) Text() string {
	out := make([]byte, len(d.buffer))
	for i, b := range d.buffer {
		if b >= 32 && b < 127 {
			out[i] = b
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}
