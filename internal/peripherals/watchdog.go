package peripherals

// Watchdog models the BSPLUS watchdog timer register. A write resets
// the counter; no expiry action is modeled, matching the original,
// which only tracked the counter without ever acting on it.
type Watchdog struct {
	counter int
}

// NewWatchdog constructs a Watchdog with its counter at zero.
func NewWatchdog() *Watchdog { return &Watchdog{} }

// Read always returns 0xFF, matching original_source/qns/io.py Watchdog.
func (w *Watchdog) Read(_ byte) byte { return 0xFF }

// Write resets the watchdog counter.
func (w *Watchdog) Write(_ byte, _ byte) { w.counter = 0 }

// Counter exposes the current counter value for diagnostics/tests.
func (w *Watchdog) Counter() int { return w.counter }
