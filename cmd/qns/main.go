// Command qns runs the Braille 'n Speak BSPLUS emulator: it loads a
// firmware image, wires the BSPLUS port map, and either runs headless
// for a fixed cycle budget or traces the boot sequence.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/sirupsen/logrus"

	"github.com/bnsemu/qns/internal/emu"
	"github.com/bnsemu/qns/internal/logging"
	"github.com/bnsemu/qns/internal/synth"
)

type cliFlags struct {
	ROMPath string
	Trace   bool
	Audio   bool
	Cycles  uint64
	BootTrace bool
	Verbose bool
}

func parseFlags() cliFlags {
	var f cliFlags
	flag.StringVar(&f.ROMPath, "rom", "", "path to firmware image (.bin / update package / raw)")
	flag.BoolVar(&f.Trace, "trace", false, "enable I/O bus tracing")
	flag.BoolVar(&f.Audio, "audio", false, "enable SSI-263 audio output")
	flag.Uint64Var(&f.Cycles, "cycles", 0, "cycle budget for headless run (0 = one-second default; no engine is wired in so there is nothing to halt an unbounded run)")
	flag.BoolVar(&f.BootTrace, "boot-trace", false, "print the boot trace instead of running")
	flag.BoolVar(&f.Verbose, "verbose", false, "enable debug-level logging")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()
	if f.ROMPath == "" {
		fmt.Fprintln(os.Stderr, "usage: qns -rom <firmware> [-audio] [-trace] [-cycles N] [-boot-trace]")
		os.Exit(1)
	}

	if f.Verbose {
		logging.SetLevel(logrus.DebugLevel)
	}
	logger := logging.Log()

	data, err := os.ReadFile(f.ROMPath)
	if err != nil {
		logger.Fatalf("reading ROM: %v", err)
	}

	cfg := emu.DefaultConfig()
	cfg.Audio = f.Audio
	cfg.Trace = f.Trace

	var audioCtx *audio.Context
	if cfg.Audio {
		audioCtx = audio.NewContext(synth.DeviceSampleRate)
	}

	// No Z180 execution engine is wired in: instruction decoding is an
	// external collaborator (spec.md §1), so the machine runs its CPU
	// facade in degraded mode, exercising every other subsystem.
	m := emu.New(cfg, nil, audioCtx, logger)
	m.LoadROM(f.ROMPath, data)

	if err := m.Reset(); err != nil {
		logger.Fatalf("reset: %v", err)
	}

	if f.BootTrace {
		runBootTrace(m)
		return
	}

	runHeadless(m, f.Cycles, logger)
}

func runBootTrace(m *emu.Machine) {
	fmt.Println("=== BNS Boot Trace ===")
	for i := 0; i < 10; i++ {
		cycles := m.Step()
		fmt.Printf("%2d. ran %d cycles (total=%d)\n", i+1, cycles, m.CyclesRun())
	}
}

func runHeadless(m *emu.Machine, cycles uint64, logger *logrus.Logger) {
	budget := cycles
	if budget == 0 {
		budget = 12_288_000 // one second of CPU time, a reasonable headless default
	}

	start := time.Now()
	ran := m.Run(budget)
	elapsed := time.Since(start)

	logger.WithFields(logrus.Fields{
		"cycles_run": ran,
		"elapsed":    elapsed.String(),
		"display":    m.DisplayText(),
	}).Info("qns: run complete")

	if phonemes := m.PhonemeLog(); len(phonemes) > 0 {
		logger.WithField("phonemes", phonemes).Info("qns: speech output")
	}
}
