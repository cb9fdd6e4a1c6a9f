// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives the GTU-C312 CPU: it loads a program, runs the
// fetch/execute cycle under a cycle budget, and provides read-only
// diagnostics of the machine state.
package emulator

import (
	"errors"
	"iter"
	"maps"
	"os"
	"strconv"

	"github.com/ezrec/gtuc312/cpu"
	"github.com/ezrec/gtuc312/internal"
	"github.com/ezrec/gtuc312/io"
	"github.com/ezrec/gtuc312/translate"
)

const (
	MAX_CYCLES = 1000 // Default cycle budget.
)

// Outcome is the result of a budgeted run.
type Outcome int

//go:generate go tool stringer -linecomment -type=Outcome
const (
	OUTCOME_HALTED    = Outcome(0) // halted
	OUTCOME_EXHAUSTED = Outcome(1) // exhausted
)

var _emulator_defines = map[string]string{
	"MAX_CYCLES": strconv.Itoa(MAX_CYCLES),
}

// Emulator state. CPU + program + output channel.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program.

	Tape io.Tape // SYSCALL_PRN output.

	ThreadBases []int64 // Base addresses of the thread table, for diagnostics.
	ThreadCell  int64   // Cell holding the current thread id, for diagnostics.

	Strict bool // If set, Reset fails when the program did not load cleanly.

	Cycles   int     // Cycles run since the last reset.
	Warnings []error // Load warnings of the last reset.

	index map[int64]cpu.Code // Program instructions by address, as of the last reset.
}

// NewEmulator creates a new emulator with a default sized memory,
// printing to standard output.
func NewEmulator() (emu *Emulator) {
	return NewEmulatorSize(cpu.MEMORY_SIZE)
}

// NewEmulatorSize creates a new emulator with a memory of size cells.
func NewEmulatorSize(size int) (emu *Emulator) {
	emu = &Emulator{
		Cpu:         cpu.NewCpu(size),
		Program:     &cpu.Program{},
		ThreadBases: DefaultThreadBases(),
		ThreadCell:  THREAD_CELL,
	}

	emu.Tape.Output = os.Stdout
	emu.Cpu.Output = &emu.Tape

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines), cpu.Defines())
}

// Reset clears the machine and loads the program.
// In Strict mode any load warning is returned as an error; the program is
// still loaded.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	emu.Cycles = 0
	emu.Warnings = emu.Cpu.Load(emu.Program)
	emu.index = emu.Program.Index()

	if emu.Strict && len(emu.Warnings) > 0 {
		err = errors.Join(append([]error{ErrLoadWarnings}, emu.Warnings...)...)
	}

	return
}

// Code returns the program instruction at the program counter.
func (emu *Emulator) Code() (code cpu.Code) {
	code = emu.index[emu.Cpu.Pc()]
	return
}

// LineNo returns the source line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	return emu.Code().LineNo
}

// Tick performs a single tick of the emulator.
// done is set once the CPU is halted, for any reason.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	if emu.Cpu.Halted {
		done = true
		return
	}

	pc := emu.Cpu.Pc()
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Address: pc, LineNo: lineno, Err: err}
		}
	}()

	emu.Cycles++
	err = emu.Cpu.Tick()
	done = emu.Cpu.Halted

	return
}

// Run ticks until the CPU halts or budget cycles have run.
// err is the cause of an abnormal halt.
func (emu *Emulator) Run(budget int) (outcome Outcome, err error) {
	var done bool
	for range budget {
		done, err = emu.Tick()
		if done {
			break
		}
	}

	if !emu.Cpu.Halted {
		outcome = OUTCOME_EXHAUSTED
		if emu.Verbose {
			translate.Logf("emulator: %d cycles exhausted", budget)
		}
		return
	}

	outcome = OUTCOME_HALTED

	return
}
