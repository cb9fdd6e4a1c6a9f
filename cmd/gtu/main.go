// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/gtuc312/emulator"
	"github.com/ezrec/gtuc312/loader"
	"github.com/ezrec/gtuc312/translate"
)

// Trace modes.
const (
	DEBUG_NONE   = -1 // No tracing.
	DEBUG_FINAL  = 0  // Dump memory regions after the run.
	DEBUG_STEP   = 1  // Dump memory regions after every instruction.
	DEBUG_PAUSE  = 2  // As DEBUG_STEP, waiting for ENTER between steps.
	DEBUG_THREAD = 3  // Dump the thread table on thread switch and syscalls.
)

func main() {
	var debug int
	var cycles int
	var output string
	var trace string
	var thread int64
	var overlap bool
	var verbose bool
	var lang string
	var strict bool

	flag.IntVar(&debug, "D", DEBUG_NONE, "Debug mode (0-3)")
	flag.IntVar(&cycles, "c", emulator.MAX_CYCLES, "Maximum cycles to run")
	flag.StringVar(&output, "o", "-", "Program output")
	flag.StringVar(&trace, "t", "-", "Debug trace output")
	flag.Int64Var(&thread, "T", emulator.THREAD_CELL, "Cell of the current thread id")
	flag.BoolVar(&overlap, "allow-overlap", false, "Permit data and code at the same address")
	flag.BoolVar(&strict, "strict", false, "Fail on any program warning")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "lang", "", "Message language, as a BCP 47 tag (default from the system)")

	flag.Parse()

	if lang != "" {
		translate.SetLocale(lang)
	}

	if flag.NArg() != 1 {
		log.Fatalf("%v: usage: %v [options] program.gtu", os.Args[0], os.Args[0])
	}
	if debug < DEBUG_NONE || debug > DEBUG_THREAD {
		log.Fatalf("%v: debug mode must be 0, 1, 2, or 3", os.Args[0])
	}

	filename := flag.Arg(0)
	inf, err := os.Open(filename)
	if err != nil {
		log.Fatalf("%v: %v", filename, err)
	}
	defer inf.Close()

	ld := &loader.Loader{Verbose: verbose, AllowOverlap: overlap}
	prog, err := ld.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", filename, err)
	}
	if strict && len(ld.Warnings) > 0 {
		log.Fatalf("%v: %v", filename, errors.Join(ld.Warnings...))
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Verbose = verbose
	emu.ThreadCell = thread
	emu.Strict = strict

	if output != "-" {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	var tracef io.Writer = os.Stderr
	if trace != "-" {
		tf, err := os.Create(trace)
		if err != nil {
			log.Fatalf("%v: %v", trace, err)
		}
		defer tf.Close()
		tracef = tf
	}

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", filename, err)
	}

	pause := debug == DEBUG_PAUSE && term.IsTerminal(int(os.Stdin.Fd()))
	if debug == DEBUG_PAUSE && !pause {
		translate.Logf("%v: stdin is not a terminal, not pausing", os.Args[0])
	}
	stdin := bufio.NewReader(os.Stdin)

	last_thread := ""
	for emu.Cycles < cycles {
		switch debug {
		case DEBUG_STEP, DEBUG_PAUSE:
			if pause {
				fmt.Fprintf(os.Stderr, "[IE %v] Press ENTER to step", emu.Cpu.Executed())
				stdin.ReadString('\n')
			}
			fmt.Fprintf(tracef, "[INSTRUCTION] PC=%v, Executing: %v\n", emu.Cpu.Pc(), emu.Peek())
		case DEBUG_THREAD:
			current := emu.CurrentThread().String()
			if current != last_thread || strings.HasPrefix(emu.Peek().String(), "SYSCALL") {
				emu.DumpThreads(tracef)
				last_thread = current
			}
		}

		done, err := emu.Tick()

		if debug == DEBUG_STEP || debug == DEBUG_PAUSE {
			fmt.Fprintln(tracef, "[MEMORY_DUMP]")
			emu.DumpRegions(tracef)
			fmt.Fprintln(tracef)
		}

		if err != nil {
			log.Print(err)
		}
		if done {
			break
		}
	}

	if debug == DEBUG_FINAL {
		emu.DumpRegions(tracef)
	}

	if !emu.Cpu.Halted {
		translate.Logf("%v: %d cycles exhausted, cpu not halted", filename, cycles)
	}

	fmt.Fprintf(os.Stderr, "%v", emu.Cpu.String())
}
