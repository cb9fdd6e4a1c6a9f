package cpu

import (
	"github.com/ezrec/gtuc312/io"
)

// testCpu creates a default sized CPU loaded with a program, printing to a
// Temporary channel.
func testCpu(data []Data, code []Code) (cpu *Cpu, out *io.Temporary) {
	cpu = NewCpu(MEMORY_SIZE)
	out = &io.Temporary{}
	cpu.Output = out
	cpu.Load(&Program{Data: data, Code: code})

	return
}

// run ticks the CPU until halted, or for at most 1000 cycles.
func run(cpu *Cpu) (err error) {
	for range 1000 {
		if cpu.Halted {
			return
		}
		err = cpu.Tick()
	}

	return
}

// boot is the usual data segment: PC at 100, SP at 1023.
func boot(data ...Data) []Data {
	return append([]Data{{Address: REG_PC, Value: 100}, {Address: REG_SP, Value: 1023}}, data...)
}
