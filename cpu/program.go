package cpu

import (
	"iter"
	"log"

	"github.com/ezrec/gtuc312/internal"
)

// Data is a numeric cell of the data segment.
type Data struct {
	LineNo  int
	Address int64
	Value   int64
}

// Code is an instruction cell of the instruction segment.
type Code struct {
	LineNo  int
	Address int64
	Text    string
}

// Program is a loadable image: a data segment and an instruction segment,
// each ascending by address.
type Program struct {
	Data []Data
	Code []Code
}

// Cells iterates over the cells to place in memory, data first.
func (prog *Program) Cells() iter.Seq2[int64, Cell] {
	return internal.IterSeq2Concat(
		internal.IterSeq2Map(prog.Data, func(d Data) (int64, Cell) { return d.Address, Int(d.Value) }),
		internal.IterSeq2Map(prog.Code, func(c Code) (int64, Cell) { return c.Address, Text(c.Text) }),
	)
}

// Index maps each address of the instruction segment to its entry.
func (prog *Program) Index() (index map[int64]Code) {
	index = make(map[int64]Code, len(prog.Code))
	for _, code := range prog.Code {
		index[code.Address] = code
	}

	return
}

// Load places a program into memory. Addresses outside of memory are
// skipped, and returned as warnings.
func (cpu *Cpu) Load(prog *Program) (warnings []error) {
	for address, cell := range prog.Cells() {
		if !cpu.Memory.Contains(address) {
			warn := &ErrLoad{Address: address, Err: ErrLoadRange}
			log.Printf("cpu: load: %v", warn)
			warnings = append(warnings, warn)
			continue
		}
		cpu.Memory.Write(address, cell)
	}

	if cpu.Verbose {
		log.Printf("cpu: loaded, pc %v sp %v", cpu.Memory.Read(REG_PC), cpu.Memory.Read(REG_SP))
	}

	return
}
