package cpu

import (
	"iter"
)

// Memory is the linear cell store of the CPU.
//
// Read and Write are unchecked; the CPU validates every address before
// calling them.
type Memory struct {
	Cells []Cell
}

// NewMemory creates a zeroed memory of size cells.
func NewMemory(size int) (mem *Memory) {
	mem = &Memory{
		Cells: make([]Cell, size),
	}

	return
}

// Size returns the number of cells.
func (mem *Memory) Size() int64 {
	return int64(len(mem.Cells))
}

// Contains returns true if the address is inside the memory.
func (mem *Memory) Contains(address int64) bool {
	return address >= 0 && address < mem.Size()
}

// Read returns the cell at address.
func (mem *Memory) Read(address int64) Cell {
	return mem.Cells[address]
}

// Write stores a cell at address.
func (mem *Memory) Write(address int64, cell Cell) {
	mem.Cells[address] = cell
}

// Range returns an iterator over the non-zero cells in [start, end).
// The range is clipped to the memory bounds.
func (mem *Memory) Range(start, end int64) iter.Seq2[int64, Cell] {
	start = max(start, 0)
	end = min(end, mem.Size())

	return func(yield func(address int64, cell Cell) bool) {
		for address := start; address < end; address++ {
			cell := mem.Cells[address]
			if cell.IsZero() {
				continue
			}
			if !yield(address, cell) {
				return
			}
		}
	}
}

// Reset zeroes all of memory.
func (mem *Memory) Reset() {
	clear(mem.Cells)
}
