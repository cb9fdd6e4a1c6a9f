package emulator

import (
	"fmt"
	"io"

	"github.com/ezrec/gtuc312/cpu"
)

// THREAD_CELL is the conventional cell of the current thread id.
const THREAD_CELL = int64(15)

// Thread table entry field offsets from the entry base.
const (
	TCB_STATE      = 1
	TCB_PC         = 2
	TCB_SP         = 3
	TCB_UNBLOCK_IE = 4
	TCB_START_IE   = 5
	TCB_USED_IE    = 6
)

// DefaultThreadBases returns the conventional thread table base addresses.
func DefaultThreadBases() []int64 {
	return []int64{20, 30, 40, 50, 100, 107, 114, 121, 128, 135, 142}
}

// Region is a half-open memory address range.
type Region struct {
	Start int64
	End   int64
}

// DumpRegions are the regions shown by a region dump.
var DumpRegions = []Region{
	{0, 150},
	{1000, 2000},
	{2000, 3000},
	{3000, 4000},
}

// Thread is a snapshot of one thread table entry.
type Thread struct {
	Id        int
	Base      int64
	State     cpu.Cell
	Pc        cpu.Cell
	Sp        cpu.Cell
	UnblockIE cpu.Cell
	StartIE   cpu.Cell
	UsedIE    cpu.Cell
}

// String returns the thread table entry on one line.
func (th Thread) String() string {
	return fmt.Sprintf("TCB[%d] -> State=%v, PC=%v, SP=%v, UnblockIE=%v, StartIE=%v, UsedIE=%v",
		th.Id, th.State, th.Pc, th.Sp, th.UnblockIE, th.StartIE, th.UsedIE)
}

// cell reads memory without validation, zero if out of range.
func (emu *Emulator) cell(address int64) (cell cpu.Cell) {
	if emu.Cpu.Memory.Contains(address) {
		cell = emu.Cpu.Memory.Read(address)
	}
	return
}

// Peek returns the cell at the program counter, without validation.
func (emu *Emulator) Peek() cpu.Cell {
	return emu.cell(emu.Cpu.Pc())
}

// CurrentThread returns the content of the current thread id cell.
func (emu *Emulator) CurrentThread() cpu.Cell {
	return emu.cell(emu.ThreadCell)
}

// ThreadTable returns a snapshot of the thread table. Entries whose base is
// outside of memory are left out.
func (emu *Emulator) ThreadTable() (threads []Thread) {
	for id, base := range emu.ThreadBases {
		if !emu.Cpu.Memory.Contains(base) {
			continue
		}
		threads = append(threads, Thread{
			Id:        id,
			Base:      base,
			State:     emu.cell(base + TCB_STATE),
			Pc:        emu.cell(base + TCB_PC),
			Sp:        emu.cell(base + TCB_SP),
			UnblockIE: emu.cell(base + TCB_UNBLOCK_IE),
			StartIE:   emu.cell(base + TCB_START_IE),
			UsedIE:    emu.cell(base + TCB_USED_IE),
		})
	}

	return
}

// DumpRegisters writes the register snapshot on one line.
func (emu *Emulator) DumpRegisters(w io.Writer) (err error) {
	regs := emu.Cpu.Registers()
	_, err = fmt.Fprintf(w, "CPU_REGS -> PC=%v, SP=%v, SYSCALL_RET_PC=%v, IE=%v, MODE=%v\n",
		regs.Pc, regs.Sp, regs.SyscallResult, regs.Executed, regs.Mode)
	return
}

// DumpThreads writes the registers and the thread table.
func (emu *Emulator) DumpThreads(w io.Writer) (err error) {
	_, err = fmt.Fprintf(w, "\n---- THREAD TABLE SNAPSHOT ----\n")
	if err != nil {
		return
	}

	err = emu.DumpRegisters(w)
	if err != nil {
		return
	}

	for _, th := range emu.ThreadTable() {
		_, err = fmt.Fprintln(w, th.String())
		if err != nil {
			return
		}
	}

	_, err = fmt.Fprintln(w, "--------------------------------")

	return
}

// Dump writes the non-zero cells in [start, end).
func (emu *Emulator) Dump(w io.Writer, start, end int64) (err error) {
	for address, cell := range emu.Cpu.Memory.Range(start, end) {
		_, err = fmt.Fprintf(w, "mem[%d] = %v\n", address, cell)
		if err != nil {
			return
		}
	}

	return
}

// DumpRegions writes each of the DumpRegions, with a header.
func (emu *Emulator) DumpRegions(w io.Writer) (err error) {
	for _, region := range DumpRegions {
		_, err = fmt.Fprintf(w, "-- Memory %d-%d --\n", region.Start, region.End-1)
		if err != nil {
			return
		}
		err = emu.Dump(w, region.Start, region.End)
		if err != nil {
			return
		}
	}

	return
}

// DumpMemory writes every non-zero cell.
func (emu *Emulator) DumpMemory(w io.Writer) (err error) {
	return emu.Dump(w, 0, emu.Cpu.Memory.Size())
}
