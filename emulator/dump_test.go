package emulator

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/gtuc312/cpu"
)

func dumpEmulator() (emu *Emulator) {
	emu = NewEmulator()
	emu.Program = &cpu.Program{
		Data: []cpu.Data{
			{Address: cpu.REG_PC, Value: 100},
			{Address: cpu.REG_SP, Value: 1023},
			{Address: THREAD_CELL, Value: 1},
			{Address: 30 + TCB_STATE, Value: 2},
			{Address: 30 + TCB_PC, Value: 1500},
			{Address: 30 + TCB_SP, Value: 1999},
			{Address: 30 + TCB_USED_IE, Value: 12},
			{Address: 2500, Value: -4},
		},
		Code: []cpu.Code{
			{Address: 100, Text: "HLT"},
		},
	}
	emu.Reset()

	return
}

func TestEmulator_Dump(t *testing.T) {
	assert := assert.New(t)

	emu := dumpEmulator()
	before := slices.Clone(emu.Cpu.Memory.Cells)

	buff := &bytes.Buffer{}
	err := emu.Dump(buff, 0, 20)
	assert.NoError(err)
	assert.Equal("mem[0] = 100\nmem[1] = 1023\nmem[15] = 1\n", buff.String())

	buff.Reset()
	err = emu.Dump(buff, 90, 200)
	assert.NoError(err)
	assert.Equal("mem[100] = HLT\n", buff.String())

	buff.Reset()
	err = emu.DumpRegions(buff)
	assert.NoError(err)
	text := buff.String()
	assert.Contains(text, "-- Memory 0-149 --\n")
	assert.Contains(text, "-- Memory 2000-2999 --\nmem[2500] = -4\n-- Memory 3000-3999 --\n")

	buff.Reset()
	err = emu.DumpMemory(buff)
	assert.NoError(err)
	assert.Equal(9, strings.Count(buff.String(), "\n"))

	assert.Equal(before, emu.Cpu.Memory.Cells)
	assert.False(emu.Cpu.Halted)
}

func TestEmulator_ThreadTable(t *testing.T) {
	assert := assert.New(t)

	emu := dumpEmulator()

	assert.Equal(cpu.Int(1), emu.CurrentThread())
	assert.Equal(cpu.Text("HLT"), emu.Peek())

	threads := emu.ThreadTable()
	assert.Len(threads, 11)
	th := threads[1]
	assert.Equal(1, th.Id)
	assert.Equal(int64(30), th.Base)
	assert.Equal("TCB[1] -> State=2, PC=1500, SP=1999, UnblockIE=0, StartIE=0, UsedIE=12", th.String())

	// Bases outside of memory are skipped.
	emu.ThreadBases = []int64{20, 20000}
	assert.Len(emu.ThreadTable(), 1)

	buff := &bytes.Buffer{}
	err := emu.DumpThreads(buff)
	assert.NoError(err)
	lines := strings.Split(strings.TrimSpace(buff.String()), "\n")
	assert.Equal([]string{
		"---- THREAD TABLE SNAPSHOT ----",
		"CPU_REGS -> PC=100, SP=1023, SYSCALL_RET_PC=0, IE=0, MODE=KERNEL",
		"TCB[0] -> State=0, PC=0, SP=0, UnblockIE=0, StartIE=0, UsedIE=0",
		"--------------------------------",
	}, lines)
}

func TestEmulator_PeekOutOfRange(t *testing.T) {
	assert := assert.New(t)

	emu := dumpEmulator()
	emu.Cpu.SetPc(50000)
	assert.Equal(cpu.Int(0), emu.Peek())
	assert.False(emu.Cpu.Halted)

	emu.Cpu.Memory.Write(cpu.REG_PC, cpu.Text("HLT"))
	assert.Equal(cpu.Int(0), emu.Peek())
}
