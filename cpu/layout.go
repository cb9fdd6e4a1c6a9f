package cpu

import (
	"fmt"
	"iter"
	"maps"
)

// Memory mapped registers.
const (
	REG_PC             = int64(0) // Program counter.
	REG_SP             = int64(1) // Stack pointer.
	REG_SYSCALL_RESULT = int64(2) // Syscall result, or the return address of a trap.
	REG_INSTR_EXECUTED = int64(3) // Executed instruction counter.
)

// Reserved cells of the syscall trap protocol.
const (
	MEM_SYSCALL_TYPE  = int64(10) // Kind of the last syscall.
	MEM_HLT_HANDLER   = int64(11) // Address of the SYSCALL_HLT handler.
	MEM_YIELD_HANDLER = int64(12) // Address of the SYSCALL_YIELD handler.
	MEM_PRN_HANDLER   = int64(13) // Address of the SYSCALL_PRN handler.
)

const (
	USER_BASE   = int64(1000) // Lowest address accessible in USER mode.
	MEMORY_SIZE = 11000       // Default memory size in cells.
)

var _layout_defines = map[string]string{
	"REG_PC":             fmt.Sprintf("%d", REG_PC),
	"REG_SP":             fmt.Sprintf("%d", REG_SP),
	"REG_SYSCALL_RESULT": fmt.Sprintf("%d", REG_SYSCALL_RESULT),
	"REG_INSTR_EXECUTED": fmt.Sprintf("%d", REG_INSTR_EXECUTED),
	"MEM_SYSCALL_TYPE":   fmt.Sprintf("%d", MEM_SYSCALL_TYPE),
	"MEM_HLT_HANDLER":    fmt.Sprintf("%d", MEM_HLT_HANDLER),
	"MEM_YIELD_HANDLER":  fmt.Sprintf("%d", MEM_YIELD_HANDLER),
	"MEM_PRN_HANDLER":    fmt.Sprintf("%d", MEM_PRN_HANDLER),
	"USER_BASE":          fmt.Sprintf("%d", USER_BASE),
	"MEMORY_SIZE":        fmt.Sprintf("%d", MEMORY_SIZE),
	"SYSCALL_PRN":        fmt.Sprintf("%d", SYSCALL_PRN),
	"SYSCALL_HLT":        fmt.Sprintf("%d", SYSCALL_HLT),
	"SYSCALL_YIELD":      fmt.Sprintf("%d", SYSCALL_YIELD),
}

// Defines returns the memory layout contract as name/value pairs.
func Defines() iter.Seq2[string, string] {
	return maps.All(_layout_defines)
}
