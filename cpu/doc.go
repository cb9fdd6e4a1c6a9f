// Package cpu implements the GTU-C312 processor.
//
// The CPU has a single linear memory of cells. The first cells are memory
// mapped registers: program counter, stack pointer, syscall result, and the
// executed instruction counter. A handful of further low cells are reserved
// for the syscall trap protocol, where the hosted operating system installs
// the addresses of its handlers.
//
// Execution is either in KERNEL mode, with access to all of memory, or in USER
// mode, where every access below USER_BASE halts the machine. The SYSCALL_*
// instructions always enter KERNEL mode and transfer control through the
// handler cells; the USER instruction returns to USER mode.
package cpu
