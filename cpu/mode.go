package cpu

// Mode is the privilege level of the CPU.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_KERNEL = Mode(0) // KERNEL
	MODE_USER   = Mode(1) // USER
)

// Access is the purpose of a memory access, for diagnostics only.
type Access int

//go:generate go tool stringer -linecomment -type=Access
const (
	ACCESS_FETCH = Access(0) // fetch
	ACCESS_READ  = Access(1) // read
	ACCESS_WRITE = Access(2) // write
	ACCESS_STACK = Access(3) // stack
	ACCESS_JUMP  = Access(4) // jump
)

// SyscallKind is the value stored in MEM_SYSCALL_TYPE by a trap.
type SyscallKind int64

//go:generate go tool stringer -linecomment -type=SyscallKind
const (
	SYSCALL_PRN   = SyscallKind(0) // PRN
	SYSCALL_HLT   = SyscallKind(1) // HLT
	SYSCALL_YIELD = SyscallKind(2) // YIELD
)
