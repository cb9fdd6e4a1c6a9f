package cpu

import (
	"errors"
	"fmt"
	"log"

	"github.com/ezrec/gtuc312/io"
)

// Channel is an output channel interface.
type Channel io.Channel

// MEMORY_MIN is the smallest memory that holds the registers and trap cells.
const MEMORY_MIN = int(MEM_PRN_HANDLER) + 1

// Cpu is the simulation context of the GTU-C312 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory *Memory // Memory, including the memory mapped registers.
	Mode   Mode    // Current privilege mode.
	Halted bool    // Terminal state flag.
	Err    error   // Cause of an abnormal halt, nil after HLT.

	Output Channel // SYSCALL_PRN output, logged when nil.
}

// Registers is a snapshot of the register cells and CPU state.
type Registers struct {
	Pc            Cell
	Sp            Cell
	SyscallResult Cell
	Executed      Cell
	SyscallType   Cell
	Mode          Mode
	Halted        bool
}

// NewCpu creates a new CPU with a memory of size cells.
// Sizes smaller than MEMORY_MIN are rounded up.
func NewCpu(size int) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: NewMemory(max(size, MEMORY_MIN)),
		Mode:   MODE_KERNEL,
	}

	return
}

// Reset zeroes memory and returns to KERNEL mode, running.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Memory.Reset()
	cpu.Mode = MODE_KERNEL
	cpu.Halted = false
	cpu.Err = nil

	if cpu.Output != nil {
		cpu.Output.Rewind()
	}
}

// Registers returns a snapshot of the registers.
func (cpu *Cpu) Registers() Registers {
	mem := cpu.Memory
	return Registers{
		Pc:            mem.Read(REG_PC),
		Sp:            mem.Read(REG_SP),
		SyscallResult: mem.Read(REG_SYSCALL_RESULT),
		Executed:      mem.Read(REG_INSTR_EXECUTED),
		SyscallType:   mem.Read(MEM_SYSCALL_TYPE),
		Mode:          cpu.Mode,
		Halted:        cpu.Halted,
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := cpu.Registers()

	state := "running"
	if regs.Halted {
		state = "halted"
	}

	lines := []struct {
		name  string
		value any
	}{
		{"pc", regs.Pc},
		{"sp", regs.Sp},
		{"res", regs.SyscallResult},
		{"ie", regs.Executed},
		{"sys", regs.SyscallType},
		{"mode", regs.Mode},
		{"state", state},
	}
	for _, line := range lines {
		text += fmt.Sprintf("% 5s: %v\n", line.name, line.value)
	}

	return
}

// register reads a numeric register.
func (cpu *Cpu) register(reg int64) (value int64, err error) {
	value, ok := cpu.Memory.Read(reg).Int()
	if !ok {
		err = &ErrAccess{Address: reg, Access: ACCESS_READ, Mode: cpu.Mode, Err: ErrCellType}
	}

	return
}

func (cpu *Cpu) setRegister(reg int64, value int64) {
	cpu.Memory.Write(reg, Int(value))
}

// Pc returns the program counter, or -1 if it does not hold a number.
func (cpu *Cpu) Pc() int64 {
	value, err := cpu.register(REG_PC)
	if err != nil {
		return -1
	}
	return value
}

// SetPc sets the program counter.
func (cpu *Cpu) SetPc(value int64) {
	cpu.setRegister(REG_PC, value)
}

// Sp returns the stack pointer, or -1 if it does not hold a number.
func (cpu *Cpu) Sp() int64 {
	value, err := cpu.register(REG_SP)
	if err != nil {
		return -1
	}
	return value
}

// SetSp sets the stack pointer.
func (cpu *Cpu) SetSp(value int64) {
	cpu.setRegister(REG_SP, value)
}

// Executed returns the executed instruction counter.
func (cpu *Cpu) Executed() int64 {
	value, _ := cpu.register(REG_INSTR_EXECUTED)
	return value
}

// SyscallResult returns the syscall result register.
func (cpu *Cpu) SyscallResult() int64 {
	value, _ := cpu.register(REG_SYSCALL_RESULT)
	return value
}

// SyscallType returns the kind of the last trap.
func (cpu *Cpu) SyscallType() SyscallKind {
	value, _ := cpu.register(MEM_SYSCALL_TYPE)
	return SyscallKind(value)
}

// Validate checks that address may be accessed in the current mode.
//
// Addresses outside of memory always fail, and so does any address below
// USER_BASE in USER mode. A failure halts the CPU.
func (cpu *Cpu) Validate(address int64, access Access) (err error) {
	switch {
	case !cpu.Memory.Contains(address):
		err = ErrAddressRange
	case cpu.Mode == MODE_USER && address < USER_BASE:
		err = ErrProtection
	default:
		return
	}

	cpu.Halted = true
	err = &ErrAccess{Address: address, Access: access, Mode: cpu.Mode, Err: err}

	return
}

// number reads a validated address that must hold a number.
func (cpu *Cpu) number(address int64, access Access) (value int64, err error) {
	err = cpu.Validate(address, access)
	if err != nil {
		return
	}

	value, ok := cpu.Memory.Read(address).Int()
	if !ok {
		err = &ErrAccess{Address: address, Access: access, Mode: cpu.Mode, Err: ErrCellType}
	}

	return
}

// halt stops the CPU for good.
func (cpu *Cpu) halt(err error) {
	cpu.Halted = true
	if cpu.Err == nil {
		cpu.Err = err
	}

	log.Printf("cpu: halt at pc %v: %v", cpu.Memory.Read(REG_PC), err)
}

// Fetch returns the instruction text at the program counter.
func (cpu *Cpu) Fetch() (text string, err error) {
	pc, err := cpu.register(REG_PC)
	if err != nil {
		return
	}

	err = cpu.Validate(pc, ACCESS_FETCH)
	if err != nil {
		return
	}

	text, ok := cpu.Memory.Read(pc).Instruction()
	if !ok {
		err = &ErrAccess{Address: pc, Access: ACCESS_FETCH, Mode: cpu.Mode, Err: ErrNotInstruction}
	}

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	text, err := cpu.Fetch()
	if err != nil {
		cpu.halt(err)
		return
	}

	err = cpu.Execute(text)

	return
}

// Execute decodes and executes a single instruction at the current program
// counter. Any failure halts the CPU.
func (cpu *Cpu) Execute(text string) (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	defer func() {
		if err != nil {
			cpu.halt(err)
		}
	}()

	if cpu.Verbose {
		log.Printf("%v: %v (%v)", cpu.Memory.Read(REG_PC), text, cpu.Mode)
	}

	inst, err := Decode(text)

	// A syscall is serviced in KERNEL mode, before any operand is looked at.
	if inst.Op.IsSyscall() {
		cpu.Mode = MODE_KERNEL
	}

	if err != nil {
		return
	}

	err = cpu.execute(inst)
	if err != nil {
		err = errors.Join(ErrOpcode(text), err)
	}

	return
}

// add returns a+b, or ErrOverflow if the sum does not fit in a cell.
func add(a, b int64) (sum int64, err error) {
	sum = a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		err = ErrOverflow
	}
	return
}

// sub returns a-b, or ErrOverflow if the difference does not fit in a cell.
func sub(a, b int64) (diff int64, err error) {
	diff = a - b
	if (b > 0 && diff > a) || (b < 0 && diff < a) {
		err = ErrOverflow
	}
	return
}

// execute performs a decoded instruction and the post-execution bookkeeping.
func (cpu *Cpu) execute(inst Instruction) (err error) {
	mem := cpu.Memory
	args := inst.Args

	pc, err := cpu.register(REG_PC)
	if err != nil {
		return
	}

	// Set when the instruction has placed the next PC itself.
	jumped := false

	jump := func(target int64) {
		cpu.setRegister(REG_PC, target)
		jumped = true
	}

	switch inst.Op {
	case OP_HLT:
		cpu.Halted = true
		if cpu.Verbose {
			log.Printf("cpu: hlt")
		}
		return
	case OP_SET:
		value, dst := args[0], args[1]
		err = cpu.Validate(dst, ACCESS_WRITE)
		if err != nil {
			err = errors.Join(ErrOpcodeArg2, err)
			return
		}
		mem.Write(dst, Int(value))
		jumped = dst == REG_PC
	case OP_CPY:
		src, dst := args[0], args[1]
		err = cpu.Validate(src, ACCESS_READ)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		err = cpu.Validate(dst, ACCESS_WRITE)
		if err != nil {
			err = errors.Join(ErrOpcodeArg2, err)
			return
		}
		mem.Write(dst, mem.Read(src))
		jumped = dst == REG_PC
	case OP_CPYI:
		ptr, dst := args[0], args[1]
		var src int64
		src, err = cpu.number(ptr, ACCESS_READ)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		err = cpu.Validate(dst, ACCESS_WRITE)
		if err != nil {
			err = errors.Join(ErrOpcodeArg2, err)
			return
		}
		err = cpu.Validate(src, ACCESS_READ)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		mem.Write(dst, mem.Read(src))
		jumped = dst == REG_PC
	case OP_CPYI2:
		ptr_src, ptr_dst := args[0], args[1]
		var src, dst int64
		src, err = cpu.number(ptr_src, ACCESS_READ)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		dst, err = cpu.number(ptr_dst, ACCESS_READ)
		if err != nil {
			err = errors.Join(ErrOpcodeArg2, err)
			return
		}
		err = cpu.Validate(src, ACCESS_READ)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		err = cpu.Validate(dst, ACCESS_WRITE)
		if err != nil {
			err = errors.Join(ErrOpcodeArg2, err)
			return
		}
		mem.Write(dst, mem.Read(src))
		jumped = dst == REG_PC
	case OP_ADD:
		dst, value := args[0], args[1]
		var input int64
		input, err = cpu.number(dst, ACCESS_WRITE)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		var sum int64
		sum, err = add(input, value)
		if err != nil {
			return
		}
		mem.Write(dst, Int(sum))
	case OP_ADDI:
		dst, src := args[0], args[1]
		var input, value int64
		input, err = cpu.number(dst, ACCESS_WRITE)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		value, err = cpu.number(src, ACCESS_READ)
		if err != nil {
			err = errors.Join(ErrOpcodeArg2, err)
			return
		}
		var sum int64
		sum, err = add(input, value)
		if err != nil {
			return
		}
		mem.Write(dst, Int(sum))
	case OP_SUBI:
		a1, a2 := args[0], args[1]
		var x, y int64
		x, err = cpu.number(a1, ACCESS_READ)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		y, err = cpu.number(a2, ACCESS_WRITE)
		if err != nil {
			err = errors.Join(ErrOpcodeArg2, err)
			return
		}
		var diff int64
		diff, err = sub(x, y)
		if err != nil {
			return
		}
		mem.Write(a2, Int(diff))
	case OP_JIF:
		cond, target := args[0], args[1]
		var value int64
		value, err = cpu.number(cond, ACCESS_READ)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		if value <= 0 {
			jump(target)
		}
	case OP_PUSH:
		err = cpu.push(args[0])
	case OP_POP:
		err = cpu.pop(args[0])
	case OP_CALL:
		err = cpu.call(pc, args[0])
		jumped = err == nil
	case OP_RET:
		err = cpu.ret()
		jumped = err == nil
	case OP_USER:
		var target int64
		target, err = cpu.number(args[0], ACCESS_READ)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		cpu.Mode = MODE_USER
		jump(target)
		if cpu.Verbose {
			log.Printf("cpu: user mode, pc %v", target)
		}
	case OP_SYSCALL_PRN:
		err = cpu.print(args[0])
		if err != nil {
			return
		}
		err = cpu.trap(SYSCALL_PRN, MEM_PRN_HANDLER, pc+1)
		jumped = err == nil
	case OP_SYSCALL_HLT:
		err = cpu.trap(SYSCALL_HLT, MEM_HLT_HANDLER, 0)
		jumped = err == nil
	case OP_SYSCALL_YIELD:
		err = cpu.trap(SYSCALL_YIELD, MEM_YIELD_HANDLER, pc+1)
		jumped = err == nil
	default:
		err = ErrOpcodeUnknown
	}

	if err != nil {
		return
	}

	if !jumped {
		pc, err = cpu.register(REG_PC)
		if err != nil {
			return
		}
		cpu.setRegister(REG_PC, pc+1)
	}

	executed, err := cpu.register(REG_INSTR_EXECUTED)
	if err != nil {
		return
	}
	cpu.setRegister(REG_INSTR_EXECUTED, executed+1)

	return
}
