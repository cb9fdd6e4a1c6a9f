package cpu

import (
	"errors"
)

// The stack lives in memory and grows down. SP addresses the top cell.

// push stores the cell at src below the stack top.
// On failure the stack pointer is left unchanged.
func (cpu *Cpu) push(src int64) (err error) {
	err = cpu.Validate(src, ACCESS_READ)
	if err != nil {
		err = errors.Join(ErrOpcodeArg1, err)
		return
	}
	value := cpu.Memory.Read(src)

	sp, err := cpu.register(REG_SP)
	if err != nil {
		return
	}

	sp--
	err = cpu.Validate(sp, ACCESS_STACK)
	if err != nil {
		err = errors.Join(ErrStackInvalid, err)
		return
	}

	cpu.setRegister(REG_SP, sp)
	cpu.Memory.Write(sp, value)

	return
}

// pop moves the stack top into dst.
func (cpu *Cpu) pop(dst int64) (err error) {
	sp, err := cpu.register(REG_SP)
	if err != nil {
		return
	}

	err = cpu.Validate(sp, ACCESS_STACK)
	if err != nil {
		err = errors.Join(ErrStackInvalid, err)
		return
	}

	err = cpu.Validate(dst, ACCESS_WRITE)
	if err != nil {
		err = errors.Join(ErrOpcodeArg1, err)
		return
	}

	cpu.Memory.Write(dst, cpu.Memory.Read(sp))

	// dst may have been the stack pointer itself.
	sp, err = cpu.register(REG_SP)
	if err != nil {
		return
	}
	cpu.setRegister(REG_SP, sp+1)

	return
}

// call pushes the return address pc+1 and jumps to target.
// On failure the stack pointer is left unchanged.
func (cpu *Cpu) call(pc int64, target int64) (err error) {
	sp, err := cpu.register(REG_SP)
	if err != nil {
		return
	}

	sp--
	err = cpu.Validate(sp, ACCESS_STACK)
	if err != nil {
		err = errors.Join(ErrStackInvalid, err)
		return
	}

	cpu.Memory.Write(sp, Int(pc+1))
	cpu.setRegister(REG_SP, sp)
	cpu.setRegister(REG_PC, target)

	return
}

// ret pops the return address into the program counter.
func (cpu *Cpu) ret() (err error) {
	sp, err := cpu.register(REG_SP)
	if err != nil {
		return
	}

	target, err := cpu.number(sp, ACCESS_STACK)
	if err != nil {
		err = errors.Join(ErrStackInvalid, err)
		return
	}

	cpu.setRegister(REG_SP, sp+1)
	cpu.setRegister(REG_PC, target)

	return
}
