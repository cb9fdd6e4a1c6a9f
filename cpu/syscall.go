package cpu

import (
	"errors"
	"log"
)

// print surfaces the cell at src on the output channel.
func (cpu *Cpu) print(src int64) (err error) {
	err = cpu.Validate(src, ACCESS_READ)
	if err != nil {
		err = errors.Join(ErrOpcodeArg1, err)
		return
	}

	cell := cpu.Memory.Read(src)

	if cpu.Output == nil {
		log.Printf("cpu: prn %v", cell)
		return
	}

	err = cpu.Output.Send(cell.String())
	if err != nil {
		err = errors.Join(ErrChannelSend, err)
	}

	return
}

// trap records the syscall kind and result, then jumps to the handler whose
// address is stored in the handler cell.
func (cpu *Cpu) trap(kind SyscallKind, handler_cell int64, result int64) (err error) {
	err = cpu.Validate(MEM_SYSCALL_TYPE, ACCESS_WRITE)
	if err != nil {
		return
	}

	cpu.Memory.Write(MEM_SYSCALL_TYPE, Int(int64(kind)))
	cpu.setRegister(REG_SYSCALL_RESULT, result)

	handler, err := cpu.number(handler_cell, ACCESS_READ)
	if err != nil {
		err = errors.Join(ErrHandlerInvalid, err)
		return
	}

	err = cpu.Validate(handler, ACCESS_JUMP)
	if err != nil {
		err = errors.Join(ErrHandlerInvalid, err)
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: syscall %v, handler %v, result %v", kind, handler, result)
	}

	cpu.setRegister(REG_PC, handler)

	return
}
