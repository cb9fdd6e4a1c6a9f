package emulator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/gtuc312/cpu"
	"github.com/ezrec/gtuc312/loader"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(int64(cpu.MEMORY_SIZE), emu.Cpu.Memory.Size())
	assert.Equal(THREAD_CELL, emu.ThreadCell)
	assert.Len(emu.ThreadBases, 11)

	defines := map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}
	assert.Equal("1000", defines["MAX_CYCLES"])
	assert.Equal("1000", defines["USER_BASE"])
	assert.Equal("13", defines["MEM_PRN_HANDLER"])
}

// doLoad parses a program into a fresh emulator printing to output.
func doLoad(t *testing.T, lines ...string) (emu *Emulator, output *bytes.Buffer) {
	assert := assert.New(t)

	ld := &loader.Loader{}
	prog, err := ld.Parse(strings.NewReader(strings.Join(lines, "\n")))
	assert.NoError(err)
	if err != nil {
		t.FailNow()
	}

	emu = NewEmulator()
	emu.Program = prog

	err = emu.Reset()
	assert.NoError(err)

	output = &bytes.Buffer{}
	emu.Tape.Output = output

	return
}

func TestEmulator_Scenarios(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		data     []string
		code     []string
		address  int64
		value    cpu.Cell
		executed int64
	}){
		{"set_hlt",
			[]string{"0 100", "1 1023"},
			[]string{"100: SET 50 200", "101: HLT"},
			200, cpu.Int(50), 1},
		{"cpyi2",
			[]string{"0 100", "1 1023", "200 10", "201 20", "300 200", "301 201"},
			[]string{"100: CPYI2 300 301", "101: HLT"},
			201, cpu.Int(10), 1},
		{"syscall_hlt",
			[]string{"0 100", "1 1023", "11 500"},
			[]string{"100: SYSCALL_HLT", "500: SET 99 700", "501: HLT"},
			700, cpu.Int(99), 2},
		{"call_ret",
			[]string{"0 100", "1 1023"},
			[]string{"100: CALL 200", "101: SET 55 300", "102: HLT", "200: SET 22 301", "201: RET"},
			300, cpu.Int(55), 4},
	}

	for _, entry := range table {
		lines := []string{loader.BEGIN_DATA}
		lines = append(lines, entry.data...)
		lines = append(lines, loader.END_DATA, loader.BEGIN_INSTR)
		lines = append(lines, entry.code...)
		lines = append(lines, loader.END_INSTR)

		emu, _ := doLoad(t, lines...)

		outcome, err := emu.Run(MAX_CYCLES)
		assert.NoError(err, entry.name)
		assert.Equal(OUTCOME_HALTED, outcome, entry.name)
		assert.Nil(emu.Cpu.Err, entry.name)
		assert.Equal(entry.value, emu.Cpu.Memory.Read(entry.address), entry.name)
		assert.Equal(entry.executed, emu.Cpu.Executed(), entry.name)
	}
}

func TestEmulator_SyscallType(t *testing.T) {
	assert := assert.New(t)

	emu, _ := doLoad(t,
		loader.BEGIN_DATA,
		"0 100",
		"11 500",
		loader.END_DATA,
		loader.BEGIN_INSTR,
		"100: SYSCALL_HLT",
		"500: HLT",
		loader.END_INSTR,
	)

	_, err := emu.Run(MAX_CYCLES)
	assert.NoError(err)
	assert.Equal(cpu.SYSCALL_HLT, emu.Cpu.SyscallType())
	assert.Equal(cpu.Int(1), emu.Cpu.Memory.Read(cpu.MEM_SYSCALL_TYPE))
}

func TestEmulator_UserProtection(t *testing.T) {
	assert := assert.New(t)

	emu, _ := doLoad(t,
		loader.BEGIN_DATA,
		"0 1000",
		loader.END_DATA,
		loader.BEGIN_INSTR,
		"1000: SET 50 20",
		loader.END_INSTR,
	)
	emu.Cpu.Mode = cpu.MODE_USER

	outcome, err := emu.Run(MAX_CYCLES)
	assert.Equal(OUTCOME_HALTED, outcome)
	assert.ErrorIs(err, cpu.ErrProtection)
	assert.Equal(int64(0), emu.Cpu.Executed())
	assert.Equal(cpu.Int(0), emu.Cpu.Memory.Read(20))
	assert.Equal(1, emu.Cycles)

	var runtime *ErrRuntime
	if assert.ErrorAs(err, &runtime) {
		assert.Equal(int64(1000), runtime.Address)
		assert.Equal(5, runtime.LineNo)
	}
}

func TestEmulator_Exhausted(t *testing.T) {
	assert := assert.New(t)

	emu, _ := doLoad(t,
		loader.BEGIN_DATA,
		"0 100",
		loader.END_DATA,
		loader.BEGIN_INSTR,
		"100: SET 100 0",
		loader.END_INSTR,
	)

	outcome, err := emu.Run(25)
	assert.NoError(err)
	assert.Equal(OUTCOME_EXHAUSTED, outcome)
	assert.False(emu.Cpu.Halted)
	assert.Equal(25, emu.Cycles)
	assert.Equal(int64(25), emu.Cpu.Executed())
	assert.Equal(int64(100), emu.Cpu.Pc())
}

func TestEmulator_Tick(t *testing.T) {
	assert := assert.New(t)

	emu, _ := doLoad(t,
		loader.BEGIN_DATA,
		"0 100",
		loader.END_DATA,
		loader.BEGIN_INSTR,
		"100: SET 7 300",
		"101: HLT",
		loader.END_INSTR,
	)

	assert.Equal(5, emu.LineNo())
	assert.Equal("SET 7 300", emu.Code().Text)

	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(6, emu.LineNo())

	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)

	// A halted emulator stays done, without error.
	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(2, emu.Cycles)

	// Reset reloads the program.
	err = emu.Reset()
	assert.NoError(err)
	assert.False(emu.Cpu.Halted)
	assert.Equal(0, emu.Cycles)
	assert.Equal(int64(100), emu.Cpu.Pc())
	assert.Equal(cpu.Int(0), emu.Cpu.Memory.Read(300))
}

func TestEmulator_Print(t *testing.T) {
	assert := assert.New(t)

	emu, output := doLoad(t,
		loader.BEGIN_DATA,
		"0 100",
		"13 102",
		"200 42",
		"201 -3",
		loader.END_DATA,
		loader.BEGIN_INSTR,
		"100: SYSCALL_PRN 200",
		"102: SYSCALL_PRN 201",
		"103: SYSCALL_PRN 104",
		"104: HLT",
		loader.END_INSTR,
	)

	// Each print returns to a different handler.
	_, err := emu.Tick()
	assert.NoError(err)
	emu.Cpu.Memory.Write(cpu.MEM_PRN_HANDLER, cpu.Int(103))
	_, err = emu.Tick()
	assert.NoError(err)
	emu.Cpu.Memory.Write(cpu.MEM_PRN_HANDLER, cpu.Int(104))

	outcome, err := emu.Run(MAX_CYCLES)
	assert.NoError(err)
	assert.Equal(OUTCOME_HALTED, outcome)
	assert.Equal("42\n-3\nHLT\n", output.String())
	assert.Equal(3, emu.Tape.Lines)
}

func TestEmulator_Warnings(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulatorSize(500)
	emu.Program = &cpu.Program{
		Data: []cpu.Data{{Address: 0, Value: 100}, {Address: 600, Value: 1}},
		Code: []cpu.Code{{Address: 100, Text: "HLT"}},
	}

	err := emu.Reset()
	assert.NoError(err)
	assert.Len(emu.Warnings, 1)
	assert.ErrorIs(emu.Warnings[0], cpu.ErrLoadRange)

	outcome, err := emu.Run(MAX_CYCLES)
	assert.NoError(err)
	assert.Equal(OUTCOME_HALTED, outcome)
}

func TestEmulator_Outcome(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("halted", OUTCOME_HALTED.String())
	assert.Equal("exhausted", OUTCOME_EXHAUSTED.String())
}

func TestEmulator_Strict(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulatorSize(500)
	emu.Strict = true
	emu.Program = &cpu.Program{
		Data: []cpu.Data{{Address: 0, Value: 100}, {Address: 600, Value: 1}, {Address: -5, Value: 1}},
		Code: []cpu.Code{{Address: 100, Text: "HLT"}},
	}

	err := emu.Reset()
	assert.ErrorIs(err, ErrLoadWarnings)
	assert.ErrorIs(err, cpu.ErrLoadRange)
	assert.Len(emu.Warnings, 2)

	// The in-range cells are loaded regardless.
	assert.Equal(cpu.Text("HLT"), emu.Cpu.Memory.Read(100))

	emu.Program.Data = emu.Program.Data[:1]
	err = emu.Reset()
	assert.NoError(err)
	assert.Empty(emu.Warnings)
}

func TestEmulator_LineIndex(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = &cpu.Program{
		Data: []cpu.Data{{Address: cpu.REG_PC, Value: 100}},
		Code: []cpu.Code{
			{LineNo: 12, Address: 100, Text: "SET 1 300"},
			{LineNo: 14, Address: 101, Text: "SET 1 301"},
			{LineNo: 15, Address: 102, Text: "HLT"},
		},
	}

	// Nothing is indexed before the first reset.
	assert.Equal(0, emu.LineNo())

	err := emu.Reset()
	assert.NoError(err)

	var lines []int
	for !emu.Cpu.Halted {
		lines = append(lines, emu.LineNo())
		_, err = emu.Tick()
		assert.NoError(err)
	}
	assert.Equal([]int{12, 14, 15}, lines)

	// The index is a snapshot of the program at reset time.
	err = emu.Reset()
	assert.NoError(err)
	emu.Program.Code[0].LineNo = 99
	assert.Equal(12, emu.LineNo())

	err = emu.Reset()
	assert.NoError(err)
	assert.Equal(99, emu.LineNo())
}
