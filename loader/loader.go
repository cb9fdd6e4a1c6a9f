// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package loader parses GTU-C312 program text into a loadable cpu.Program.
//
// A program has a data section and an instruction section, in either order:
//
//	BEGIN DATA SECTION
//	0 100        # PC
//	1 = 1023     # SP
//	END DATA SECTION
//	BEGIN INSTRUCTION SECTION
//	100: SET 50 200
//	101: HLT
//	END INSTRUCTION SECTION
//
// Everything after '#' is a comment. A $(expr) is evaluated at load time
// as an integer expression, with the memory layout names (REG_PC,
// MEM_HLT_HANDLER, ...) and any .equ definitions in scope.
package loader

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/gtuc312/cpu"
)

const (
	BEGIN_DATA  = "BEGIN DATA SECTION"
	END_DATA    = "END DATA SECTION"
	BEGIN_INSTR = "BEGIN INSTRUCTION SECTION"
	END_INSTR   = "END INSTRUCTION SECTION"
)

type section int

const (
	section_none = section(iota)
	section_data
	section_code
)

var reExpression = regexp.MustCompile(`\$\([^\$]*\)`)

// Loader is a single pass parser for GTU-C312 programs.
type Loader struct {
	Verbose      bool // If set, verbosely logs the loader actions.
	AllowOverlap bool // If set, data and code may share an address. Data wins.

	Warnings []error          // Skipped lines of the last Parse.
	Equate   map[string]string // Map of equates.

	predefine map[string]string // Predefines
}

// Predefine defines a new equate or redefines an existing equate.
func (ld *Loader) Predefine(equ string, value string) {
	if ld.predefine == nil {
		ld.predefine = map[string]string{equ: value}
	} else {
		ld.predefine[equ] = value
	}
}

func formatInt(value int64) string {
	return strconv.FormatInt(value, 10)
}

// parseInt parses a decimal integer, with optional sign.
func parseInt(word string) (value int64, err error) {
	return strconv.ParseInt(strings.TrimSpace(word), 10, 64)
}

// parenEval does load-time $(...) evaluations.
func (ld *Loader) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "loader"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range ld.Equate {
		var value64 int64
		value64, err = strconv.ParseInt(str, 0, 64)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(value64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// expand replaces every $(...) in a line with its decimal value.
func (ld *Loader) expand(line string, lineno int) (out string, err error) {
	ld.Equate["LINENO"] = strconv.Itoa(lineno)

	out = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := ld.parenEval(str[2 : len(str)-1])
		if _err != nil {
			if err == nil {
				err = _err
			}
			return str
		}
		return formatInt(value)
	})

	return
}

// Parse parses an input stream into a Program.
//
// Problems with single lines are logged, collected in Warnings, and the line
// skipped. Duplicate addresses keep the first definition. The only fatal
// errors are read errors, and addresses present in both segments unless
// AllowOverlap is set.
func (ld *Loader) Parse(input io.Reader) (prog *cpu.Program, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	var raw string
	current := section_none

	ld.Warnings = nil
	ld.Equate = maps.Collect(cpu.Defines())
	ld.Equate["LINENO"] = "0"
	for attr, val := range ld.predefine {
		ld.Equate[attr] = val
	}

	data := map[int64]cpu.Data{}
	code := map[int64]cpu.Code{}

	warn := func(err error) {
		warning := &ErrSyntax{LineNo: lineno, Line: strings.TrimSpace(raw), Err: err}
		log.Printf("loader: %v", warning)
		ld.Warnings = append(ld.Warnings, warning)
	}

	for scanner.Scan() {
		raw = scanner.Text()
		lineno += 1

		if ld.Verbose {
			log.Printf("%v: %v\n", lineno, raw)
		}

		line, _, _ := strings.Cut(raw, "#")
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		line, err = ld.expand(line, lineno)
		if err != nil {
			warn(err)
			err = nil
			continue
		}

		switch strings.ToUpper(strings.Join(strings.Fields(line), " ")) {
		case BEGIN_DATA:
			if current != section_none {
				warn(ErrSectionNested)
			}
			current = section_data
			continue
		case BEGIN_INSTR:
			if current != section_none {
				warn(ErrSectionNested)
			}
			current = section_code
			continue
		case END_DATA:
			if current != section_data {
				warn(ErrSectionLonely)
			}
			current = section_none
			continue
		case END_INSTR:
			if current != section_code {
				warn(ErrSectionLonely)
			}
			current = section_none
			continue
		}

		// .equ NAME VALUE
		words := strings.Fields(line)
		if strings.EqualFold(words[0], ".equ") {
			if len(words) != 3 {
				warn(ErrEquateSyntax)
				continue
			}
			_, ok := ld.Equate[words[1]]
			if ok {
				warn(ErrEquateDuplicate)
				continue
			}
			ld.Equate[words[1]] = words[2]
			continue
		}

		switch current {
		case section_data:
			var addr_part, val_part string
			if before, after, ok := strings.Cut(line, "="); ok {
				addr_part, val_part = before, after
			} else {
				if len(words) != 2 {
					warn(ErrDataFormat)
					continue
				}
				addr_part, val_part = words[0], words[1]
			}
			addr, err_addr := parseInt(addr_part)
			value, err_val := parseInt(val_part)
			if err_addr != nil || err_val != nil {
				warn(ErrDataNumber)
				continue
			}
			if prior, ok := data[addr]; ok {
				warn(fmt.Errorf("%w: %v keeps %v", ErrDataDuplicate, formatInt(addr), formatInt(prior.Value)))
				continue
			}
			data[addr] = cpu.Data{LineNo: lineno, Address: addr, Value: value}
		case section_code:
			addr_part, instr_part, ok := strings.Cut(line, ":")
			if !ok {
				warn(ErrCodeFormat)
				continue
			}
			addr, err_addr := parseInt(addr_part)
			if err_addr != nil {
				warn(ErrCodeAddress)
				continue
			}
			text := strings.ToUpper(strings.TrimSpace(instr_part))
			if len(text) == 0 {
				warn(ErrCodeEmpty)
				continue
			}
			if prior, ok := code[addr]; ok {
				warn(fmt.Errorf("%w: %v keeps '%v'", ErrCodeDuplicate, formatInt(addr), prior.Text))
				continue
			}
			code[addr] = cpu.Code{LineNo: lineno, Address: addr, Text: text}
		default:
			warn(ErrOutsideSection)
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	var overlap ErrOverlap
	for addr := range data {
		if _, ok := code[addr]; ok {
			overlap = append(overlap, addr)
		}
	}
	if len(overlap) > 0 {
		slices.Sort(overlap)
		if !ld.AllowOverlap {
			err = overlap
			return
		}
		log.Printf("loader: %v", overlap)
		for _, addr := range overlap {
			delete(code, addr)
		}
	}

	prog = &cpu.Program{
		Data: slices.SortedFunc(maps.Values(data), func(a, b cpu.Data) int { return cmp.Compare(a.Address, b.Address) }),
		Code: slices.SortedFunc(maps.Values(code), func(a, b cpu.Code) int { return cmp.Compare(a.Address, b.Address) }),
	}

	if ld.Verbose {
		log.Printf("loader: %v data, %v instructions", len(prog.Data), len(prog.Code))
	}

	return
}
