package cpu

import (
	"strconv"
)

// Cell is the content of one memory location: either a number, or the text
// of an instruction. The zero Cell is the number 0.
type Cell struct {
	value int64
	text  string
	code  bool
}

// Int makes a numeric cell.
func Int(value int64) Cell {
	return Cell{value: value}
}

// Text makes an instruction cell.
func Text(text string) Cell {
	return Cell{text: text, code: true}
}

// IsText returns true if the cell holds instruction text.
func (c Cell) IsText() bool {
	return c.code
}

// IsZero returns true for the numeric zero cell.
func (c Cell) IsZero() bool {
	return !c.code && c.value == 0
}

// Int returns the numeric value of the cell.
func (c Cell) Int() (value int64, ok bool) {
	if c.code {
		return
	}

	return c.value, true
}

// Instruction returns the instruction text of the cell.
func (c Cell) Instruction() (text string, ok bool) {
	if !c.code {
		return
	}

	return c.text, true
}

// String returns the number in decimal, or the instruction text.
func (c Cell) String() string {
	if c.code {
		return c.text
	}

	return strconv.FormatInt(c.value, 10)
}
