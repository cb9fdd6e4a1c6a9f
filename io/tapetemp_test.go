package io

import (
	"bytes"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape_Send(t *testing.T) {
	assert := assert.New(t)

	buff := &bytes.Buffer{}
	tape := &Tape{Output: buff}

	for _, line := range []string{"42", "-7", "HLT"} {
		err := tape.Send(line)
		assert.NoError(err)
	}

	assert.Equal("42\n-7\nHLT\n", buff.String())
	assert.Equal(3, tape.Lines)

	// Rewind has no effect, and nothing can be read back.
	tape.Rewind()
	assert.Empty(slices.Collect(tape.Receive()))
	assert.Equal(3, tape.Lines)
}

func TestTape_Closed(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}
	err := tape.Send("1")
	assert.ErrorIs(err, ErrChannelClosed)
	assert.Equal(0, tape.Lines)
}

func TestTemporary_Unbounded(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{}
	for _, line := range []string{"a", "b", "c"} {
		assert.NoError(temp.Send(line))
	}
	assert.Equal([]string{"a", "b", "c"}, temp.Lines())

	// Partial receive, then more sends.
	for line := range temp.Receive() {
		assert.Equal("a", line)
		break
	}
	assert.NoError(temp.Send("d"))
	assert.Equal([]string{"b", "c", "d"}, temp.Lines())
	assert.Equal([]string{"b", "c", "d"}, slices.Collect(temp.Receive()))
	assert.Empty(temp.Lines())

	for n := range 100 {
		assert.NoError(temp.Send(string(rune('A' + n%26))))
	}
	assert.Len(temp.Lines(), 100)
}

func TestTemporary_Bounded(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 2}
	assert.NoError(temp.Send("x"))
	assert.NoError(temp.Send("y"))

	err := temp.Send("z")
	assert.ErrorIs(err, ErrChannelFull)
	assert.Equal([]string{"x", "y"}, temp.Lines())

	// Receiving frees room; the write position wraps.
	for line := range temp.Receive() {
		assert.Equal("x", line)
		break
	}
	assert.NoError(temp.Send("z"))
	assert.Equal([]string{"y", "z"}, temp.Lines())
	assert.Equal([]string{"y", "z"}, slices.Collect(temp.Receive()))
}

func TestTemporary_Rewind(t *testing.T) {
	assert := assert.New(t)

	for _, capacity := range []int{0, 3} {
		temp := &Temporary{Capacity: capacity}
		assert.NoError(temp.Send("1"))
		assert.NoError(temp.Send("2"))

		temp.Rewind()
		assert.Empty(temp.Lines(), capacity)
		assert.Empty(slices.Collect(temp.Receive()), capacity)

		assert.NoError(temp.Send("3"))
		assert.Equal([]string{"3"}, temp.Lines(), capacity)
	}
}
