package io

import (
	"iter"
)

// Temporary implements a circular buffer of printed lines.
// It operates as a FIFO queue with a fixed capacity and separate read/write positions.
// A zero Capacity is unbounded.
type Temporary struct {
	Capacity int // Capacity in lines.

	ReadIndex  int
	WriteIndex int
	Size       int
	Data       []string
}

var _ Channel = (*Temporary)(nil)

// Rewind resets the temporary storage to empty, resetting indices and
// reinitializing the data buffer.
func (temp *Temporary) Rewind() {
	temp.ReadIndex = 0
	temp.WriteIndex = 0
	temp.Size = 0
	temp.Data = make([]string, temp.Capacity)
}

// Receive returns an iterator that yields lines from the buffer until empty.
func (temp *Temporary) Receive() iter.Seq[string] {
	return func(yield func(value string) bool) {
		for temp.Size > 0 {
			line := temp.Data[temp.ReadIndex]
			temp.ReadIndex++
			if temp.ReadIndex == len(temp.Data) {
				temp.ReadIndex = 0
			}
			temp.Size--
			if !yield(line) {
				return
			}
		}
	}
}

// Send writes a line to the buffer at the current write position.
// Returns ErrChannelFull if the buffer has reached capacity.
func (temp *Temporary) Send(value string) (err error) {
	if temp.Capacity == 0 {
		// Unbounded: compact and append.
		if temp.ReadIndex > 0 {
			temp.Data = append(temp.Data[:0], temp.Data[temp.ReadIndex:temp.ReadIndex+temp.Size]...)
			temp.ReadIndex = 0
		}
		temp.Data = append(temp.Data[:temp.Size], value)
		temp.Size++
		temp.WriteIndex = temp.Size
		return
	}

	if len(temp.Data) != temp.Capacity {
		temp.Rewind()
	}

	if temp.Size >= temp.Capacity {
		err = ErrChannelFull
		return
	}

	temp.Data[temp.WriteIndex] = value

	temp.WriteIndex++
	if temp.WriteIndex == temp.Capacity {
		temp.WriteIndex = 0
	}
	temp.Size++

	return
}

// Lines returns the queued lines without consuming them.
func (temp *Temporary) Lines() (lines []string) {
	for n := range temp.Size {
		index := temp.ReadIndex + n
		if index >= len(temp.Data) {
			index -= len(temp.Data)
		}
		lines = append(lines, temp.Data[index])
	}

	return
}
