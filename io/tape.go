package io

import (
	"io"
	"iter"
)

// Tape writes each line sent to it to an io.Writer, newline terminated.
// A tape cannot be read back or rewound.
type Tape struct {
	Output io.Writer

	Lines int // Lines written so far.
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Receive yields nothing; a tape is output only.
func (tc *Tape) Receive() iter.Seq[string] {
	return func(yield func(value string) bool) {}
}

// Send writes a line to the output stream.
func (tc *Tape) Send(value string) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	_, err = io.WriteString(tc.Output, value+"\n")
	if err != nil {
		return
	}

	tc.Lines++

	return
}
