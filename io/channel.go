// Package io provides the output channels of the GTU-C312 emulator.
// SYSCALL_PRN surfaces each printed cell as one line of text on a channel:
// sequential output to a stream (Tape), or a bounded in-memory queue
// (Temporary).
package io

import (
	"iter"
)

// Channel defines the interface for all output channels.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns an iterator that yields the lines sent on the channel.
	Receive() iter.Seq[string]
	// Send writes a single line to the channel.
	Send(value string) error
}
