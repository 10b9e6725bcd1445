package io

import (
	"fmt"
	"io"
)

// Console is the numeric console. Each printed value is written to
// Output as a decimal integer on its own line.
type Console struct {
	Output io.Writer

	Count int // Values printed since the last rewind.
}

var _ Output = (*Console)(nil)

// Rewind resets the printed value count.
func (cc *Console) Rewind() {
	cc.Count = 0
}

// Print writes value to the output stream.
func (cc *Console) Print(value byte) (err error) {
	if cc.Output == nil {
		err = ErrConsoleClosed
		return
	}

	_, err = fmt.Fprintf(cc.Output, "%d\n", value)
	if err != nil {
		return
	}

	cc.Count++

	return
}
