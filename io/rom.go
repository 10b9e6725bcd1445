package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

const (
	ROM_DIGITS = 8 // Binary digits per Rom line.
)

// Rom is a program image in the LS-8 text format: every line starting
// with '0' or '1' holds one byte as 8 binary digits, and every other
// line is a comment.
type Rom struct {
	Data     []byte
	Comments map[int]string // Optional comments by address, written by WriteTo.
}

// ParseRom reads a Rom image from the text format.
func ParseRom(input io.Reader) (rom *Rom, err error) {
	rom = &Rom{}

	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		line := scanner.Text()
		lineno++

		if len(line) == 0 || (line[0] != '0' && line[0] != '1') {
			continue
		}

		digits := strings.TrimRight(line[:min(ROM_DIGITS, len(line))], " \t\r")
		var value uint64
		value, err = strconv.ParseUint(digits, 2, 8)
		if err != nil {
			err = &ErrRomSyntax{LineNo: lineno, Line: line, Err: ErrRomDigits}
			rom = nil
			return
		}

		rom.Data = append(rom.Data, byte(value))
	}

	err = scanner.Err()
	if err != nil {
		rom = nil
	}

	return
}

// Bytes returns an iterator over the addresses and bytes of the image.
func (rom *Rom) Bytes() iter.Seq2[int, byte] {
	return func(yield func(address int, value byte) bool) {
		for address, value := range rom.Data {
			if !yield(address, value) {
				return
			}
		}
	}
}

// WriteTo writes the image in the text format.
func (rom *Rom) WriteTo(output io.Writer) (n int64, err error) {
	w := bufio.NewWriter(output)

	for address, value := range rom.Bytes() {
		var line string
		comment, ok := rom.Comments[address]
		if ok {
			line = fmt.Sprintf("%08b # %v\n", value, comment)
		} else {
			line = fmt.Sprintf("%08b\n", value)
		}

		var count int
		count, err = w.WriteString(line)
		n += int64(count)
		if err != nil {
			return
		}
	}

	err = w.Flush()

	return
}
