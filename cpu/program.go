package cpu

import (
	"iter"
	"strings"

	"github.com/ezrec/ls8/io"
)

// Statement represents a line of assembled code with its source
// location and generated bytes.
type Statement struct {
	LineNo    int
	Address   int
	Words     []string
	Codes     []byte
	LinkLabel string // Label to resolve into Codes[LinkIndex].
	LinkIndex int
	Data      bool // Codes are data bytes, not an instruction.
}

// Program is an assembled listing.
type Program struct {
	Statements []Statement
}

type Debug struct {
	*Statement
	Index int
}

// Debug finds the statement that generated the byte at address.
func (prog *Program) Debug(address uint16) (dbg Debug) {
	for n, st := range prog.Statements {
		if int(address) >= st.Address && int(address) < st.Address+len(st.Codes) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     int(address) - st.Address,
			}
			break
		}
	}

	return
}

// Binary returns the memory image of the program.
func (prog *Program) Binary() (bins []byte) {
	for address, code := range prog.Codes() {
		for int(address) >= len(bins) {
			bins = append(bins, 0)
		}
		bins[address] = code
	}

	return
}

// Codes returns an iterator over the addresses and bytes of the program.
func (prog *Program) Codes() iter.Seq2[uint16, byte] {
	return func(yield func(address uint16, code byte) bool) {
		for _, st := range prog.Statements {
			address := uint16(st.Address)
			for n, code := range st.Codes {
				if !yield(address+uint16(n), code) {
					return
				}
			}
		}
	}
}

// Rom returns the program as a Rom image, commented with its source.
func (prog *Program) Rom() (rom *io.Rom) {
	rom = &io.Rom{
		Data:     prog.Binary(),
		Comments: make(map[int]string, len(prog.Statements)),
	}

	for _, st := range prog.Statements {
		if len(st.Codes) == 0 {
			continue
		}
		if st.Data {
			rom.Comments[st.Address] = strings.Join(st.Words, " ")
		} else {
			rom.Comments[st.Address] = MakeInstruction(Opcode(st.Codes[0]), st.Codes[1:]...).String()
		}
	}

	return
}
