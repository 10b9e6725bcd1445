// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/io"
)

// Emulator state. CPU + console + loaded program.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the assembled program listing, if any.
	Rom      *io.Rom      // Reference to the program image loaded by Reset.

	Console io.Console // Console written by PRN.

	MaxSteps int // If non-zero, the number of instructions Run may execute.
}

// NewEmulator creates a new emulator from a configuration.
func NewEmulator(config *Config) (emu *Emulator) {
	if config == nil {
		config = DefaultConfig()
	}

	emu = &Emulator{
		Verbose:  config.Verbose,
		Cpu:      cpu.NewCpu(config.MemorySize),
		Rom:      &io.Rom{},
		MaxSteps: config.MaxSteps,
	}

	emu.Cpu.StackBase = config.StackPointer
	emu.Cpu.Output = &emu.Console

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	defines := map[string]string{
		"MEMORY_SIZE": fmt.Sprintf("%v", len(emu.Cpu.Memory)),
		"SP_INIT":     fmt.Sprintf("0x%02x", emu.Cpu.StackBase),
	}

	return internal.IterSeq2Concat(emu.Cpu.Defines(),
		maps.All(defines),
	)
}

// Reset the machine and load the program image.
// If Program is set, it replaces the Rom image.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	if emu.Program != nil {
		emu.Rom = emu.Program.Rom()
	}

	emu.Cpu.Reset()
	emu.Console.Rewind()

	count := emu.Cpu.Load(emu.Rom.Data)
	if emu.Verbose {
		log.Printf("emulator: loaded %d bytes", count)
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns current program counter.
func (emu *Emulator) Pc() int {
	return int(emu.Cpu.Pc)
}

// LineNo returns the source line number for the instruction at the
// program counter, or 0 if there is no assembled listing.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Statement == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
// done is set once the machine halts normally. A machine halted by a
// fault keeps returning that fault.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	opcode, read_err := emu.Cpu.Memory.Read(int(pc))
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{
				Pc:      pc,
				Opcode:  cpu.Opcode(opcode),
				Fetched: read_err == nil,
				LineNo:  lineno,
				Err:     err,
			}
		}
	}()

	if emu.MaxSteps > 0 && emu.Cpu.Ticks >= emu.MaxSteps && !emu.Cpu.Halted {
		emu.Cpu.Halted = true
		emu.Cpu.Fault = ErrStepLimit
		err = ErrStepLimit
		return
	}

	if emu.Verbose {
		log.Print(emu.Cpu.Trace())
	}

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
		return
	}

	return
}

// Run ticks the emulator until it halts.
func (emu *Emulator) Run() (err error) {
	var done bool
	for !done {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
