package emulator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/fxamacker/cbor/v2"

	"github.com/ezrec/ls8/cpu"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("emulator: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Snapshot is the complete machine state.
type Snapshot struct {
	Pc       uint16                   `cbor:"pc"`
	Flags    byte                     `cbor:"fl"`
	Register [cpu.REGISTER_COUNT]byte `cbor:"reg"`
	Memory   []byte                   `cbor:"ram"`
	Ticks    int                      `cbor:"ticks"`
	Halted   bool                     `cbor:"halted"`
	Fault    Halt                     `cbor:"fault"` // Reason for a faulted halt.
}

// MarshalSnapshot serializes a Snapshot to CBOR bytes.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	return cborEncMode.Marshal(s)
}

// UnmarshalSnapshot deserializes a Snapshot from CBOR bytes.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("emulator: unmarshal snapshot: %w", err)
	}
	return &s, nil
}

// Snapshot captures the machine state.
func (emu *Emulator) Snapshot() *Snapshot {
	return &Snapshot{
		Pc:       emu.Cpu.Pc,
		Flags:    emu.Cpu.Flags,
		Register: emu.Cpu.Register,
		Memory:   slices.Clone(emu.Cpu.Memory),
		Ticks:    emu.Cpu.Ticks,
		Halted:   emu.Cpu.Halted,
		Fault:    Reason(emu.Cpu.Fault),
	}
}

// Restore replaces the machine state with a snapshot. The snapshot
// memory must match the configured memory size. A faulted snapshot
// restores the fault as its halt reason sentinel.
func (emu *Emulator) Restore(s *Snapshot) (err error) {
	if len(s.Memory) != len(emu.Cpu.Memory) {
		err = errors.Join(ErrSnapshot, fmt.Errorf("memory size %d, want %d", len(s.Memory), len(emu.Cpu.Memory)))
		return
	}

	if !s.Fault.Valid() {
		err = errors.Join(ErrSnapshot, fmt.Errorf("halt reason %d unknown", int(s.Fault)))
		return
	}

	copy(emu.Cpu.Memory, s.Memory)
	emu.Cpu.Pc = s.Pc
	emu.Cpu.Flags = s.Flags
	emu.Cpu.Register = s.Register
	emu.Cpu.Ticks = s.Ticks
	emu.Cpu.Halted = s.Halted
	emu.Cpu.Fault = s.Fault.Err()

	return
}
