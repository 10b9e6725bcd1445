package cpu

const (
	MEMORY_SIZE = 256 // Largest memory addressable by a byte register.
)

// Memory is the flat, byte addressed machine memory.
type Memory []byte

// Read returns the byte at address.
func (mem Memory) Read(address int) (value byte, err error) {
	if address < 0 || address >= len(mem) {
		err = ErrAddress(address)
		return
	}

	value = mem[address]
	return
}

// Write stores value at address.
func (mem Memory) Write(address int, value byte) (err error) {
	if address < 0 || address >= len(mem) {
		err = ErrAddress(address)
		return
	}

	mem[address] = value
	return
}
