package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem := make(Memory, 4)

	assert.NoError(mem.Write(3, 0x99))
	value, err := mem.Read(3)
	assert.NoError(err)
	assert.Equal(byte(0x99), value)

	for _, address := range []int{-1, 4, 256} {
		_, err = mem.Read(address)
		assert.ErrorIs(err, ErrOutOfBounds, "read %d", address)
		assert.Equal(ErrAddress(address), err)

		err = mem.Write(address, 1)
		assert.ErrorIs(err, ErrOutOfBounds, "write %d", address)
	}

	assert.Equal(Memory{0, 0, 0, 0x99}, mem)
}
