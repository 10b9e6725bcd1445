package emulator

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/cpu"
)

func TestConfig_Default(t *testing.T) {
	assert := assert.New(t)

	config := DefaultConfig()
	assert.Equal(uint(cpu.MEMORY_SIZE), config.MemorySize)
	assert.Equal(byte(cpu.STACK_POINTER_INIT), config.StackPointer)
	assert.Equal(0, config.MaxSteps)
	assert.False(config.Verbose)
	assert.NoError(config.Validate())
}

func TestConfig_Parse(t *testing.T) {
	assert := assert.New(t)

	config, err := ParseConfig(`
# small machine
memory_size = 64
stack_pointer = 0x40
max_steps = 1000
verbose = true
`)
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Equal(uint(64), config.MemorySize)
	assert.Equal(byte(0x40), config.StackPointer)
	assert.Equal(1000, config.MaxSteps)
	assert.True(config.Verbose)

	config, err = ParseConfig("max_steps = 5\n")
	assert.NoError(err)
	assert.Equal(uint(cpu.MEMORY_SIZE), config.MemorySize)
	assert.Equal(5, config.MaxSteps)
}

func TestConfig_ParseError(t *testing.T) {
	assert := assert.New(t)

	table := []string{
		"memory_size = ",
		"memory_size = 0",
		"memory_size = 300",
		"max_steps = -1",
		"registers = 16",
		"stack_pointer = 256",
	}

	for _, text := range table {
		_, err := ParseConfig(text)
		assert.ErrorIs(err, ErrConfig, text)
	}
}

func TestConfig_Load(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "ls8.toml")
	assert.NoError(os.WriteFile(path, []byte("memory_size = 128\n"), 0o644))

	config, err := LoadConfig(path)
	assert.NoError(err)
	if err != nil {
		return
	}
	assert.Equal(uint(128), config.MemorySize)

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(err, fs.ErrNotExist)

	bad := filepath.Join(dir, "bad.toml")
	assert.NoError(os.WriteFile(bad, []byte("memory_size = 0\n"), 0o644))
	_, err = LoadConfig(bad)
	assert.ErrorIs(err, ErrConfig)
	assert.Contains(err.Error(), bad)
}
