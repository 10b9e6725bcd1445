package emulator

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/ls8/cpu"
)

// Config is the machine configuration, usually read from an ls8.toml file.
type Config struct {
	MemorySize   uint `toml:"memory_size"`   // Bytes of memory, 1 to 256.
	StackPointer byte `toml:"stack_pointer"` // SP after reset.
	MaxSteps     int  `toml:"max_steps"`     // Instruction ceiling for Run, 0 is unlimited.
	Verbose      bool `toml:"verbose"`       // Verbose logging.
}

// DefaultConfig returns the standard LS-8 configuration.
func DefaultConfig() *Config {
	return &Config{
		MemorySize:   cpu.MEMORY_SIZE,
		StackPointer: cpu.STACK_POINTER_INIT,
	}
}

// LoadConfig reads a TOML configuration file. Keys missing from the
// file keep their default values.
func LoadConfig(path string) (config *Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	config, err = ParseConfig(string(data))
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
		config = nil
	}

	return
}

// ParseConfig decodes a TOML configuration.
func ParseConfig(text string) (config *Config, err error) {
	config = DefaultConfig()

	md, err := toml.Decode(text, config)
	if err != nil {
		err = errors.Join(ErrConfig, err)
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		err = errors.Join(ErrConfig, fmt.Errorf("unknown key %v", undecoded[0]))
		return
	}

	err = config.Validate()

	return
}

// Validate checks the configuration ranges.
func (config *Config) Validate() (err error) {
	if config.MemorySize == 0 || config.MemorySize > cpu.MEMORY_SIZE {
		err = errors.Join(ErrConfig, fmt.Errorf("memory_size %d not in 1..%d", config.MemorySize, cpu.MEMORY_SIZE))
		return
	}

	if config.MaxSteps < 0 {
		err = errors.Join(ErrConfig, fmt.Errorf("max_steps %d is negative", config.MaxSteps))
		return
	}

	return
}
