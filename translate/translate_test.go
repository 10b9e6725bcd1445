package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("halted", From("halted"))
	assert.Equal("register index 9 invalid", From("register index %d invalid", 9))
	assert.Equal("address 0xFF out of bounds", From("address 0x%02X out of bounds", 0xff))
}

func TestLocales(t *testing.T) {
	assert := assert.New(t)

	t.Setenv(LANG_ENV, "fr-FR:en-US")
	assert.Equal([]string{"fr-FR", "en-US"}, Locales())

	t.Setenv(LANG_ENV, "")
	assert.NotEmpty(Locales())
}
