package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sahajbooks/sahaj-api/pkg/utils"
)

func TestIsValidGSTIN(t *testing.T) {
	assert.True(t, utils.IsValidGSTIN("27AAACP1234C1Z5"))
	assert.True(t, utils.IsValidGSTIN("07AABCU9603R1ZM"))

	// 14 characters
	assert.False(t, utils.IsValidGSTIN("27AAACP1234C1Z"))
	// lowercase
	assert.False(t, utils.IsValidGSTIN("27aaacp1234c1z5"))
	// missing mandatory 'Z' at position 14
	assert.False(t, utils.IsValidGSTIN("27AAACP1234C1X5"))
	assert.False(t, utils.IsValidGSTIN(""))
}

func TestIsValidPAN(t *testing.T) {
	assert.True(t, utils.IsValidPAN("AAACP1234C"))
	assert.False(t, utils.IsValidPAN("AAACP1234"))
	assert.False(t, utils.IsValidPAN("aaacp1234c"))
	assert.False(t, utils.IsValidPAN("1AACP1234C"))
}

func TestIsValidTAN(t *testing.T) {
	assert.True(t, utils.IsValidTAN("MUMA12345A"))
	assert.False(t, utils.IsValidTAN("MUM12345A"))
	assert.False(t, utils.IsValidTAN("MUMA1234A"))
}

func TestIsValidIFSC(t *testing.T) {
	assert.True(t, utils.IsValidIFSC("HDFC0001234"))
	assert.True(t, utils.IsValidIFSC("SBIN0005943"))
	// fifth character must be zero
	assert.False(t, utils.IsValidIFSC("HDFC1001234"))
	assert.False(t, utils.IsValidIFSC("HDFC000123"))
}

func TestIsValidHSN(t *testing.T) {
	assert.True(t, utils.IsValidHSN("8471"))
	assert.True(t, utils.IsValidHSN("847130"))
	assert.True(t, utils.IsValidHSN("84713010"))
	assert.False(t, utils.IsValidHSN("847"))
	assert.False(t, utils.IsValidHSN("84713"))
	assert.False(t, utils.IsValidHSN("8471301000"))
}

func TestGSTINStateCode(t *testing.T) {
	assert.Equal(t, "27", utils.GSTINStateCode("27AAACP1234C1Z5"))
	assert.Equal(t, "", utils.GSTINStateCode("bogus"))
}
