package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSeat(t *testing.T) {
	assert.Equal(t, "A-1", NormalizeSeat(" a-1 "))
	assert.Equal(t, "BB-123", NormalizeSeat("bb-123"))
	assert.Equal(t, "A-1", NormalizeSeat("A-1"))
	assert.Equal(t, "", NormalizeSeat("   "))
}

func TestValidSeatNumber(t *testing.T) {
	valid := []string{
		"A-1",
		"Z-999",
		"AA-1",
		"BB-123",
		" a-1 ", // normalized before matching
		"j-42",
	}
	for _, seat := range valid {
		assert.True(t, ValidSeatNumber(seat), "expected %q to be valid", seat)
	}

	invalid := []string{
		"",
		"AAA-1",   // three letter row
		"A-1234",  // four digit seat
		"A1",      // missing hyphen
		"A-",      // missing number
		"-1",      // missing row
		"1-A",     // swapped parts
		"A_1",     // wrong separator
		"A-1B",    // trailing junk
		"A- 1",    // inner whitespace
		"Ä-1",     // non-ASCII letter
		"A--1",    // double hyphen
		"A-1-2",   // extra segment
		"AB-0001", // too many digits even with leading zeros
	}
	for _, seat := range invalid {
		assert.False(t, ValidSeatNumber(seat), "expected %q to be invalid", seat)
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{
		"dana@example.com",
		"dana.whitfield@example.co.uk",
		"dana+tickets@example.io",
		"d_w%42@sub.example.com",
		" dana@example.com ", // trimmed before matching
	}
	for _, email := range valid {
		assert.True(t, ValidEmail(email), "expected %q to be valid", email)
	}

	invalid := []string{
		"",
		"dana",
		"dana@",
		"@example.com",
		"dana@example",   // no tld
		"dana@example.c", // one letter tld
		"dana example@example.com",
		"dana@exam ple.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidEmail(email), "expected %q to be invalid", email)
	}
}

func TestRegisterCustomValidators(t *testing.T) {
	// Registration must be idempotent enough for repeated test setups
	assert.NoError(t, RegisterCustomValidators())
	assert.NoError(t, RegisterCustomValidators())
}
