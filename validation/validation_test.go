package validation_test

import (
	"testing"

	"Gin_postgres_redis_library_lending/validation"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdentifier(t *testing.T) {
	assert.Equal(t, "9784873115658", validation.NormalizeIdentifier("９７８４８７３１１５６５８"))
	assert.Equal(t, "9780306406157", validation.NormalizeIdentifier("978-0-306-40615-7"))
	assert.Equal(t, "9780306406157", validation.NormalizeIdentifier(" 9780306406157 "))
	assert.Equal(t, "EMP001", validation.NormalizeIdentifier("EMP001"))
}

func TestValidateISBN13(t *testing.T) {
	assert.True(t, validation.ValidateISBN("9780306406157"))
	assert.True(t, validation.ValidateISBN("9784873115658"))
	// same number, scanner formatting
	assert.True(t, validation.ValidateISBN("978-0-306-40615-7"))
	assert.True(t, validation.ValidateISBN("９７８４８７３１１５６５８"))

	// checksum off by one
	assert.False(t, validation.ValidateISBN("9780306406158"))
	// wrong length
	assert.False(t, validation.ValidateISBN("12345"))
	assert.False(t, validation.ValidateISBN(""))
	// letters
	assert.False(t, validation.ValidateISBN("97803064061ab"))
}

func TestValidateISBN10(t *testing.T) {
	assert.True(t, validation.ValidateISBN("0306406152"))
	assert.True(t, validation.ValidateISBN("097522980X"))
	assert.True(t, validation.ValidateISBN("0-306-40615-2"))

	assert.False(t, validation.ValidateISBN("0306406153"))
	// X only counts in the check position
	assert.False(t, validation.ValidateISBN("030640615A"))
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, validation.ValidateEmail("yamada@company.com"))
	assert.True(t, validation.ValidateEmail("sato+books@company.co.jp"))
	assert.True(t, validation.ValidateEmail("  tanaka@company.com  "))

	assert.False(t, validation.ValidateEmail("no-at-sign"))
	assert.False(t, validation.ValidateEmail("a@b"))
	assert.False(t, validation.ValidateEmail("a b@company.com"))
	assert.False(t, validation.ValidateEmail("a@@company.com"))
	assert.False(t, validation.ValidateEmail(""))
}
