package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("en"))
	assert.True(t, IsValid("mul"))
	assert.True(t, IsValid("zh-hans"))
	assert.False(t, IsValid("EN"))
	assert.False(t, IsValid("klingon"))
	assert.False(t, IsValid(""))
}

func TestCodes(t *testing.T) {
	codes := Codes()
	assert.Contains(t, codes, Mul)
	assert.Contains(t, codes, "en")
	assert.IsIncreasing(t, codes)
}
