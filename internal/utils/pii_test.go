package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "u**r@example.com", MaskEmail("user@example.com"))
	assert.Equal(t, "a*@example.com", MaskEmail("ab@example.com"))
	assert.Equal(t, "u@example.com", MaskEmail("u@example.com"))
	assert.Equal(t, "****d", MaskEmail("weird"))
	assert.Equal(t, "", MaskEmail(""))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "+*******6789", MaskPhone("+79123456789"))
	assert.Equal(t, "+* (***) ***-67-89", MaskPhone("+7 (912) 345-67-89"))
	assert.Equal(t, "**3", MaskPhone("123"))
	assert.Equal(t, "", MaskPhone(""))
}
