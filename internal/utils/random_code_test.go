package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-zA-Z]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateRandomCode(8)
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestGenerateRandomCodeRejectsInvalidLength(t *testing.T) {
	_, err := GenerateRandomCode(0)
	assert.Error(t, err)
}
