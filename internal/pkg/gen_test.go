package pkg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateNewSessionID(t *testing.T) {
	first := GenerateNewSessionID()
	second := GenerateNewSessionID()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestGenerateGameID(t *testing.T) {
	id := GenerateGameID()

	assert.Len(t, id, gameIDLength)
	for _, r := range id {
		assert.True(t, strings.ContainsRune(gameIDAlphabet, r), "unexpected character %q", r)
	}

	assert.NotEqual(t, id, GenerateGameID())
}
