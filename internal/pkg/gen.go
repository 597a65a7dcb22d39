package pkg

import (
	"crypto/rand"

	"github.com/google/uuid"
)

// Game IDs are short join-codes typed by the second player, so the
// alphabet skips look-alike characters (0/O, 1/I).
const (
	gameIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	gameIDLength   = 6
)

func GenerateNewSessionID() string {
	return uuid.NewString()
}

func GenerateGameID() string {
	buf := make([]byte, gameIDLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}

	for i, b := range buf {
		buf[i] = gameIDAlphabet[int(b)%len(gameIDAlphabet)]
	}

	return string(buf)
}
