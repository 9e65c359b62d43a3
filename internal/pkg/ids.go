package pkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// roomIDAlphabet is upper-case only so room codes survive being read aloud or retyped.
const roomIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateRoomID - generates a random base36 room code of the given length.
func GenerateRoomID(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid room id length %d", length)
	}

	var builder strings.Builder
	builder.Grow(length)

	alphabetSize := big.NewInt(int64(len(roomIDAlphabet)))

	for range length {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to read random: %w", err)
		}

		builder.WriteByte(roomIDAlphabet[n.Int64()])
	}

	return builder.String(), nil
}

// NormalizeRoomID - maps user input onto the canonical room code form.
func NormalizeRoomID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// GenerateNewSessionID - generates a new unique id for players, connections and matches.
func GenerateNewSessionID() string {
	return uuid.NewString()
}
