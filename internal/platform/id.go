package platform

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

const secretBytes = 32

func NewID() string {
	return uuid.New().String()
}

// NewSecret returns a prefixed random secret, e.g. "trk_3f9a...".
// 32 bytes of entropy, hex encoded.
func NewSecret(prefix string) string {
	b := make([]byte, secretBytes)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	return prefix + hex.EncodeToString(b)
}
