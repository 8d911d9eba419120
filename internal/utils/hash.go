package utils

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// HashExternalID digests a third-party subject identifier so the raw id
// is never stored. SHA3-256, hex encoded: 64 characters.
func HashExternalID(subject string) string {
	sum := sha3.Sum256([]byte(subject))
	return hex.EncodeToString(sum[:])
}
