package idgen

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// GenerateSecureID generates a cryptographically secure ID with the given prefix and length.
// Uses only alphanumeric characters (0-9, a-z) - no dashes or special characters.
func GenerateSecureID(prefix string, length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		panic(fmt.Sprintf("idgen: read random bytes: %v", err))
	}

	const charset = "0123456789abcdefghijklmnopqrstuvwxyz"
	encoded := make([]byte, length)
	for i, b := range bytes {
		encoded[i] = charset[b%36]
	}

	return prefix + "_" + string(encoded)
}

// ValidateIDFormat reports whether id has the expected prefix followed by an
// underscore and a non-empty alphanumeric suffix.
func ValidateIDFormat(id, expectedPrefix string) bool {
	suffix, ok := strings.CutPrefix(id, expectedPrefix+"_")
	if !ok || suffix == "" {
		return false
	}
	for _, char := range suffix {
		if !((char >= 'a' && char <= 'z') || (char >= '0' && char <= '9')) {
			return false
		}
	}
	return true
}
