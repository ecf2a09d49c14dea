package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

var hashSalt string

// InitHashSalt loads the log hash salt from the environment.
// In production, set LOG_HASH_SALT.
func InitHashSalt() {
	hashSalt = os.Getenv("LOG_HASH_SALT")
	if hashSalt == "" {
		hashSalt = "default-salt-change-in-production"
	}
}

// InitHashSaltForTesting overrides the salt with a fixed value.
func InitHashSaltForTesting(salt string) {
	hashSalt = salt
}

// HashUserID creates a privacy-preserving hash of an identity provider
// uid, so user actions can be correlated in logs without exposing the uid.
func HashUserID(uid string) string {
	data := fmt.Sprintf("%s:%s", uid, hashSalt)
	hash := sha256.Sum256([]byte(data))
	// First 8 characters are enough to correlate.
	return hex.EncodeToString(hash[:])[:8]
}

// SanitizeEmail redacts the local part of an email address.
func SanitizeEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return "<invalid>"
	}
	return fmt.Sprintf("%c***@%s", email[0], email[at+1:])
}

// SanitizeText is a general-purpose sanitizer for any user-provided text.
func SanitizeText(text string) string {
	if text == "" {
		return "<empty>"
	}

	if len(text) <= 10 {
		return fmt.Sprintf("<%d chars>", len(text))
	}

	return fmt.Sprintf("%s...<%d chars>", text[:3], len(text))
}
