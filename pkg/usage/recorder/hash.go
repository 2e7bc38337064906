package recorder

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPrompt returns the hex-encoded SHA-256 digest of the prompt
// text. The digest lets operators spot repeated prompts and verify
// record integrity without the text itself ever being persisted.
//
// Returns an empty string for an empty prompt.
func HashPrompt(text string) string {
	if text == "" {
		return ""
	}

	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
