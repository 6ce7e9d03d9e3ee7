package persistence

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComputeValueDigest returns a keyed SHA-256 hex digest of a normalized identifier.
// The journal stores only this digest, so the same identifier validated twice can be
// correlated without persisting the identifier itself.
func ComputeValueDigest(salt []byte, kind, normalized string) (string, error) {
	if len(salt) == 0 {
		return "", fmt.Errorf("digest salt is required")
	}

	mac := hmac.New(sha256.New, salt)
	mac.Write([]byte(kind))
	mac.Write([]byte{0})
	mac.Write([]byte(normalized))
	return hex.EncodeToString(mac.Sum(nil)), nil
}
