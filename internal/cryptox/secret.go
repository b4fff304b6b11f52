package cryptox

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/lacs/lacsapi/internal/shared"
)

// NewServerSecret returns the hex sha256 digest of 32 random bytes. The
// result is used as the HMAC key for access tokens.
func NewServerSecret() (string, error) {
	raw, err := shared.RandomBytes(32)
	if err != nil {
		return "", err
	}
	defer shared.WipeByteArray(raw)

	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
