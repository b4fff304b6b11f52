// Package cryptox holds the password hashing, credential generation and
// signing-secret primitives used by the server and the admin CLI.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/lacs/lacsapi/internal/shared"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// PBKDF2Iterations is the work factor of every stored password hash.
	PBKDF2Iterations = 100_000
	saltSize         = 16
	keySize          = 32
)

// HashPassword derives a key from password with a fresh random salt and
// returns it as "hex(salt):hex(key)".
func HashPassword(password string) (string, error) {
	salt, err := shared.RandomBytes(saltSize)
	if err != nil {
		return "", err
	}
	key := deriveKey(password, salt)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// VerifyPassword reports whether password matches stored. Malformed stored
// values never match.
func VerifyPassword(stored, password string) bool {
	saltHex, keyHex, ok := strings.Cut(stored, ":")
	if !ok || saltHex == "" || keyHex == "" {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(keyHex)
	if err != nil {
		return false
	}

	got := deriveKey(password, salt)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, PBKDF2Iterations, keySize, sha256.New)
}
