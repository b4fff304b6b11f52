package cryptox

import (
	"strings"
	"unicode/utf8"

	"github.com/lacs/lacsapi/internal/shared"
)

const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!@#$%&*"

	// PasswordLength is the size of every generated password.
	PasswordLength = 12
	nicknameSuffix = 4
)

// Credentials is a generated nickname/password pair. The password is only
// ever returned in clear text at generation time.
type Credentials struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// GenerateCredentials builds a nickname from the first two letters of each
// name part plus four random uppercase letters, and a random password.
func GenerateCredentials(nombre, apellidoPaterno, apellidoMaterno string) (*Credentials, error) {
	nick, err := GenerateNickname(nombre, apellidoPaterno, apellidoMaterno)
	if err != nil {
		return nil, err
	}
	pw, err := GeneratePassword()
	if err != nil {
		return nil, err
	}
	return &Credentials{Nickname: nick, Password: pw}, nil
}

// GenerateNickname returns e.g. "JUPEGAQXZT" for "Juan", "Pérez", "García".
func GenerateNickname(parts ...string) (string, error) {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strings.ToUpper(firstRunes(strings.TrimSpace(p), 2)))
	}

	suffix, err := randomFrom(upperChars, nicknameSuffix)
	if err != nil {
		return "", err
	}
	b.WriteString(suffix)
	return b.String(), nil
}

// GeneratePassword returns a PasswordLength password containing at least one
// lowercase letter, one uppercase letter, one digit and one symbol.
func GeneratePassword() (string, error) {
	all := lowerChars + upperChars + digitChars + symbolChars

	pw := make([]byte, 0, PasswordLength)
	for _, set := range []string{lowerChars, upperChars, digitChars, symbolChars} {
		c, err := randomFrom(set, 1)
		if err != nil {
			return "", err
		}
		pw = append(pw, c...)
	}

	rest, err := randomFrom(all, PasswordLength-len(pw))
	if err != nil {
		return "", err
	}
	pw = append(pw, rest...)

	// Fisher-Yates over crypto/rand.
	for i := len(pw) - 1; i > 0; i-- {
		j, err := shared.RandomIndex(i + 1)
		if err != nil {
			return "", err
		}
		pw[i], pw[j] = pw[j], pw[i]
	}
	return string(pw), nil
}

func randomFrom(alphabet string, n int) (string, error) {
	out := make([]byte, n)
	for i := range out {
		idx, err := shared.RandomIndex(len(alphabet))
		if err != nil {
			return "", err
		}
		out[i] = alphabet[idx]
	}
	return string(out), nil
}

func firstRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
