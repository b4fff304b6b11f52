// Package services contains server-side business logic: account
// management and login, worker records, and the postal-code catalogue.
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/cryptox"
	"github.com/lacs/lacsapi/internal/server/auth"
	"github.com/lacs/lacsapi/internal/server/models"
)

// MinPasswordLength applies to passwords chosen by people; generated ones
// are always cryptox.PasswordLength.
const MinPasswordLength = 8

// LoginResult is returned by successful user and admin logins.
type LoginResult struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int64         `json:"expires_in"`
	UserType    auth.Kind     `json:"user_type"`
	User        *models.User  `json:"user,omitempty"`
	Admin       *models.Admin `json:"admin,omitempty"`
}

func newLoginResult(token string, issuer *auth.Issuer, kind auth.Kind) *LoginResult {
	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(issuer.TTL().Seconds()),
		UserType:    kind,
	}
}

var (
	decoyOnce sync.Once
	decoyHash string
)

// burnVerify spends the same PBKDF2 work as a real verification so a login
// for an unknown account takes as long as one with a wrong password.
func burnVerify(password string) {
	decoyOnce.Do(func() {
		decoyHash, _ = cryptox.HashPassword("decoy")
	})
	cryptox.VerifyPassword(decoyHash, password)
}

func invalidCredentials() error {
	return fmt.Errorf("%w: invalid nickname or password", common.ErrorUnauthorized)
}

func validateNewPassword(pw string) error {
	if len([]rune(pw)) < MinPasswordLength {
		return fmt.Errorf("%w: password must have at least %d characters", common.ErrorValidation, MinPasswordLength)
	}
	return nil
}

func requireNames(nombre, apellidoPaterno string) error {
	if strings.TrimSpace(nombre) == "" || strings.TrimSpace(apellidoPaterno) == "" {
		return fmt.Errorf("%w: nombre and apellido_paterno are required", common.ErrorValidation)
	}
	return nil
}

func issue(ctx context.Context, issuer *auth.Issuer, claims auth.Claims) (string, error) {
	token, err := issuer.Issue(ctx, claims)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return token, nil
}
