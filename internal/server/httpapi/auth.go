package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/logging"
	"github.com/lacs/lacsapi/internal/server/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// TokenVerifier checks bearer tokens; *auth.Issuer implements it.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

// ClaimsFromContext returns the caller set by the auth middleware.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}

func withClaims(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// NewAuthMiddleware rejects requests without a valid bearer token and
// stores the verified claims in the request context.
func NewAuthMiddleware(verifier TokenVerifier, logger logging.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, r, logger, fmt.Errorf("%w: missing token", common.ErrorUnauthorized))
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.Debug(r.Context(), "token rejected", "error", err)
				writeError(w, r, logger, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get(common.AuthorizationHeaderName)
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
