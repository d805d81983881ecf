package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-parcel/logger"
	"go-parcel/models"
	"go-parcel/utils"
)

// Key type for context
type contextKey string

const IdentityContextKey = contextKey("identity")

// Auth verifies bearer tokens and attaches the decoded identity to the context
type Auth struct {
	verifier utils.Verifier
}

// NewAuth creates the auth guard on top of verifier
func NewAuth(verifier utils.Verifier) *Auth {
	return &Auth{verifier: verifier}
}

// Middleware rejects requests without a header or token segment with 401 and
// tokens the verifier refuses with 403.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Msg("authorization header missing")
			utils.WriteMessage(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		token := tokenFromHeader(authHeader)
		if token == "" {
			log.Warn().Msg("authorization header without token")
			utils.WriteMessage(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		identity, err := a.verifier.Verify(r.Context(), token)
		if err != nil {
			log.Warn().Err(err).Msg("token verification failed")
			utils.WriteMessage(w, http.StatusForbidden, "unauthorized access")
			return
		}

		ctx := context.WithValue(r.Context(), IdentityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromHeader returns the second space separated segment of the header
func tokenFromHeader(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// IdentityFromContext returns the identity stored by the auth guard
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(models.Identity)
	return identity, ok
}
