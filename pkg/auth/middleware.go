// Package auth protects the console API with bearer tokens.
package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/chainsafe/wallet-console/pkg/app/errors"
	apphttp "github.com/chainsafe/wallet-console/pkg/app/http"
)

// Middleware rejects requests without a valid bearer token and stores the
// token subject in the request context.
func Middleware(m *JWTManager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := m.Validate(bearerToken(r))
			if err != nil {
				logger.Debug("rejected API request",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				apphttp.DefaultErrorHandler(w, apperrors.UnAuthorizedError(err, "unauthorized"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), claims.Subject)))
		})
	}
}

// bearerToken extracts the token from the Authorization header. Websocket
// clients that cannot set headers may pass it as the access_token query parameter.
func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.URL.Query().Get("access_token")
}
