package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	jwtutil "github.com/Dias221467/LinguaConnect/pkg/jwt"
	"github.com/Dias221467/LinguaConnect/pkg/logger"
)

type contextKey string

const userContextKey contextKey = "user"

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "jwt"

// AuthMiddleware authenticates requests from the session cookie and stores the
// token claims in the request context. Missing or invalid cookie means 401.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				unauthorized(w, "Unauthorized - No token provided")
				return
			}

			claims, err := jwtutil.ValidateToken(cookie.Value, secret)
			if err != nil {
				logger.Log.Warnf("Rejected session token: %v", err)
				unauthorized(w, "Unauthorized - Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the session claims, or nil outside an
// authenticated request.
func GetUserFromContext(ctx context.Context) *jwtutil.Claims {
	claims, _ := ctx.Value(userContextKey).(*jwtutil.Claims)
	return claims
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
