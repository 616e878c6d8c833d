package api

import (
	"context"
	"net/http"
	"strings"

	"kasjer/internal/auth"
)

type contextKey string

const userContextKey = contextKey("user")

func (s *Server) bearerClaims(r *http.Request) (*auth.AppClaims, string) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, "Authorization header required"
	}

	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" {
		return nil, "Invalid Authorization header format"
	}

	claims, err := auth.VerifyJWT(headerParts[1], s.config.JWT.Secret)
	if err != nil {
		return nil, "Invalid or expired token"
	}
	return claims, ""
}

// RequireAdmin guards the back-office endpoints. A missing or bad token is
// 401, a valid token without the admin role is 403.
func (s *Server) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, problem := s.bearerClaims(r)
		if claims == nil {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, problem)
			return
		}
		if claims.Role != auth.RoleAdmin {
			writeError(w, http.StatusForbidden, codeForbidden, "Admin role required")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUserFromContext(ctx context.Context) *auth.AppClaims {
	if claims, ok := ctx.Value(userContextKey).(*auth.AppClaims); ok {
		return claims
	}
	return nil
}

// senderName names the admin behind a back-office request for the audit log.
func senderName(ctx context.Context) string {
	claims := GetUserFromContext(ctx)
	if claims == nil || claims.Username == "" {
		return "unknown admin"
	}
	return claims.Username
}
