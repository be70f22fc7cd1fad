package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-blog-server/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUser stores the authenticated *users.User
	ContextKeyUser ContextKey = "user"
	// ContextKeyToken stores the raw bearer token of the request
	ContextKeyToken ContextKey = "token"
)

// RequireAuth validates the Bearer token on the request and injects the
// authenticated user and the raw token into the request context. The raw
// token is kept around because logout revokes exactly that token.
func (s *Server) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			writeUnauthorized(w)
			return
		}

		user, err := s.auth.ValidateToken(r.Context(), raw)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUser, user)
		ctx = context.WithValue(ctx, ContextKeyToken, raw)
		next(w, r.WithContext(ctx))
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func requestUser(r *http.Request) *users.User {
	user, _ := r.Context().Value(ContextKeyUser).(*users.User)
	return user
}

func requestToken(r *http.Request) string {
	token, _ := r.Context().Value(ContextKeyToken).(string)
	return token
}
