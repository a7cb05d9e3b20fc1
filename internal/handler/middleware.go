package handlers

import (
	"context"
	"net/http"
	"strings"

	"vlogify/internal/models"
)

// Auth verifies the bearer token and puts the resolved user identity into
// the request context. Applied to the auth-required route group.
func (h *Handlers) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			WriteError(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		// "Bearer <token>" format
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			WriteError(w, "Invalid token format", http.StatusUnauthorized)
			return
		}

		user, err := h.Sessions.UserFromToken(parts[1])
		if err != nil {
			WriteError(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, "userID", user.ID)
		ctx = context.WithValue(ctx, "email", user.Email)
		ctx = context.WithValue(ctx, "role", user.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly gates the dashboard routes. Runs after Auth.
func (h *Handlers) AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value("role").(string)
		if !ok || role != models.RoleAdmin {
			WriteError(w, "Access denied", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestUser resolves the authenticated user from the context against
// the live users collection.
func (h *Handlers) requestUser(r *http.Request) (*models.User, bool) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		return nil, false
	}

	for _, u := range h.Store.Users() {
		if u.ID == userID {
			user := u
			return &user, true
		}
	}

	return nil, false
}
