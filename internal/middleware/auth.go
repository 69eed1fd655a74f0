package middleware

import (
	"context"
	"net/http"
	"strings"

	"board-backend/internal/auth"
	"board-backend/internal/models"
)

type contextKey string

const authContextKey contextKey = "auth_context"

// AuthContext is the typed role payload handlers receive. It is built by
// the middleware from the JWT plus a fresh member-row read, never from
// ambient injection.
type AuthContext struct {
	MemberID string
	Username string
	Role     models.Role
}

// MemberGetter is the slice of the member repository the middleware needs.
type MemberGetter interface {
	Get(ctx context.Context, id string) (*models.Member, error)
}

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	members    MemberGetter
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, members MemberGetter) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		members:    members,
	}
}

// authenticate validates the bearer token and re-reads the member row so
// role changes and suspensions take effect immediately, not at token expiry.
func (m *AuthMiddleware) authenticate(r *http.Request) (*AuthContext, int, string) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, http.StatusUnauthorized, "Authorization header required"
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, http.StatusUnauthorized, "Invalid authorization format"
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		return nil, http.StatusUnauthorized, "Invalid or expired token"
	}

	member, err := m.members.Get(r.Context(), claims.MemberID)
	if err != nil {
		return nil, http.StatusUnauthorized, "Member not found"
	}

	if !member.IsActive {
		return nil, http.StatusForbidden, "Account suspended. Please contact an administrator."
	}

	return &AuthContext{
		MemberID: member.ID,
		Username: member.Username,
		Role:     member.Role,
	}, 0, ""
}

// Authenticate is a middleware that validates JWT tokens
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac, status, msg := m.authenticate(r)
		if ac == nil {
			http.Error(w, msg, status)
			return
		}

		ctx := context.WithValue(r.Context(), authContextKey, ac)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole ensures the authenticated member has one of the allowed roles
func (m *AuthMiddleware) RequireRole(allowedRoles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac, status, msg := m.authenticate(r)
			if ac == nil {
				http.Error(w, msg, status)
				return
			}

			hasRole := false
			for _, role := range allowedRoles {
				if ac.Role == role {
					hasRole = true
					break
				}
			}
			if !hasRole {
				http.Error(w, "Forbidden: Insufficient permissions", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), authContextKey, ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireModerator allows moderators and administrators
func (m *AuthMiddleware) RequireModerator(next http.Handler) http.Handler {
	return m.RequireRole(models.RoleModerator, models.RoleAdmin)(next)
}

// RequireAdmin allows administrators only
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireRole(models.RoleAdmin)(next)
}

// FromContext extracts the auth context stored by the middleware
func FromContext(ctx context.Context) (*AuthContext, bool) {
	ac, ok := ctx.Value(authContextKey).(*AuthContext)
	return ac, ok
}

// ContextWithAuth returns ctx carrying ac. Used by handler tests.
func ContextWithAuth(ctx context.Context, ac *AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, ac)
}
