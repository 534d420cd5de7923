// filepath: internal/services/auth/middleware.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"mediatheque/internal/logging"
	"mediatheque/internal/models"
	"mediatheque/internal/services"

	"golang.org/x/crypto/bcrypt"
)

// writeError sends a JSON error response.
func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// UserFromContext extracts the authenticated principal stored by
// AuthMiddleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value("user").(*models.User)
	return user, ok
}

// Middleware provides authentication and authorization middleware.
type Middleware struct {
	User  services.UserService
	Token TokenService
}

// NewMiddleware creates a new instance of Middleware.
func NewMiddleware(user services.UserService, token TokenService) *Middleware {
	return &Middleware{
		User:  user,
		Token: token,
	}
}

// AuthMiddleware checks for a valid JWT Bearer token OR Basic Auth.
// Unauthenticated requests get 401 (the API equivalent of a redirect to
// the login entry point); inactive accounts are rejected outright.
func (m *Middleware) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			// Tell the client we accept both
			w.Header().Set("WWW-Authenticate", `Basic realm="restricted", Bearer realm="restricted"`)
			writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		var user *models.User
		var err error

		// 1. Check for Bearer Token (JWT)
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			user, err = m.Token.ValidateAccessToken(tokenString)
			if err != nil {
				logging.Log.Warnf("AuthMiddleware: Invalid Bearer token: %v", err)
				if strings.Contains(err.Error(), "expired") {
					writeError(w, http.StatusUnauthorized, "Token expired")
				} else {
					writeError(w, http.StatusUnauthorized, "Invalid token")
				}
				return
			}
		} else if strings.HasPrefix(authHeader, "Basic ") {
			// 2. Fallback to Basic Auth
			username, password, ok := r.BasicAuth()
			if !ok {
				writeError(w, http.StatusUnauthorized, "Invalid Basic Auth header")
				return
			}
			user, err = m.validateBasicAuth(username, password)
			if err != nil {
				logging.Log.Warnf("AuthMiddleware: Invalid Basic Auth: %v", err)
				writeError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
		} else {
			writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		if !user.IsActive {
			writeError(w, http.StatusForbidden, "Account is deactivated")
			return
		}

		// Add user and capabilities to the context
		ctx := context.WithValue(r.Context(), "user", user)
		ctx = context.WithValue(ctx, "capabilities", Capabilities(user.Role))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validateBasicAuth is a helper to check username/password against the database.
func (m *Middleware) validateBasicAuth(username, password string) (*models.User, error) {
	user, err := m.User.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("user '%s' not found", username)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("password comparison failed for user '%s'", username)
	}
	return user, nil
}

// RoleMiddleware allows only the listed roles through. Authenticated users
// with a mismatched role get 403, uniformly.
func (m *Middleware) RoleMiddleware(allowed ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				logging.Log.Warnf("RoleMiddleware: No user found in context for %s", r.URL.Path)
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}

			for _, role := range allowed {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			logging.Log.Warnf("RoleMiddleware: Access DENIED for user '%s' (role %s) on %s", user.Username, user.Role, r.URL.Path)
			writeError(w, http.StatusForbidden, "Forbidden")
		})
	}
}

// CapabilityMiddleware requires the named capability in addition to any
// role check on the route.
func (m *Middleware) CapabilityMiddleware(capability string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				logging.Log.Warnf("CapabilityMiddleware: No user found in context for %s", r.URL.Path)
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}

			if !HasCapability(user.Role, capability) {
				logging.Log.Warnf("CapabilityMiddleware: Access DENIED for user '%s'. Missing capability '%s' for %s", user.Username, capability, r.URL.Path)
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
