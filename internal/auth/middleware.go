package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fleetdesk-io/fleetdesk/internal/models"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Identity is the authenticated caller attached to the request context.
// ID, Email and RoleID are re-resolved from the store on every request;
// CompanyID is carried from the token as-is.
type Identity struct {
	ID        int64
	Email     string
	RoleID    int64
	CompanyID *int64
}

// UserGetter resolves a subject from the credential store. The store
// satisfies this interface.
type UserGetter interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// ErrUserNotFound is returned by UserGetter implementations when no user
// exists for the given id.
var ErrUserNotFound = errors.New("user not found")

// Middleware validates the bearer token and re-resolves the subject from
// the store before any handler runs. A token stays valid for its lifetime
// even if the user's fields change, but dies instantly when the account
// record is removed.
func Middleware(tm *TokenManager, users UserGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				unauthorized(w, "No authentication token provided")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := tm.Validate(tokenString)
			if err != nil {
				if errors.Is(err, ErrExpiredToken) {
					unauthorized(w, "Token expired")
					return
				}
				unauthorized(w, "Invalid token")
				return
			}

			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if errors.Is(err, ErrUserNotFound) {
				unauthorized(w, "User not found")
				return
			}
			if err != nil {
				// A store failure is not an auth verdict.
				serverError(w)
				return
			}

			identity := &Identity{
				ID:        user.ID,
				Email:     user.Email,
				RoleID:    user.RoleID,
				CompanyID: claims.CompanyID,
			}
			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext retrieves the authenticated identity from the context.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*Identity)
	return identity, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   "Unauthorized",
		"message": message,
	})
}

func serverError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{
		"error": "Internal server error",
	})
}
