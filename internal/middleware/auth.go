// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/RaulRamazanov/Shop/internal/core"
)

const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

type TokenVerifier interface {
	VerifyAccessToken(
		ctx context.Context,
		token string,
	) (*AccessTokenClaims, error)
}

// AccessTokenClaims is the decoded, fixed-shape token payload.
type AccessTokenClaims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IdentityLoader resolves a verified user id to the current user record.
// It returns core.ErrNotFound when the user no longer exists.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, userID string) (*Identity, error)
}

// Authenticator rejects any request that does not carry a valid token for
// an existing user.
func Authenticator(
	verifier TokenVerifier,
	loader IdentityLoader,
	cookieName string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r, cookieName)

			if token == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("missing authorization token"),
				)
				return
			}

			ctx, err := resolve(r.Context(), verifier, loader, token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches an identity when the token resolves and otherwise
// lets the request through as anonymous.
func OptionalAuth(
	verifier TokenVerifier,
	loader IdentityLoader,
	cookieName string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r, cookieName)

			if token != "" {
				ctx, err := resolve(r.Context(), verifier, loader, token)
				if err == nil {
					r = r.WithContext(ctx)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func resolve(
	ctx context.Context,
	verifier TokenVerifier,
	loader IdentityLoader,
	token string,
) (context.Context, error) {
	claims, err := verifier.VerifyAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	identity, err := loader.LoadIdentity(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}

	ctx = context.WithValue(ctx, ClaimsKey, claims)
	return WithIdentity(ctx, identity), nil
}

// CheckRole compares roles by exact match. A superadmin does not satisfy
// an admin requirement.
func CheckRole(identity *Identity, roles ...string) error {
	if identity == nil || identity.Role == "" {
		return core.ErrUnauthorized
	}

	for _, role := range roles {
		if identity.Role == role {
			return nil
		}
	}

	return fmt.Errorf("role %q: %w", identity.Role, core.ErrForbidden)
}

func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := CheckRole(GetIdentity(r.Context()), roles...)

			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, core.ErrForbidden):
				core.Forbidden(w, "insufficient permissions")
			default:
				core.Unauthorized(w, "authentication required")
			}
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(RoleAdmin)(next)
}

func RequireSuperadmin(next http.Handler) http.Handler {
	return RequireRole(RoleSuperadmin)(next)
}

// ExtractToken reads the session cookie and falls back to an
// Authorization bearer header for API clients.
func ExtractToken(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

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

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	case errors.Is(err, core.ErrTokenInvalid):
		core.JSONError(w, core.TokenInvalidError())
	case errors.Is(err, core.ErrNotFound):
		core.JSONError(w, core.UnauthorizedError("user no longer exists"))
	default:
		core.InternalServerError(w, err)
	}
}
