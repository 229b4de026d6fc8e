// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/RaulRamazanov/Shop/internal/config"
	"github.com/RaulRamazanov/Shop/internal/core"
	"github.com/RaulRamazanov/Shop/internal/middleware"
)

const tokenTypeAccess = "access"

// JWTManager issues and verifies HS256 access tokens. The user id travels
// in the registered "sub" claim and nowhere else.
type JWTManager struct {
	key    jwk.Key
	config config.JWTConfig
	now    func() time.Time
}

func NewJWTManager(cfg config.JWTConfig) (*JWTManager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}

	key, err := jwk.Import([]byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("import signing secret: %w", err)
	}

	if setErr := key.Set(jwk.AlgorithmKey, jwa.HS256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	return &JWTManager{
		key:    key,
		config: cfg,
		now:    time.Now,
	}, nil
}

type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

func (m *JWTManager) CreateAccessToken(userID string) (*IssuedToken, error) {
	if userID == "" {
		return nil, fmt.Errorf("create access token: empty user id")
	}

	now := m.now()
	expiresAt := now.Add(m.config.AccessTokenExpire)

	token, err := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(userID).
		IssuedAt(now).
		Expiration(expiresAt).
		NotBefore(now).
		Claim("type", tokenTypeAccess).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.key))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &IssuedToken{
		Token:     string(signed),
		ExpiresAt: expiresAt.Truncate(time.Second),
	}, nil
}

// VerifyAccessToken returns core.ErrTokenExpired once the expiry instant
// is reached and core.ErrTokenInvalid for anything else that fails.
func (m *JWTManager) VerifyAccessToken(
	_ context.Context,
	tokenString string,
) (*middleware.AccessTokenClaims, error) {
	if !canonicalCompact(tokenString) {
		return nil, fmt.Errorf("verify token: non-canonical encoding: %w", core.ErrTokenInvalid)
	}

	raw := []byte(tokenString)

	token, err := jwt.Parse(
		raw,
		jwt.WithKey(jwa.HS256(), m.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
		jwt.WithClock(jwt.ClockFunc(m.now)),
	)
	if err != nil {
		if m.signedButExpired(raw) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	var tokenType string
	if err := token.Get("type", &tokenType); err != nil ||
		tokenType != tokenTypeAccess {
		return nil, fmt.Errorf(
			"verify token: invalid token type: %w",
			core.ErrTokenInvalid,
		)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	expiresAt, ok := token.Expiration()
	if !ok {
		return nil, fmt.Errorf(
			"verify token: missing expiration: %w",
			core.ErrTokenInvalid,
		)
	}

	if !m.now().Before(expiresAt) {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
	}

	issuedAt, _ := token.IssuedAt()

	return &middleware.AccessTokenClaims{
		UserID:    subject,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// canonicalCompact requires three strictly encoded base64url segments.
// Lenient decoders ignore the unused low bits of the last character, so
// without this an edited signature character could still verify.
func canonicalCompact(tokenString string) bool {
	segments := strings.Split(tokenString, ".")
	if len(segments) != 3 {
		return false
	}

	for _, seg := range segments {
		if seg == "" {
			return false
		}
		if _, err := base64.RawURLEncoding.Strict().DecodeString(seg); err != nil {
			return false
		}
	}

	return true
}

// signedButExpired re-parses without claim validation. Only a token whose
// signature verifies can be reported as expired.
func (m *JWTManager) signedButExpired(raw []byte) bool {
	token, err := jwt.Parse(
		raw,
		jwt.WithKey(jwa.HS256(), m.key),
		jwt.WithValidate(false),
	)
	if err != nil {
		return false
	}

	expiresAt, ok := token.Expiration()
	if !ok {
		return false
	}

	return !m.now().Before(expiresAt)
}

func (m *JWTManager) TokenTTL() time.Duration {
	return m.config.AccessTokenExpire
}
