package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/conectaedu/portal/internal/apperror"
)

// Claims is the payload embedded in every session token: the registered
// claims (sub = user ID, jti, iat, exp) plus the user's email and role so
// protected handlers can authorize without a database round trip.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Tipo  Role   `json:"tipo"`
}

// UserID returns the subject claim, which carries the user's ID.
func (c *Claims) UserID() string {
	return c.Subject
}

// TokenManager mints and verifies HS256-signed session tokens. Tokens are
// stateless: possession of a valid, unexpired, correctly signed token is
// sufficient for access. Revocation is layered on top by the Denylist.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager with the given HMAC secret and
// fixed token lifetime.
func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: secret, ttl: ttl}
}

// Generate mints a signed token for the given user. The token ID (jti) is a
// fresh UUID so individual tokens can be revoked on logout.
func (m *TokenManager) Generate(user *User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Email: user.Email,
		Tipo:  user.Tipo,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify checks the token's signature and expiry and returns its claims.
// Expired tokens and tokens with bad signatures produce distinct errors so
// the client can tell "log in again" from "token garbage", though both map
// to 401 externally.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.NewExpiredToken()
		}
		return nil, apperror.NewInvalidToken()
	}

	if !token.Valid {
		return nil, apperror.NewInvalidToken()
	}

	return claims, nil
}

// TTL returns the configured token lifetime.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}
