package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dealcraft/dealcraft-server/pkg/middleware"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the lifetime of tokens issued by POST /getToken.
const DefaultTTL = time.Hour

var (
	ErrNoSecret = errors.New("jwt secret is not configured")
	ErrRevoked  = errors.New("token has been revoked")
)

// RevocationChecker reports whether a raw token was revoked before its expiry.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Manager issues and verifies locally signed HS256 tokens.
type Manager struct {
	secret  []byte
	ttl     time.Duration
	revoked RevocationChecker
	now     func() time.Time
}

// NewManager creates a Manager. revoked may be nil.
func NewManager(secret string, ttl time.Duration, revoked RevocationChecker) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl, revoked: revoked, now: time.Now}
}

// Issue signs the given claims as they are, adding iat and an exp of now+ttl.
// Caller-supplied iat and exp values are overwritten.
func (m *Manager) Issue(claims map[string]interface{}) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrNoSecret
	}
	now := m.now()
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(m.ttl).Unix()
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	return jt.SignedString(m.secret)
}

// Parse validates signature, algorithm and expiry and returns the claims.
func (m *Manager) Parse(raw string) (jwt.MapClaims, error) {
	if len(m.secret) == 0 {
		return nil, ErrNoSecret
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Verify implements middleware.Verifier for the local strategy.
func (m *Manager) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	claims, err := m.Parse(raw)
	if err != nil {
		return nil, err
	}
	if m.revoked != nil {
		revoked, err := m.revoked.IsRevoked(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("revocation check: %w", err)
		}
		if revoked {
			return nil, ErrRevoked
		}
	}
	return middleware.ClaimsToken(claims), nil
}

// Remaining returns how long the token stays valid, based on its exp claim.
func (m *Manager) Remaining(claims jwt.MapClaims) time.Duration {
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0
	}
	return exp.Sub(m.now())
}
