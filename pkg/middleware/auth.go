package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dealcraft/dealcraft-server/internal/access"
	"github.com/dealcraft/dealcraft-server/pkg/logger"
	"github.com/dealcraft/dealcraft-server/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	ClaimsKey   = "claims"
	RawTokenKey = "rawToken"
)

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// ClaimsToken is a Token whose claims are already decoded.
type ClaimsToken map[string]interface{}

func (t ClaimsToken) Claims(v interface{}) error {
	b, err := json.Marshal(map[string]interface{}(t))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Unavailable returns a Verifier that rejects every token. It stands in for a strategy whose
// configuration is missing so that protected routes fail closed.
func Unavailable(reason string) Verifier {
	return unavailable{err: errors.New(reason)}
}

type unavailable struct{ err error }

func (u unavailable) Verify(context.Context, string) (Token, error) { return nil, u.err }

// AuthMiddleware returns a Gin middleware that verifies Bearer tokens using the provided verifier.
// On success the claims are stored under ClaimsKey and the caller's email is attached to the
// request context as an access.Identity.
func AuthMiddleware(strategy string, ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			reject(c, strategy, "missing_header")
			return
		}
		// Expect 'Bearer <token>'
		var token string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 {
			reject(c, strategy, "malformed_header")
			return
		}

		idToken, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			logger.Debugf("%s token rejected: %v", strategy, err)
			reject(c, strategy, "invalid_token")
			return
		}

		var claims map[string]interface{}
		if err := idToken.Claims(&claims); err != nil {
			reject(c, strategy, "bad_claims")
			return
		}
		email, _ := claims["email"].(string)

		c.Set(ClaimsKey, claims)
		c.Set(RawTokenKey, token)
		c.Request = c.Request.WithContext(access.WithIdentity(c.Request.Context(), access.Identity{Email: email, Strategy: strategy}))
		c.Next()
	}
}

func reject(c *gin.Context, strategy, reason string) {
	metrics.AuthRejected.WithLabelValues(strategy, reason).Inc()
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
}
