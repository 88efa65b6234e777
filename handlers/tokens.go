package handlers

import (
	"net/http"

	"github.com/dealcraft/dealcraft-server/internal/revocation"
	"github.com/dealcraft/dealcraft-server/internal/tokens"
	"github.com/dealcraft/dealcraft-server/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenHandler issues and revokes locally signed tokens.
type TokenHandler struct {
	tokens  *tokens.Manager
	revoked *revocation.Blacklist
}

func NewTokenHandler(m *tokens.Manager, b *revocation.Blacklist) *TokenHandler {
	return &TokenHandler{tokens: m, revoked: b}
}

// Issue signs whatever object the caller posts. There is no credential check.
func (h *TokenHandler) Issue(c *gin.Context) {
	var claims map[string]interface{}
	if err := c.ShouldBindJSON(&claims); err != nil {
		handleBindError(c, "tokens.issue", err)
		return
	}
	token, err := h.tokens.Issue(claims)
	if err != nil {
		respondError(c, "tokens.issue", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Revoke blacklists the bearer token that authenticated the request until it expires.
func (h *TokenHandler) Revoke(c *gin.Context) {
	raw := c.GetString(middleware.RawTokenKey)
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
		return
	}
	claims, _ := c.Get(middleware.ClaimsKey)
	cm, _ := claims.(map[string]interface{})
	ttl := h.tokens.Remaining(jwt.MapClaims(cm))
	if err := h.revoked.Revoke(c.Request.Context(), raw, ttl); err != nil {
		respondError(c, "tokens.revoke", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"revoked": h.revoked.Enabled()})
}
