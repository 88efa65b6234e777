package oidc

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// fakeProvider serves discovery and JWKS documents for a single RSA key.
func fakeProvider(t *testing.T, key *rsa.PrivateKey) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"issuer":                                srv.URL,
			"jwks_uri":                              srv.URL + "/jwks",
			"id_token_signing_alg_values_supported": []string{"RS256"},
		})
	})
	mux.HandleFunc("/jwks", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"keys": []map[string]string{{
				"kty": "RSA",
				"alg": "RS256",
				"use": "sig",
				"kid": "k1",
				"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
			}},
		})
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func signIDToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = "k1"
	s, err := tok.SignedString(key)
	require.NoError(t, err)
	return s
}

func TestVerifier_VerifiesProviderToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := fakeProvider(t, key)

	ver, err := NewVerifier(context.Background(), srv.URL, "deal-craft")
	require.NoError(t, err)

	raw := signIDToken(t, key, jwt.MapClaims{
		"iss":   srv.URL,
		"aud":   "deal-craft",
		"sub":   "uid-1",
		"email": "alice@x.com",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	tok, err := ver.Verify(context.Background(), raw)
	require.NoError(t, err)
	var claims map[string]interface{}
	require.NoError(t, tok.Claims(&claims))
	require.Equal(t, "alice@x.com", claims["email"])

	wrongAud := signIDToken(t, key, jwt.MapClaims{
		"iss": srv.URL, "aud": "other-project", "sub": "uid-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err = ver.Verify(context.Background(), wrongAud)
	require.Error(t, err)

	expired := signIDToken(t, key, jwt.MapClaims{
		"iss": srv.URL, "aud": "deal-craft", "sub": "uid-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	_, err = ver.Verify(context.Background(), expired)
	require.Error(t, err)
}

func TestNewVerifier_DiscoveryFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	_, err := NewVerifier(context.Background(), srv.URL, "cid")
	require.Error(t, err)
}

func TestFirebaseIssuer(t *testing.T) {
	require.Equal(t, "https://securetoken.google.com/deal-craft", FirebaseIssuer("deal-craft"))
}

func TestProjectIDFromServiceAccount(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "sa.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"type":"service_account","project_id":"deal-craft"}`), 0o600))
	id, err := ProjectIDFromServiceAccount(good)
	require.NoError(t, err)
	require.Equal(t, "deal-craft", id)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"type":"service_account"}`), 0o600))
	_, err = ProjectIDFromServiceAccount(empty)
	require.Error(t, err)

	_, err = ProjectIDFromServiceAccount(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestInsecureVerifier(t *testing.T) {
	payload, _ := json.Marshal(map[string]interface{}{"email": "a@b.c", "sub": "s"})
	raw := "hdr." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"

	tok, err := NewInsecureVerifier().Verify(context.Background(), raw)
	require.NoError(t, err)
	var claims map[string]interface{}
	require.NoError(t, tok.Claims(&claims))
	require.Equal(t, "a@b.c", claims["email"])

	_, err = NewInsecureVerifier().Verify(context.Background(), "nodots")
	require.Error(t, err)
}
