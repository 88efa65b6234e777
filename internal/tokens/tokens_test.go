package tokens

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type fakeRevocations map[string]bool

func (f fakeRevocations) IsRevoked(ctx context.Context, token string) (bool, error) {
	return f[token], nil
}

type failingRevocations struct{}

func (failingRevocations) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestIssue_ValidAndClaims(t *testing.T) {
	secret := "test-secret-32-bytes-should-be-long-enough"
	m := NewManager(secret, 0, nil)

	tokenStr, err := m.Issue(map[string]interface{}{"email": "test@example.com", "name": "Test User"})
	require.NoError(t, err)

	// parse independently and validate
	parsed, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "test@example.com", claims["email"])
	require.Equal(t, "Test User", claims["name"])

	iat, err := claims.GetIssuedAt()
	require.NoError(t, err)
	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	require.Equal(t, time.Hour, exp.Sub(iat.Time))
}

func TestIssue_OverwritesCallerExpiry(t *testing.T) {
	m := NewManager("overwrite-secret-xxxxxxxxxxxxxxxxxxxx", time.Hour, nil)
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	tokenStr, err := m.Issue(map[string]interface{}{"email": "a@x.com", "exp": 9999999999})
	require.NoError(t, err)
	claims, err := m.Parse(tokenStr)
	require.NoError(t, err)
	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	require.Equal(t, fixed.Add(time.Hour).Unix(), exp.Unix())
	require.Equal(t, time.Hour, m.Remaining(claims))
}

func TestIssue_NoSecret(t *testing.T) {
	m := NewManager("", time.Hour, nil)
	_, err := m.Issue(map[string]interface{}{"email": "a@x.com"})
	require.ErrorIs(t, err, ErrNoSecret)
	_, err = m.Verify(context.Background(), "x.y.z")
	require.ErrorIs(t, err, ErrNoSecret)
}

func TestVerify_Expired(t *testing.T) {
	m := NewManager("another-secret-32-bytes-longgggg", time.Hour, nil)
	issuedAt := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issuedAt }
	tokenStr, err := m.Issue(map[string]interface{}{"email": "x@x"})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(context.Background(), tokenStr)
	require.Error(t, err)
	require.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestVerify_WrongSecretFails(t *testing.T) {
	issuer := NewManager("secret-one-32-bytes-xxxxxxxxxxxxxxxx", time.Hour, nil)
	tokenStr, err := issuer.Issue(map[string]interface{}{"email": "bob@example.com"})
	require.NoError(t, err)

	verifier := NewManager("different-secret-xxxxxxxxxxxxxxxx", time.Hour, nil)
	_, err = verifier.Verify(context.Background(), tokenStr)
	require.Error(t, err)
}

func TestVerify_Malformed(t *testing.T) {
	m := NewManager("x", time.Hour, nil)
	_, err := m.Verify(context.Background(), "not.a.jwt")
	require.Error(t, err)
}

// Rejected when alg=none (unsigned token)
func TestVerify_AlgNoneRejected(t *testing.T) {
	headerEnc := (&jwt.Token{}).EncodeSegment([]byte(`{"alg":"none"}`))
	payloadEnc := (&jwt.Token{}).EncodeSegment([]byte(`{"email":"u-none@x.com","exp":9999999999}`))
	tok := headerEnc + "." + payloadEnc + "."
	m := NewManager("x", time.Hour, nil)
	_, err := m.Verify(context.Background(), tok)
	require.Error(t, err)
}

// A token without exp is not accepted even with a valid signature
func TestVerify_RequiresExpiry(t *testing.T) {
	secret := "no-exp-secret-32-bytes-xxxxxxxxxxxx"
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "a@x.com"})
	tok, err := jt.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewManager(secret, time.Hour, nil).Verify(context.Background(), tok)
	require.Error(t, err)
}

// Tampering with payload must fail signature verification
func TestVerify_TamperedPayload(t *testing.T) {
	m := NewManager("tamper-test-secret-32-bytes-xxxxxxx", 5*time.Minute, nil)
	tokenStr, err := m.Issue(map[string]interface{}{"email": "t@example.com"})
	require.NoError(t, err)

	parts := strings.Split(tokenStr, ".")
	require.Len(t, parts, 3)
	payloadBytes, _ := jwt.NewParser().DecodeSegment(parts[1])
	parts[1] = (&jwt.Token{}).EncodeSegment([]byte(strings.Replace(string(payloadBytes), "t@example.com", "attacker@example.com", 1)))
	_, err = m.Verify(context.Background(), strings.Join(parts, "."))
	require.Error(t, err)
}

func TestVerify_ClaimsAndRevocation(t *testing.T) {
	revoked := fakeRevocations{}
	m := NewManager("revocation-secret-32-bytes-xxxxxxxx", time.Hour, revoked)
	tokenStr, err := m.Issue(map[string]interface{}{"email": "alice@x.com"})
	require.NoError(t, err)

	tok, err := m.Verify(context.Background(), tokenStr)
	require.NoError(t, err)
	var claims map[string]interface{}
	require.NoError(t, tok.Claims(&claims))
	require.Equal(t, "alice@x.com", claims["email"])

	revoked[tokenStr] = true
	_, err = m.Verify(context.Background(), tokenStr)
	require.ErrorIs(t, err, ErrRevoked)
}

func TestVerify_RevocationLookupFailureRejects(t *testing.T) {
	m := NewManager("lookup-secret-32-bytes-xxxxxxxxxxxx", time.Hour, failingRevocations{})
	tokenStr, err := m.Issue(map[string]interface{}{"email": "alice@x.com"})
	require.NoError(t, err)
	_, err = m.Verify(context.Background(), tokenStr)
	require.Error(t, err)
}
