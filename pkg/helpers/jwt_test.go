package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_IssueVerify(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("unit-secret", 100*time.Hour)
	tok, exp, err := m.Issue("6f1c7d1e-2a7b-4c55-9a57-0f1f0d3c1b11")
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.WithinDuration(t, time.Now().Add(100*time.Hour), exp, 2*time.Second)

	claims, err := m.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "6f1c7d1e-2a7b-4c55-9a57-0f1f0d3c1b11", claims.User.ID)
}

func TestJWTManager_Expired(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("unit-secret", -time.Minute)
	tok, _, err := m.Issue("u1")
	require.NoError(t, err)

	_, err = m.Verify(tok)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTManager_Tampered(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("unit-secret", time.Hour)
	tok, _, err := m.Issue("u1")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = m.Verify(tampered)
	require.ErrorIs(t, err, ErrTokenMalformed)

	_, err = m.Verify("not-a-token")
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := NewJWTManager("one", time.Hour).Issue("u1")
	require.NoError(t, err)

	_, err = NewJWTManager("two", time.Hour).Verify(tok)
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestJWTManager_MissingIdentity(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("unit-secret", time.Hour)
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tok, err := raw.SignedString(m.Secret)
	require.NoError(t, err)

	_, err = m.Verify(tok)
	require.ErrorIs(t, err, ErrTokenMalformed)
}
