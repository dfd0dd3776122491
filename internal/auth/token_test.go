package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	ti, err := NewTokenIssuer(testSecret, time.Hour)
	require.NoError(t, err)
	return ti
}

func TestIssueAndVerify(t *testing.T) {
	ti := newIssuer(t)

	token, err := ti.Issue("user-1")
	require.NoError(t, err)

	userID, err := ti.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestVerifyExpired(t *testing.T) {
	ti := newIssuer(t)
	past := ti.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })

	token, err := past.Issue("user-1")
	require.NoError(t, err)

	_, err = ti.Verify(token)
	assert.ErrorIs(t, err, core.ErrExpired)
}

func TestVerifyExpiresAfterTTL(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ti := newIssuer(t).WithClock(func() time.Time { return start })

	token, err := ti.Issue("user-1")
	require.NoError(t, err)

	_, err = ti.WithClock(func() time.Time { return start.Add(59 * time.Minute) }).Verify(token)
	assert.NoError(t, err)

	_, err = ti.WithClock(func() time.Time { return start.Add(61 * time.Minute) }).Verify(token)
	assert.ErrorIs(t, err, core.ErrExpired)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	other, err := NewTokenIssuer("ffffffffffffffffffffffffffffffff", time.Hour)
	require.NoError(t, err)
	token, err := other.Issue("user-1")
	require.NoError(t, err)

	_, err = newIssuer(t).Verify(token)
	assert.ErrorIs(t, err, core.ErrUnauthenticated)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newIssuer(t).Verify(token)
	assert.ErrorIs(t, err, core.ErrUnauthenticated)
}

func TestVerifyMissingUserID(t *testing.T) {
	ti := newIssuer(t)
	token, err := ti.Issue("")
	require.NoError(t, err)

	_, err = ti.Verify(token)
	assert.ErrorIs(t, err, core.ErrMalformedToken)
}

func TestVerifyGarbage(t *testing.T) {
	_, err := newIssuer(t).Verify("not-a-token")
	assert.ErrorIs(t, err, core.ErrUnauthenticated)
}

func TestNewTokenIssuerRequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	assert.Error(t, err)
}
