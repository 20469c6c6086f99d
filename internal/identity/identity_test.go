package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService() *Service {
	return NewService("test-secret", bcrypt.MinCost)
}

func TestHashAndVerify(t *testing.T) {
	s := newTestService()

	hash, err := s.Hash("supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", hash)

	assert.True(t, s.Verify("supersecret", hash))
	assert.False(t, s.Verify("wrong", hash))
	assert.False(t, s.Verify("supersecret", "not-a-hash"))
}

func TestHashIsSalted(t *testing.T) {
	s := newTestService()

	first, err := s.Hash("same")
	require.NoError(t, err)
	second, err := s.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestIssueAndResolveToken(t *testing.T) {
	s := newTestService()

	token, err := s.IssueToken("a@example.com", time.Minute)
	require.NoError(t, err)

	subject, err := s.ResolveToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", subject)
}

func TestIssueTokenRequiresSubject(t *testing.T) {
	_, err := newTestService().IssueToken("", time.Minute)
	require.ErrorIs(t, err, ErrEmptySubject)
}

func TestResolveToken_Expired(t *testing.T) {
	s := newTestService()
	issued := time.Now().Add(-time.Hour)
	s.now = func() time.Time { return issued }

	token, err := s.IssueToken("a@example.com", time.Minute)
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ResolveToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveToken_WrongSecret(t *testing.T) {
	token, err := NewService("other-secret", bcrypt.MinCost).IssueToken("a@example.com", time.Minute)
	require.NoError(t, err)

	_, err = newTestService().ResolveToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveToken_Malformed(t *testing.T) {
	_, err := newTestService().ResolveToken("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveToken_WrongIssuer(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "a@example.com",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newTestService().ResolveToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveToken_UnsignedRejected(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "a@example.com",
		Issuer:    Issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestService().ResolveToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
