package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T, d time.Duration) *Service {
	t.Helper()
	s, err := NewService(Config{SecretKey: testSecret, Duration: d})
	require.NoError(t, err)
	return s
}

func TestNewService(t *testing.T) {
	_, err := NewService(Config{Duration: time.Hour})
	assert.ErrorIs(t, err, ErrEmptySecretKey)

	_, err = NewService(Config{SecretKey: "short", Duration: time.Hour})
	assert.ErrorIs(t, err, ErrWeakSecretKey)

	_, err = NewService(Config{SecretKey: testSecret})
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestGenerateAndValidate(t *testing.T) {
	s := newTestService(t, time.Hour)
	tok, err := s.GenerateToken("6f1c2a7e-8a55-4c1e-9d7b-1f0f5a7e9c11", "alice", "landlord")
	require.NoError(t, err)

	claims, err := s.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "6f1c2a7e-8a55-4c1e-9d7b-1f0f5a7e9c11", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "landlord", claims.Role)
	assert.Equal(t, claims.UserID, claims.Subject)

	_, err = s.GenerateToken("", "alice", "landlord")
	assert.ErrorIs(t, err, ErrEmptySubject)
}

func TestExpiredToken(t *testing.T) {
	s := newTestService(t, time.Minute)
	s.now = func() time.Time { return time.Now().Add(-time.Hour) }
	tok, err := s.GenerateToken("u1", "bob", "tenant")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRejectsForeignTokens(t *testing.T) {
	s := newTestService(t, time.Hour)

	_, err := s.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := newTestService(t, time.Hour)
	other.config.SecretKey = "ffffffffffffffffffffffffffffffff"
	tok, err := other.GenerateToken("u1", "bob", "tenant")
	require.NoError(t, err)
	_, err = s.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u1"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.ValidateToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
