package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndValidate(t *testing.T) {
	token, issued, err := GenerateToken(secret, 15*time.Minute, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, AdminSubject, claims.Subject)
	assert.Equal(t, issued.SessionID, claims.SessionID)
}

func TestValidate_Expired(t *testing.T) {
	token, _, err := GenerateToken(secret, time.Minute, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = ValidateToken(secret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, _, err := GenerateToken(secret, time.Minute, time.Now())
	require.NoError(t, err)

	_, err = ValidateToken([]byte("other"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Missing(t *testing.T) {
	_, err := ValidateToken(secret, "")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = ValidateToken(secret, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
