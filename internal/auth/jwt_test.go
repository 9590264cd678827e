package auth_test

import (
	"os"
	"testing"
	"time"

	"pokedex-service/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret-key-for-testing")
	code := m.Run()
	os.Unsetenv("JWT_SECRET")
	os.Exit(code)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	trainerID := "5e9f8f8f8f8f8f8f8f8f8f8f"

	token, err := auth.GenerateAccessToken(trainerID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := auth.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, trainerID, subject)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	_, err := auth.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "5e9f8f8f8f8f8f8f8f8f8f8f",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = auth.ValidateAccessToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "5e9f8f8f8f8f8f8f8f8f8f8f",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-key-for-testing"))
	require.NoError(t, err)

	_, err = auth.ValidateAccessToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateAccessToken_EmptySubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-key-for-testing"))
	require.NoError(t, err)

	_, err = auth.ValidateAccessToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
