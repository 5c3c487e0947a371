package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mansoor/social-support-agent/internal/config"
)

func testJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
}

func TestJWTGenerateAndValidate(t *testing.T) {
	service := testJWTService()

	token, err := service.GenerateToken("operator")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.GetSubject())
}

func TestJWTValidateRejections(t *testing.T) {
	service := testJWTService()

	t.Run("empty token", func(t *testing.T) {
		_, err := service.ValidateToken("")
		require.Error(t, err)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := service.ValidateToken("not.a.token")
		require.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(&config.JWTConfig{Secret: "different-secret", ExpirationHours: 1})
		token, err := other.GenerateToken("operator")
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "operator",
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(past),
			NotBefore: jwt.NewNumericDate(past),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims.RegisteredClaims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("wrong signing method", func(t *testing.T) {
		// alg=none tokens must never validate.
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "operator"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		require.Error(t, err)
	})
}

func TestAsTokenValidator(t *testing.T) {
	service := testJWTService()
	validator := service.AsTokenValidator()

	token, err := service.GenerateToken("operator")
	require.NoError(t, err)

	subject, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "operator", subject.GetSubject())

	_, err = validator.ValidateToken("garbage")
	require.Error(t, err)
}
