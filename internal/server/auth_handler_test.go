package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mansoor/social-support-agent/internal/config"
)

func testAuthHandler(t *testing.T, password string) *AuthHandler {
	t.Helper()
	passwordConfig := &config.PasswordConfig{BcryptCost: 10}
	hash, err := passwordConfig.HashPassword(password)
	require.NoError(t, err)
	t.Setenv("OPERATOR_PASSWORD_HASH", hash)
	return NewAuthHandler(passwordConfig, testJWTService())
}

func issueToken(h *AuthHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.IssueToken(rec, req)
	return rec
}

func TestIssueTokenSuccess(t *testing.T) {
	h := testAuthHandler(t, "operator-password")

	rec := issueToken(h, `{"password": "operator-password"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 1, resp.ExpiresIn)

	// The issued token round-trips through validation.
	claims, err := h.jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, operatorSubject, claims.GetSubject())
}

func TestIssueTokenWrongPassword(t *testing.T) {
	h := testAuthHandler(t, "operator-password")

	rec := issueToken(h, `{"password": "wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIssueTokenValidation(t *testing.T) {
	h := testAuthHandler(t, "operator-password")

	t.Run("malformed body", func(t *testing.T) {
		rec := issueToken(h, "{bad")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		rec := issueToken(h, `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("short password", func(t *testing.T) {
		rec := issueToken(h, `{"password": "short"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestIssueTokenUnconfigured(t *testing.T) {
	t.Setenv("OPERATOR_PASSWORD_HASH", "")
	h := NewAuthHandler(&config.PasswordConfig{BcryptCost: 10}, testJWTService())

	rec := issueToken(h, `{"password": "operator-password"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
