package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/mansoor/social-support-agent/internal/config"
)

// TokenRequest is the body of POST /auth/token.
type TokenRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// TokenResponse carries an issued operator token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in_hours"`
}

// operatorSubject is the JWT subject for the single-operator deployment model.
const operatorSubject = "operator"

// AuthHandler exchanges the operator password for a JWT. The expected bcrypt
// hash comes from OPERATOR_PASSWORD_HASH; without it, token issuance is
// disabled.
type AuthHandler struct {
	passwordConfig *config.PasswordConfig
	jwtService     *JWTService
	validate       *validator.Validate
	storedHash     string
}

// NewAuthHandler creates an AuthHandler from the environment.
func NewAuthHandler(passwordConfig *config.PasswordConfig, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		passwordConfig: passwordConfig,
		jwtService:     jwtService,
		validate:       validator.New(),
		storedHash:     os.Getenv("OPERATOR_PASSWORD_HASH"),
	}
}

// IssueToken handles POST /auth/token.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	if h.storedHash == "" {
		writeError(w, fmt.Errorf("token issuance is not configured"))
		return
	}

	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, &ErrValidation{Field: "password", Message: "password is required (min 8 chars)"})
		return
	}

	if !h.passwordConfig.VerifyPassword(req.Password, h.storedHash) {
		writeError(w, &ErrInvalidCredentials{})
		return
	}

	token, err := h.jwtService.GenerateToken(operatorSubject)
	if err != nil {
		writeError(w, fmt.Errorf("failed to issue token: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		Token:     token,
		ExpiresIn: h.jwtService.config.ExpirationHours,
	})
}
