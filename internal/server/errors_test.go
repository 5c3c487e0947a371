package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"not found", &ErrNotFound{Resource: "run", ID: "x"}, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "password", Message: "too short"}, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "invalid operator password", (&ErrInvalidCredentials{}).Error())
	assert.Equal(t, "run not found: 42", (&ErrNotFound{Resource: "run", ID: "42"}).Error())
	assert.Equal(t, "validation error: password - too short",
		(&ErrValidation{Field: "password", Message: "too short"}).Error())
}
