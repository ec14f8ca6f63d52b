package handler

import (
	"net/http"

	"github.com/poiregame/poire-go/internal/api/apierr"
)

// Thin aliases so handlers don't import apierr everywhere

// WriteError writes an error response
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates a 400 error with a message
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}
