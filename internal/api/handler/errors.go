package handler

import (
	"net/http"

	"github.com/mcoot/battleship-go/internal/api/apierr"
)

// errInvalidBody is returned when a request body is not valid JSON
var errInvalidBody = apierr.NewInvalidRequestError("invalid request body")

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}
