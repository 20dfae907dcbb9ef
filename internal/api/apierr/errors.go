package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/protocol"
	"github.com/mcoot/battleship-go/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes. Match errors share their codes with realtime error notifications.
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeMatchNotFound      = "MATCH_NOT_FOUND"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidPlayer      = "INVALID_PLAYER_DETAILS"
	CodeUnknownBotStrategy = "UNKNOWN_BOT_STRATEGY"
	CodeTooManyBots        = "TOO_MANY_BOTS"
	CodeOutOfBounds        = protocol.CodeOutOfBounds
	CodeOverlap            = protocol.CodeOverlap
	CodeAlreadyPlaced      = protocol.CodeAlreadyPlaced
	CodeInvalidOrientation = protocol.CodeInvalidOrientation
	CodeUnknownShipKind    = protocol.CodeUnknownShipKind
	CodeNoSuchMatch        = protocol.CodeNoSuchMatch
	CodeWrongPhase         = protocol.CodeWrongPhase
	CodeNotYourTurn        = protocol.CodeNotYourTurn
	CodeInvalidTarget      = protocol.CodeInvalidTarget
	CodeInternalError      = protocol.CodeInternal
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// StatusFor returns the HTTP status an error is reported with
func StatusFor(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrMatchRecordNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrNoSuchMatch):
		return &httpError{http.StatusNotFound, APIError{CodeNoSuchMatch, "Not in a match"}}
	case errors.Is(err, model.ErrWrongPhase):
		return &httpError{http.StatusConflict, APIError{CodeWrongPhase, "Not allowed in the current match phase"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrOutOfBounds):
		return &httpError{http.StatusBadRequest, APIError{CodeOutOfBounds, "Ship would extend past the board edge"}}
	case errors.Is(err, model.ErrOverlap):
		return &httpError{http.StatusConflict, APIError{CodeOverlap, "Ship would overlap another ship"}}
	case errors.Is(err, model.ErrAlreadyPlaced):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyPlaced, "Ship has already been placed"}}
	case errors.Is(err, model.ErrInvalidOrientation):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidOrientation, "Orientation must be H or V"}}
	case errors.Is(err, model.ErrUnknownShipKind):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownShipKind, "Unknown ship kind"}}
	case errors.Is(err, model.ErrInvalidTarget):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTarget, "Target is off the board or already attacked"}}
	case errors.Is(err, model.ErrUnknownBotStrategy):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownBotStrategy, err.Error()}}
	case errors.Is(err, model.ErrTooManyBots):
		return &httpError{http.StatusTooManyRequests, APIError{CodeTooManyBots, "Too many bots are already active"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}
	case errors.Is(err, auth.ErrInvalidDisplayName),
		errors.Is(err, auth.ErrInvalidUsername),
		errors.Is(err, auth.ErrPasswordTooShort):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayer, err.Error()}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
