package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/unogame-go/internal/model"
	"github.com/mcoot/unogame-go/internal/services/identity"
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

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotHost            = "NOT_HOST"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeNoActiveSession    = "NO_ACTIVE_SESSION"
	CodeSessionExists      = "SESSION_EXISTS"
	CodeGameInProgress     = "GAME_IN_PROGRESS"
	CodeNotInLobby         = "NOT_IN_LOBBY"
	CodeSoloNotAllowed     = "SOLO_NOT_ALLOWED"
	CodeInvalidSetting     = "INVALID_SETTING"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
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
	case errors.Is(err, model.ErrNoActiveSession):
		return &httpError{http.StatusNotFound, APIError{CodeNoActiveSession, "No session for this channel"}}
	case errors.Is(err, model.ErrLobbyAlreadyExists):
		return &httpError{http.StatusConflict, APIError{CodeSessionExists, "A session already exists for this channel"}}
	case errors.Is(err, model.ErrGameInProgress):
		return &httpError{http.StatusConflict, APIError{CodeGameInProgress, "Game has already started"}}
	case errors.Is(err, model.ErrNotInLobby):
		return &httpError{http.StatusNotFound, APIError{CodeNotInLobby, "Not in this lobby"}}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can perform this action"}}
	case errors.Is(err, model.ErrSoloNotAllowed):
		return &httpError{http.StatusConflict, APIError{CodeSoloNotAllowed, "Cannot start a game alone"}}
	case errors.Is(err, model.ErrInvalidSetting):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSetting, err.Error()}}

	// Map identity errors
	case errors.Is(err, identity.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, identity.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, identity.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

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
