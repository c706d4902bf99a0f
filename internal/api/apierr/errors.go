package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/snakescore/internal/model"
)

// ErrorResponse is the failure envelope shared by all endpoints.
// Code is only set for endpoints whose contract includes a machine-readable
// error field (score submission); the rest report a message alone.
type ErrorResponse struct {
	Ok      bool   `json:"ok"`
	Code    string `json:"error,omitempty"`
	Message string `json:"message"`
}

// Error codes used by the score submission endpoint
const (
	CodeInvalidJSON         = "invalid_json"
	CodeUsernameRequired    = "username_required"
	CodeInvalidScore        = "invalid_score"
	CodeScoreMustBePositive = "score_must_be_positive"
	CodeMethodNotAllowed    = "method_not_allowed"
	CodeInternalError       = "internal_error"
)

// httpError combines an HTTP status code with a failure envelope
type httpError struct {
	status  int
	code    string
	message string
}

// Error implements the error interface
func (e *httpError) Error() string {
	return e.message
}

// New creates an error carrying an explicit status, code and message
func New(status int, code, message string) error {
	return &httpError{status, code, message}
}

// NewInvalidRequest creates a 400 error with the given code and message
func NewInvalidRequest(code, message string) error {
	return &httpError{http.StatusBadRequest, code, message}
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Ok: false, Code: he.code, Message: he.message})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors. Bad credentials and unknown usernames share one
	// mapping on purpose; the login response must not reveal which part
	// was wrong.
	switch {
	case errors.Is(err, model.ErrInvalidScore):
		return &httpError{http.StatusBadRequest, CodeScoreMustBePositive, "score must be a positive integer"}
	case errors.Is(err, model.ErrInvalidUsername):
		return &httpError{http.StatusBadRequest, "", "username is required and must be at most 32 characters"}
	case errors.Is(err, model.ErrInvalidPassword):
		return &httpError{http.StatusBadRequest, "", "password is required"}
	case errors.Is(err, model.ErrUsernameTaken):
		return &httpError{http.StatusBadRequest, "", "this username is already taken"}
	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusBadRequest, "", "username or password is incorrect"}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, "", "player not found"}
	default:
		return &httpError{http.StatusInternalServerError, CodeInternalError, "storage operation failed"}
	}
}
