package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrMissingFields is returned when required input is absent.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidRole is returned when a role is not restaurant or ngo.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidInput is returned when input is present but malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials is returned for an unknown email or a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned when a bearer credential is missing, expired or revoked.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrAccountPending is returned when an unapproved account tries to log in.
	ErrAccountPending = errors.New("account is pending admin approval")
	// ErrRoleForbidden is returned when the caller's role may not perform an operation.
	ErrRoleForbidden = errors.New("access denied for this role")
	// ErrNoProfile is returned when an authenticated caller has no role profile to act with.
	ErrNoProfile = errors.New("profile not found for this account")

	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrDonationUnavailable is returned when a claim loses the race or the donation is gone.
	ErrDonationUnavailable = errors.New("donation is no longer available or was already accepted")
	// ErrInvalidTransition is returned when a guarded status update matched no row.
	ErrInvalidTransition = errors.New("donation is not in a state that allows this update")

	// ErrProfileNotFound is returned when a profile lookup finds nothing.
	ErrProfileNotFound = errors.New("profile data not found")
	// ErrDonationNotFound is returned when a donation lookup finds nothing.
	ErrDonationNotFound = errors.New("donation not found")

	// ErrUploadTooLarge is returned when an image exceeds the configured size limit.
	ErrUploadTooLarge = errors.New("image exceeds the upload size limit")
	// ErrUploadFailed is returned when the blob store rejects an image.
	ErrUploadFailed = errors.New("image upload failed")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

var mappings = []struct {
	err    error
	status int
	code   string
}{
	{ErrMissingFields, http.StatusBadRequest, "MISSING_FIELDS"},
	{ErrInvalidRole, http.StatusBadRequest, "INVALID_ROLE"},
	{ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
	{ErrAccountPending, http.StatusForbidden, "ACCOUNT_PENDING"},
	{ErrRoleForbidden, http.StatusForbidden, "ROLE_FORBIDDEN"},
	{ErrNoProfile, http.StatusForbidden, "PROFILE_REQUIRED"},
	{ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
	{ErrDonationUnavailable, http.StatusConflict, "DONATION_UNAVAILABLE"},
	{ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
	{ErrProfileNotFound, http.StatusNotFound, "PROFILE_NOT_FOUND"},
	{ErrDonationNotFound, http.StatusNotFound, "DONATION_NOT_FOUND"},
	{ErrUploadTooLarge, http.StatusRequestEntityTooLarge, "UPLOAD_TOO_LARGE"},
	{ErrUploadFailed, http.StatusInternalServerError, "UPLOAD_FAILED"},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped errors are matched
// with errors.Is; anything unknown becomes a 500 without leaking details.
func MapErrorToHTTP(err error) *HTTPError {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.err.Error(), m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
