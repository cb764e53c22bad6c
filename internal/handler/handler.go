package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"foodshare/internal/auth"
	apperrors "foodshare/internal/errors"
	"foodshare/internal/model"
)

// MessageResponse is returned by endpoints that change state without
// returning a resource.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondError converts a service error into an echo HTTP error.
func respondError(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// validationError reports a failed required rule as missing fields and any
// other rule as invalid input.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return respondError(apperrors.ErrMissingFields)
			}
		}
	}
	return respondError(apperrors.ErrInvalidInput)
}

// bindAndValidate binds the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return respondError(apperrors.ErrInvalidInput)
	}
	if err := c.Validate(req); err != nil {
		return validationError(err)
	}
	return nil
}

func callerFrom(c echo.Context) (model.Caller, error) {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return model.Caller{}, respondError(apperrors.ErrInvalidToken)
	}
	return model.Caller{AccountID: claims.AccountID, Role: claims.Role}, nil
}
