package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodshare/internal/model"
	"foodshare/internal/service"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// UpdateProfileRequest represents a profile update. Omitted optional fields are cleared.
type UpdateProfileRequest struct {
	Name          string  `json:"name" form:"name" validate:"required"`
	ContactNumber *string `json:"contact_number" form:"contact_number"`
	Address       *string `json:"address" form:"address"`
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.FlatProfile
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	profile, err := h.profileService.GetProfile(c.Request().Context(), caller)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/profile [post]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err = h.profileService.UpdateProfile(c.Request().Context(), caller, model.ProfileUpdate{
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "profile updated successfully"})
}
