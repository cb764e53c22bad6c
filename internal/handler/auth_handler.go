package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodshare/internal/auth"
	apperrors "foodshare/internal/errors"
	"foodshare/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a registration request. License applies to
// restaurants; RegistrationNo and VolunteersCount apply to NGOs.
type RegisterRequest struct {
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required"`
	Role            string  `json:"role" validate:"required"`
	Name            string  `json:"name" validate:"required"`
	Contact         *string `json:"contact"`
	Address         *string `json:"address"`
	License         *string `json:"license"`
	RegistrationNo  *string `json:"registrationNo"`
	VolunteersCount *int    `json:"volunteersCount" validate:"omitempty,gte=0"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Message   string `json:"message"`
	AccountID string `json:"accountId"`
	Status    string `json:"status"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token for an approved account.
type LoginResponse struct {
	Message   string `json:"message"`
	AccountID string `json:"accountId"`
	Role      string `json:"role"`
	Token     string `json:"token"`
}

// Register godoc
// @Summary Register a restaurant or NGO account
// @Description Creates the account and its role profile atomically. New accounts await approval.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		Role:            req.Role,
		Name:            req.Name,
		Contact:         req.Contact,
		Address:         req.Address,
		License:         req.License,
		RegistrationNo:  req.RegistrationNo,
		VolunteersCount: req.VolunteersCount,
	})
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		Message:   "registration successful, awaiting approval",
		AccountID: account.ID.String(),
		Status:    string(account.Status),
	})
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Message:   "login successful",
		AccountID: result.AccountID.String(),
		Role:      result.Role.String(),
		Token:     result.Token,
	})
}

// Logout godoc
// @Summary Revoke the presented access token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return respondError(apperrors.ErrInvalidToken)
	}
	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "logged out successfully"})
}
