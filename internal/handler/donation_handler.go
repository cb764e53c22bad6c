package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"foodshare/internal/blob"
	apperrors "foodshare/internal/errors"
	"foodshare/internal/model"
	"foodshare/internal/service"
)

// expiryLayouts are accepted for expiry_time, tried in order.
var expiryLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// DonationHandler handles donation lifecycle endpoints.
type DonationHandler struct {
	donationService service.DonationService
	maxUploadBytes  int64
}

// NewDonationHandler creates a new donation handler. Images larger than
// maxUploadBytes are rejected; zero disables the check.
func NewDonationHandler(donationService service.DonationService, maxUploadBytes int64) *DonationHandler {
	return &DonationHandler{donationService: donationService, maxUploadBytes: maxUploadBytes}
}

// CreateDonationRequest represents the multipart form for posting a donation.
// An optional image is sent as the "image" file part.
type CreateDonationRequest struct {
	Title          string `form:"title" json:"title" validate:"required"`
	Category       string `form:"category" json:"category"`
	Quantity       string `form:"quantity" json:"quantity" validate:"required"`
	QuantityUnit   string `form:"quantity_unit" json:"quantity_unit"`
	ExpiryTime     string `form:"expiry_time" json:"expiry_time" validate:"required"`
	PickupLocation string `form:"pickup_location" json:"pickup_location" validate:"required"`
}

// CreateDonationResponse is returned after a donation is posted.
type CreateDonationResponse struct {
	Message  string          `json:"message"`
	Donation *model.Donation `json:"donation"`
}

// DonationActionRequest identifies the donation a lifecycle action applies to.
type DonationActionRequest struct {
	DonationID string `json:"donation_id" form:"donation_id" validate:"required,uuid"`
}

// CreateDonation godoc
// @Summary Post a donation
// @Tags donations
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param category formData string false "Category"
// @Param quantity formData string true "Quantity"
// @Param quantity_unit formData string false "Quantity unit"
// @Param expiry_time formData string true "Expiry time (RFC3339)"
// @Param pickup_location formData string true "Pickup location"
// @Param image formData file false "Image"
// @Success 201 {object} CreateDonationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /donations [post]
func (h *DonationHandler) CreateDonation(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req CreateDonationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	quantity, err := decimal.NewFromString(strings.TrimSpace(req.Quantity))
	if err != nil {
		return respondError(apperrors.ErrInvalidInput)
	}
	expiry, err := parseExpiry(req.ExpiryTime)
	if err != nil {
		return respondError(apperrors.ErrInvalidInput)
	}

	in := service.CreateDonationInput{
		Title:          req.Title,
		Category:       req.Category,
		Quantity:       quantity,
		QuantityUnit:   req.QuantityUnit,
		ExpiryTime:     expiry,
		PickupLocation: req.PickupLocation,
	}

	file, err := c.FormFile("image")
	switch {
	case err == nil:
		if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
			return respondError(apperrors.ErrUploadTooLarge)
		}
		src, err := file.Open()
		if err != nil {
			return respondError(apperrors.ErrInvalidInput)
		}
		defer src.Close()
		in.Image = &blob.Upload{
			Filename:    file.Filename,
			ContentType: file.Header.Get(echo.HeaderContentType),
			Body:        src,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return respondError(apperrors.ErrInvalidInput)
	}

	donation, err := h.donationService.Create(c.Request().Context(), caller, in)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, CreateDonationResponse{
		Message:  "donation posted successfully",
		Donation: donation,
	})
}

// ListClaimable godoc
// @Summary List pending donations, newest first
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ClaimableDonation
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /donations [get]
func (h *DonationHandler) ListClaimable(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	donations, err := h.donationService.ListClaimable(c.Request().Context(), caller)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, donations)
}

// ListPosted godoc
// @Summary List the caller restaurant's donations
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Donation
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /donations/mine [get]
func (h *DonationHandler) ListPosted(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	donations, err := h.donationService.ListPosted(c.Request().Context(), caller)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, donations)
}

// ListClaimed godoc
// @Summary List donations claimed by the caller NGO
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Donation
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /donations/claimed [get]
func (h *DonationHandler) ListClaimed(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	donations, err := h.donationService.ListClaimed(c.Request().Context(), caller)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, donations)
}

// GetDonation godoc
// @Summary Get a donation
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Success 200 {object} model.Donation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /donations/{id} [get]
func (h *DonationHandler) GetDonation(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(apperrors.ErrInvalidInput)
	}
	donation, err := h.donationService.Get(c.Request().Context(), caller, id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, donation)
}

// Accept godoc
// @Summary Claim a pending donation
// @Description Exactly one concurrent claimant wins; the others receive 409.
// @Tags donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DonationActionRequest true "Donation"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /donations/accept [post]
func (h *DonationHandler) Accept(c echo.Context) error {
	return h.act(c, h.donationService.Claim, "donation accepted")
}

// MarkInTransit godoc
// @Summary Mark a claimed donation as in transit
// @Tags donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DonationActionRequest true "Donation"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /donations/in_transit [post]
func (h *DonationHandler) MarkInTransit(c echo.Context) error {
	return h.act(c, h.donationService.MarkInTransit, "donation marked in transit")
}

// CompletePickup godoc
// @Summary Complete the pickup of a claimed donation
// @Tags donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DonationActionRequest true "Donation"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /donations/complete_pickup [post]
func (h *DonationHandler) CompletePickup(c echo.Context) error {
	return h.act(c, h.donationService.CompletePickup, "pickup completed")
}

func (h *DonationHandler) act(
	c echo.Context,
	action func(ctx context.Context, caller model.Caller, id uuid.UUID) error,
	message string,
) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req DonationActionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	id, err := uuid.Parse(req.DonationID)
	if err != nil {
		return respondError(apperrors.ErrInvalidInput)
	}
	if err := action(c.Request().Context(), caller, id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}

func parseExpiry(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range expiryLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
