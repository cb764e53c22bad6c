package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodshare/internal/service"
)

// StatsHandler serves dashboard counters.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Dashboard godoc
// @Summary Role-specific dashboard counters
// @Description Restaurants receive model.RestaurantStats, NGOs receive model.NGOStats.
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.RestaurantStats
// @Success 200 {object} model.NGOStats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stats/dashboard [get]
func (h *StatsHandler) Dashboard(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	stats, err := h.statsService.Dashboard(c.Request().Context(), caller)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
