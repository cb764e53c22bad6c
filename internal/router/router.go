package router

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"foodshare/internal/auth"
	"foodshare/internal/config"
	"foodshare/internal/handler"
	"foodshare/internal/model"
)

// formOverheadBytes is the room left for text fields and multipart framing
// on top of the image size limit.
const formOverheadBytes = 64 << 10

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth     *handler.AuthHandler
	Donation *handler.DonationHandler
	Profile  *handler.ProfileHandler
	Stats    *handler.StatsHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger *slog.Logger,
	jwtService *auth.JWTService,
	tokens auth.TokenStoreInterface,
	gatherer prometheus.Gatherer,
	h Handlers,
) {
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if cfg.BlobBackend == config.BlobBackendLocal {
		e.Static("/uploads", cfg.UploadDir)
	}

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	// Secured routes
	secured := api.Group("", auth.Middleware(jwtService, tokens))
	anyRole := auth.RequireRole(model.RoleRestaurant, model.RoleNGO)
	restaurantOnly := auth.RequireRole(model.RoleRestaurant)
	ngoOnly := auth.RequireRole(model.RoleNGO)

	secured.POST("/auth/logout", h.Auth.Logout)

	// Donation routes
	donations := secured.Group("/donations")
	createLimits := []echo.MiddlewareFunc{restaurantOnly}
	if cfg.MaxUploadBytes > 0 {
		createLimits = append(createLimits, middleware.BodyLimit(fmt.Sprintf("%dB", cfg.MaxUploadBytes+formOverheadBytes)))
	}
	donations.POST("", h.Donation.CreateDonation, createLimits...)
	donations.POST("/post", h.Donation.CreateDonation, createLimits...)
	donations.GET("", h.Donation.ListClaimable, ngoOnly)
	donations.GET("/get_all", h.Donation.ListClaimable, ngoOnly)
	donations.GET("/mine", h.Donation.ListPosted, restaurantOnly)
	donations.GET("/claimed", h.Donation.ListClaimed, ngoOnly)
	donations.GET("/:id", h.Donation.GetDonation, anyRole)
	donations.POST("/accept", h.Donation.Accept, ngoOnly)
	donations.POST("/in_transit", h.Donation.MarkInTransit, ngoOnly)
	donations.POST("/complete_pickup", h.Donation.CompletePickup, ngoOnly)

	// Profile routes
	users := secured.Group("/users", anyRole)
	users.GET("/profile", h.Profile.GetProfile)
	users.GET("/get_profile", h.Profile.GetProfile)
	users.POST("/profile", h.Profile.UpdateProfile)
	users.POST("/update_profile", h.Profile.UpdateProfile)

	// Stats routes
	secured.GET("/stats/dashboard", h.Stats.Dashboard, anyRole)
}

// requestLogger logs one structured line per request.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
				if v.Error != nil {
					attrs = append(attrs, slog.String("error", v.Error.Error()))
				}
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
