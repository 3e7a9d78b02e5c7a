package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing
	"github.com/redis/go-redis/v9"

	"github.com/valencalicchia/DI05-GestorHotelesV2/internal/config"
	"github.com/valencalicchia/DI05-GestorHotelesV2/internal/handler"
	"github.com/valencalicchia/DI05-GestorHotelesV2/internal/middleware"
)

// RegisterRoutes registers routes that carry no handler state on the
// provided Echo instance.  Currently that is only the health check, which
// load balancers and monitors use to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterCatalog registers the reference-data read endpoints.  The form
// layer fills its room list and combo boxes from these; there is nothing to
// rate limit because every handler is a single small read.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler) {
	// Room list for the main view
	e.GET("/v1/rooms", h.GetRooms)
	// Single room lookup
	e.GET("/v1/rooms/:id", h.GetRoom)
	// Kitchen type combo box
	e.GET("/v1/kitchen-types", h.GetKitchenTypes)
	// Reservation type combo box (carries the conference flag)
	e.GET("/v1/reservation-types", h.GetReservationTypes)
}

// RegisterReservations registers the reservation read and write endpoints.
// The two mutating routes go through the Redis token bucket; rdb may be nil,
// in which case the limiter is a pass-through.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	// Reservation table of the main view, ordered by date
	e.GET("/v1/rooms/:id/reservations", h.GetByRoom)
	// Form prefill when editing
	e.GET("/v1/reservations/:id", h.GetByID)

	limit := middleware.NewTokenBucket(rlCfg, rdb)
	// Create a reservation for a room
	e.POST("/v1/rooms/:id/reservations", h.Create, limit)
	// Edit an existing reservation in place
	e.PUT("/v1/reservations/:id", h.Update, limit)
}
