// Package handler exposes the HTTP surface of the reservation manager.
// This file serves the reference data the form layer fills its room list
// and combo boxes from: rooms, kitchen types and reservation types.  All
// three are read only from this application's point of view.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/valencalicchia/DI05-GestorHotelesV2/internal/repository"
)

// CatalogHandler aggregates the reference-data repositories.
type CatalogHandler struct {
	RoomRepo            *repository.RoomRepo            // access to rooms
	KitchenTypeRepo     *repository.KitchenTypeRepo     // access to kitchen types
	ReservationTypeRepo *repository.ReservationTypeRepo // access to reservation types
}

// NewCatalogHandler constructs a CatalogHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewCatalogHandler(rooms *repository.RoomRepo, kitchens *repository.KitchenTypeRepo, types *repository.ReservationTypeRepo) *CatalogHandler {
	if rooms == nil || kitchens == nil || types == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{RoomRepo: rooms, KitchenTypeRepo: kitchens, ReservationTypeRepo: types}
}

// NamedItem is the wire form of any id+name reference record.
type NamedItem struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// GetRooms returns every room.  An empty "items" array means no rooms are
// configured, which the caller treats as fatal to startup.
func (h *CatalogHandler) GetRooms(c echo.Context) error {
	ctx := c.Request().Context()
	rooms, err := h.RoomRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]NamedItem, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, NamedItem{ID: r.ID, Name: r.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetRoom returns a single room by id, 404 when it does not exist.
func (h *CatalogHandler) GetRoom(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	room, err := h.RoomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, NamedItem{ID: room.ID, Name: room.Name})
}

// GetKitchenTypes returns every kitchen type.
func (h *CatalogHandler) GetKitchenTypes(c echo.Context) error {
	ctx := c.Request().Context()
	kitchens, err := h.KitchenTypeRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]NamedItem, 0, len(kitchens))
	for _, k := range kitchens {
		out = append(out, NamedItem{ID: k.ID, Name: k.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetReservationTypes returns every reservation type.  The conference flag
// tells the form layer which types need the day-count and room-count fields.
func (h *CatalogHandler) GetReservationTypes(c echo.Context) error {
	ctx := c.Request().Context()
	types, err := h.ReservationTypeRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type typeItem struct {
		ID         uint64 `json:"id"`
		Name       string `json:"name"`
		Conference bool   `json:"conference"`
	}
	out := make([]typeItem, 0, len(types))
	for _, t := range types {
		out = append(out, typeItem{ID: t.ID, Name: t.Name, Conference: t.IsConference()})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
