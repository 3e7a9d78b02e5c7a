package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/valencalicchia/DI05-GestorHotelesV2/internal/booking"
	"github.com/valencalicchia/DI05-GestorHotelesV2/internal/queue"
	"github.com/valencalicchia/DI05-GestorHotelesV2/internal/repository"
	queue_publisher "github.com/valencalicchia/DI05-GestorHotelesV2/internal/service"
)

// dateLayout is the wire format for reservation dates.  Reservations book
// whole days, so no time component is ever sent or stored.
const dateLayout = "2006-01-02"

// unknownTypeName is shown when a reservation references a type id that no
// longer resolves.  Reference data is static, so this only appears when the
// tables were edited by hand.
const unknownTypeName = "Desconocido"

// ReservationHandler serves the reservation table of the main view and the
// create/edit submissions of the form view.
type ReservationHandler struct {
	ReservationRepo     *repository.ReservationRepo     // reservation rows
	ReservationTypeRepo *repository.ReservationTypeRepo // id -> name mapping for the table
	RoomRepo            *repository.RoomRepo            // room existence checks and event payloads
	Booking             *booking.Service                // the validation & mutation core
	AMQPURL             string                          // broker URL for reservation.saved events; empty disables
}

// NewReservationHandler constructs a ReservationHandler.  All repository
// dependencies and the booking service must be non-nil.
func NewReservationHandler(reservations *repository.ReservationRepo, types *repository.ReservationTypeRepo, rooms *repository.RoomRepo, svc *booking.Service, amqpURL string) *ReservationHandler {
	if reservations == nil || types == nil || rooms == nil || svc == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{
		ReservationRepo:     reservations,
		ReservationTypeRepo: types,
		RoomRepo:            rooms,
		Booking:             svc,
		AMQPURL:             amqpURL,
	}
}

// ReservationItem is the wire form of one reservation.  ReservationType is
// the resolved display name so the table can render without a second
// round trip.
type ReservationItem struct {
	ID                uint64 `json:"id"`
	RoomID            uint64 `json:"room_id"`
	ReservationTypeID uint64 `json:"reservation_type_id"`
	ReservationType   string `json:"reservation_type"`
	KitchenTypeID     uint64 `json:"kitchen_type_id"`
	Person            string `json:"person"`
	Phone             string `json:"phone"`
	Date              string `json:"date"`
	Headcount         uint32 `json:"headcount"`
	DayCount          uint32 `json:"day_count"`
	RoomCount         uint32 `json:"room_count"`
}

func toItem(res *repository.Reservation, typeNames map[uint64]string) ReservationItem {
	name, ok := typeNames[res.ReservationTypeID]
	if !ok {
		name = unknownTypeName
	}
	return ReservationItem{
		ID:                res.ID,
		RoomID:            res.RoomID,
		ReservationTypeID: res.ReservationTypeID,
		ReservationType:   name,
		KitchenTypeID:     res.KitchenTypeID,
		Person:            res.Person,
		Phone:             res.Phone,
		Date:              res.ReservedOn.Format(dateLayout),
		Headcount:         res.Headcount,
		DayCount:          res.DayCount,
		RoomCount:         res.RoomCount,
	}
}

// typeNameMap loads all reservation types once and indexes them by id, the
// same dictionary the main view builds to label its table rows.
func (h *ReservationHandler) typeNameMap(c echo.Context) (map[uint64]string, error) {
	types, err := h.ReservationTypeRepo.ListAll(c.Request().Context())
	if err != nil {
		return nil, err
	}
	names := make(map[uint64]string, len(types))
	for _, t := range types {
		names[t.ID] = t.Name
	}
	return names, nil
}

// GetByRoom handles GET /v1/rooms/:id/reservations.  It returns the room's
// reservations ordered by date ascending with the reservation type resolved
// to its display name.  A room with no reservations returns an empty list.
func (h *ReservationHandler) GetByRoom(c echo.Context) error {
	ctx := c.Request().Context()
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	// ensure room exists
	if _, err := h.RoomRepo.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	reservations, err := h.ReservationRepo.ListByRoom(ctx, roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	names, err := h.typeNameMap(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]ReservationItem, 0, len(reservations))
	for _, res := range reservations {
		out = append(out, toItem(res, names))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetByID handles GET /v1/reservations/:id, the lookup the form view uses
// to prefill itself when editing.
func (h *ReservationHandler) GetByID(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	res, err := h.ReservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	names, err := h.typeNameMap(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toItem(res, names))
}

// reservationForm is the request body for create and edit submissions.
type reservationForm struct {
	ReservationTypeID uint64 `json:"reservation_type_id"`
	KitchenTypeID     uint64 `json:"kitchen_type_id"`
	Person            string `json:"person"`
	Phone             string `json:"phone"`
	Date              string `json:"date"` // YYYY-MM-DD
	Headcount         uint32 `json:"headcount"`
	DayCount          uint32 `json:"day_count"`
	RoomCount         uint32 `json:"room_count"`
}

func (f *reservationForm) toInput(id, roomID uint64) (booking.Input, error) {
	date, err := time.Parse(dateLayout, f.Date)
	if err != nil {
		return booking.Input{}, err
	}
	return booking.Input{
		ID:                id,
		RoomID:            roomID,
		ReservationTypeID: f.ReservationTypeID,
		KitchenTypeID:     f.KitchenTypeID,
		Person:            f.Person,
		Phone:             f.Phone,
		Date:              date,
		Headcount:         f.Headcount,
		DayCount:          f.DayCount,
		RoomCount:         f.RoomCount,
	}, nil
}

// Create handles POST /v1/rooms/:id/reservations.  It submits the form in
// create mode and returns the stored reservation with its assigned id.
func (h *ReservationHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	if _, err := h.RoomRepo.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var form reservationForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	in, err := form.toInput(0, roomID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	res, err := h.Booking.Submit(ctx, in, booking.ModeCreate)
	if err != nil {
		return h.submitError(c, err)
	}
	h.publishSaved(c, res, true)
	names, err := h.typeNameMap(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, toItem(res, names))
}

// Update handles PUT /v1/reservations/:id.  The selected room comes in the
// body because the main view, not the form, owns the room selection.
func (h *ReservationHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var form struct {
		reservationForm
		RoomID uint64 `json:"room_id"`
	}
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if form.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}
	in, err := form.toInput(id, form.RoomID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	res, err := h.Booking.Submit(ctx, in, booking.ModeEdit)
	if err != nil {
		return h.submitError(c, err)
	}
	h.publishSaved(c, res, false)
	names, err := h.typeNameMap(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toItem(res, names))
}

// submitError maps booking core errors onto HTTP statuses.  Validation
// failures are recoverable and come back as 422 with the reason; a missing
// reservation on edit is 404; anything else is a storage failure.
func (h *ReservationHandler) submitError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrMissingFields):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "missing required fields"})
	case errors.Is(err, booking.ErrDateUnavailable):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "date unavailable"})
	case errors.Is(err, repository.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// publishSaved emits a reservation.saved event.  Best effort: the
// reservation is already committed, so a broker failure only costs the
// notification, never the booking.
func (h *ReservationHandler) publishSaved(c echo.Context, res *repository.Reservation, created bool) {
	if h.AMQPURL == "" {
		return
	}
	ctx := c.Request().Context()
	event := queue.ReservationSavedEvent{
		ReservationID:     res.ID,
		RoomID:            res.RoomID,
		ReservationTypeID: res.ReservationTypeID,
		Person:            res.Person,
		Phone:             res.Phone,
		ReservedOn:        res.ReservedOn.Format(dateLayout),
		Headcount:         res.Headcount,
		Created:           created,
		SavedAt:           time.Now().UTC().Format(time.RFC3339),
	}
	if room, err := h.RoomRepo.GetByID(ctx, res.RoomID); err == nil {
		event.RoomName = room.Name
	}
	if rt, err := h.ReservationTypeRepo.GetByID(ctx, res.ReservationTypeID); err == nil {
		event.ReservationTypeName = rt.Name
	}
	_ = queue_publisher.PublishReservationSaved(ctx, h.AMQPURL, event)
}
