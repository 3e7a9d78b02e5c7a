// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationSavedEvent is published after a reservation is created or
// updated.  It carries enough for downstream consumers (notifications,
// reporting) to act without querying the primary database.
type ReservationSavedEvent struct {
	ReservationID       uint64 `json:"reservation_id"`
	RoomID              uint64 `json:"room_id"`
	RoomName            string `json:"room_name"`
	ReservationTypeID   uint64 `json:"reservation_type_id"`
	ReservationTypeName string `json:"reservation_type_name"`
	Person              string `json:"person"`
	Phone               string `json:"phone"`
	ReservedOn          string `json:"reserved_on"` // YYYY-MM-DD
	Headcount           uint32 `json:"headcount"`
	Created             bool   `json:"created"` // false for edits
	SavedAt             string `json:"saved_at"`
}
