package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roomreserve/internal/models"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus()

	var created []Event
	bus.Subscribe(TypeReservationCreated, func(e Event) {
		created = append(created, e)
	})

	var cancelled int
	bus.Subscribe(TypeReservationCancelled, func(e Event) {
		cancelled++
	})

	bus.Publish(Event{
		Type:        TypeReservationCreated,
		Reservation: ReservationEvent{ReservationID: "res-1", RoomID: "room-1"},
	})
	bus.Publish(Event{
		Type:        TypeReservationCreated,
		Reservation: ReservationEvent{ReservationID: "res-2", RoomID: "room-2"},
	})

	assert.Len(t, created, 2)
	assert.Equal(t, "res-1", created[0].Reservation.ReservationID)
	assert.Equal(t, "res-2", created[1].Reservation.ReservationID)
	assert.Equal(t, 0, cancelled, "cancellation handler must not see create events")
	assert.False(t, created[0].OccurredAt.IsZero(), "publish stamps OccurredAt")
}

func TestBus_MultipleHandlers(t *testing.T) {
	bus := NewBus()

	calls := 0
	bus.Subscribe(TypeReservationCancelled, func(Event) { calls++ })
	bus.Subscribe(TypeReservationCancelled, func(Event) { calls++ })

	bus.Publish(Event{Type: TypeReservationCancelled})
	assert.Equal(t, 2, calls)
}

func TestBus_NoSubscribers(t *testing.T) {
	bus := NewBus()
	// Publishing with no subscribers must not panic.
	bus.Publish(Event{Type: TypeReservationCreated})
}

func TestFromReservation(t *testing.T) {
	res := models.Reservation{
		ID:         "res-9",
		RoomID:     "room-1",
		TimeSlotID: "slot-9",
		UserID:     "user-1",
		Date:       "2025-06-01",
		Purpose:    "Standup",
		Attendees:  3,
	}
	room := models.Room{ID: "room-1", Name: "Conference Room A"}
	slot := models.TimeSlot{ID: "slot-9", StartTime: "09:00", EndTime: "10:00"}

	e := FromReservation(res, room, slot)
	assert.Equal(t, "res-9", e.ReservationID)
	assert.Equal(t, "Conference Room A", e.RoomName)
	assert.Equal(t, "09:00", e.SlotStart)
	assert.Equal(t, "10:00", e.SlotEnd)
	assert.Equal(t, "Standup", e.Purpose)
	assert.Equal(t, 3, e.Attendees)
}
