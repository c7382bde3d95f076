// Package events provides in-process pub/sub for reservation lifecycle
// notifications. Handlers run synchronously on the publishing goroutine.
package events

import (
	"sync"
	"time"

	"roomreserve/internal/models"
)

// Reservation event types.
const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationCancelled = "reservation.cancelled"
)

// ReservationEvent carries the data subscribers need without reaching back
// into the store. SlotStart/SlotEnd are the wall-clock bounds of the slot.
type ReservationEvent struct {
	ReservationID string
	RoomID        string
	RoomName      string
	TimeSlotID    string
	SlotStart     string
	SlotEnd       string
	UserID        string
	Date          string
	Purpose       string
	Attendees     int
}

// Event is a reservation lifecycle notification.
type Event struct {
	Type        string
	Reservation ReservationEvent
	OccurredAt  time.Time
}

// Handler reacts to an event. Errors are the handler's own concern; the bus
// never propagates them to the publisher.
type Handler func(event Event)

// Bus provides in-process pub/sub for reservation events.
type Bus struct {
	subscribers map[string][]Handler
	mu          sync.RWMutex
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]Handler)}
}

// Subscribe registers a handler for a given event type.
func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		handler(event)
	}
}

// FromReservation builds the event payload for a reservation and the room
// slot it references.
func FromReservation(res models.Reservation, room models.Room, slot models.TimeSlot) ReservationEvent {
	return ReservationEvent{
		ReservationID: res.ID,
		RoomID:        res.RoomID,
		RoomName:      room.Name,
		TimeSlotID:    res.TimeSlotID,
		SlotStart:     slot.StartTime,
		SlotEnd:       slot.EndTime,
		UserID:        res.UserID,
		Date:          res.Date,
		Purpose:       res.Purpose,
		Attendees:     res.Attendees,
	}
}
