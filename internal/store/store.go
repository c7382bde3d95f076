// Package store implements the in-memory reservation store: the catalog of
// rooms with their time slots, the session user, and the reservation list.
// The store has exclusive ownership of its collections; callers only ever
// see copies and mutate through the command methods.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"roomreserve/internal/events"
	"roomreserve/internal/metrics"
	"roomreserve/internal/models"
	"roomreserve/internal/seed"
)

var (
	ErrNoCurrentUser       = errors.New("no current user")
	ErrRoomNotFound        = errors.New("room not found")
	ErrSlotNotFound        = errors.New("time slot not found")
	ErrSlotAlreadyBooked   = errors.New("time slot already booked")
	ErrReservationNotFound = errors.New("reservation not found")
)

// Store owns all reservation state for a session.
type Store struct {
	mu           sync.RWMutex
	rooms        map[string]*models.Room
	order        []string // room ids in catalog order
	reservations []models.Reservation
	user         *models.User
	selectedDate string

	bus    *events.Bus
	logger zerolog.Logger

	now   func() time.Time
	newID func() string
}

// New builds a store from materialized rooms and the session user. bus may
// be nil when nothing subscribes to reservation events.
func New(rooms []models.Room, user *models.User, bus *events.Bus, logger *zerolog.Logger) *Store {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}

	s := &Store{
		rooms:  make(map[string]*models.Room, len(rooms)),
		user:   user,
		bus:    bus,
		logger: l,
		now:    time.Now,
		newID:  func() string { return "res-" + uuid.NewString() },
	}
	for i := range rooms {
		room := rooms[i]
		s.rooms[room.ID] = &room
		s.order = append(s.order, room.ID)
	}
	s.selectedDate = s.now().Format("2006-01-02")
	return s
}

// Seed applies startup reservations through the regular create path so the
// booked-flag invariant holds from the first instant, even against slots the
// grid generator already marked booked. Returns the number applied.
func (s *Store) Seed(seeds []seed.Reservation) int {
	applied := 0
	for _, sr := range seeds {
		s.mu.Lock()
		if slot, _, err := s.lookupSlot(sr.RoomID, sr.TimeSlotID); err == nil {
			// Seed reservations win over randomized pre-booking.
			slot.IsBooked = false
		}
		s.mu.Unlock()

		if _, err := s.CreateReservation(sr.RoomID, sr.TimeSlotID, sr.Date, sr.Purpose, sr.Attendees); err != nil {
			s.logger.Warn().Err(err).
				Str("room_id", sr.RoomID).
				Str("time_slot_id", sr.TimeSlotID).
				Msg("skipping seed reservation")
			continue
		}
		applied++
	}
	return applied
}

// ListRooms returns the catalog in seed order. Rooms are deep copies;
// mutating them never touches store state.
func (s *Store) ListRooms() []models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]models.Room, 0, len(s.order))
	for _, id := range s.order {
		rooms = append(rooms, copyRoom(s.rooms[id]))
	}
	return rooms
}

// GetRoom returns a copy of the room with the given id.
func (s *Store) GetRoom(roomID string) (models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return models.Room{}, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	return copyRoom(room), nil
}

// RoomFilter narrows the catalog the way the room list UI does.
type RoomFilter struct {
	Amenity     string // empty matches all
	MinCapacity int    // zero matches all
}

// FilterRooms returns rooms matching the filter, in catalog order.
func (s *Store) FilterRooms(f RoomFilter) []models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rooms []models.Room
	for _, id := range s.order {
		room := s.rooms[id]
		if f.Amenity != "" && !room.HasAmenity(f.Amenity) {
			continue
		}
		if f.MinCapacity > 0 && room.Capacity < f.MinCapacity {
			continue
		}
		rooms = append(rooms, copyRoom(room))
	}
	return rooms
}

// Amenities returns the sorted unique amenity set across all rooms.
func (s *Store) Amenities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := make(map[string]struct{})
	for _, room := range s.rooms {
		for _, a := range room.Amenities {
			set[a] = struct{}{}
		}
	}
	amenities := make([]string, 0, len(set))
	for a := range set {
		amenities = append(amenities, a)
	}
	sort.Strings(amenities)
	return amenities
}

// GetAvailableTimeSlots returns the room's unbooked slots. The date is
// accepted for interface compatibility but availability is not date-scoped:
// a booked slot is booked on every date. Unknown rooms yield an empty
// result rather than an error.
func (s *Store) GetAvailableTimeSlots(roomID, date string) []models.TimeSlot {
	metrics.IncSlotQuery()

	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil
	}

	var available []models.TimeSlot
	for _, slot := range room.TimeSlots {
		if !slot.IsBooked {
			available = append(available, slot)
		}
	}
	return available
}

// CreateReservation books the given slot for the current user. Every error
// leaves the store untouched. Purpose and attendees are optional; attendee
// count is not checked against room capacity here, that is the caller's
// concern (models.Room.Fits).
func (s *Store) CreateReservation(roomID, timeSlotID, date, purpose string, attendees int) (*models.Reservation, error) {
	s.mu.Lock()

	if s.user == nil {
		s.mu.Unlock()
		metrics.IncReservationRejected("no_current_user")
		return nil, ErrNoCurrentUser
	}

	slot, room, err := s.lookupSlot(roomID, timeSlotID)
	if err != nil {
		s.mu.Unlock()
		metrics.IncReservationRejected(rejectReason(err))
		return nil, err
	}
	// Check-and-set under the lock: double booking is impossible even with
	// concurrent callers.
	if slot.IsBooked {
		s.mu.Unlock()
		metrics.IncReservationRejected("slot_already_booked")
		return nil, fmt.Errorf("%w: %s/%s", ErrSlotAlreadyBooked, roomID, timeSlotID)
	}

	res := models.Reservation{
		ID:         s.newID(),
		RoomID:     roomID,
		TimeSlotID: timeSlotID,
		UserID:     s.user.ID,
		Date:       date,
		Purpose:    purpose,
		Attendees:  attendees,
		CreatedAt:  s.now(),
	}
	s.reservations = append(s.reservations, res)
	slot.IsBooked = true

	payload := events.FromReservation(res, *room, *slot)
	s.mu.Unlock()

	metrics.IncReservationCreated()
	s.logger.Info().
		Str("reservation_id", res.ID).
		Str("room_id", roomID).
		Str("time_slot_id", timeSlotID).
		Str("date", date).
		Msg("reservation created")
	s.publish(events.TypeReservationCreated, payload)

	return &res, nil
}

// CancelReservation removes the reservation and frees its slot. Unknown ids
// leave the store untouched.
func (s *Store) CancelReservation(reservationID string) error {
	s.mu.Lock()

	idx := -1
	for i := range s.reservations {
		if s.reservations[i].ID == reservationID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		metrics.IncReservationRejected("reservation_not_found")
		return fmt.Errorf("%w: %s", ErrReservationNotFound, reservationID)
	}

	res := s.reservations[idx]
	s.reservations = append(s.reservations[:idx], s.reservations[idx+1:]...)

	payload := events.ReservationEvent{
		ReservationID: res.ID,
		RoomID:        res.RoomID,
		TimeSlotID:    res.TimeSlotID,
		UserID:        res.UserID,
		Date:          res.Date,
	}
	if slot, room, err := s.lookupSlot(res.RoomID, res.TimeSlotID); err == nil {
		slot.IsBooked = false
		payload = events.FromReservation(res, *room, *slot)
	}
	s.mu.Unlock()

	metrics.IncReservationCancelled()
	s.logger.Info().
		Str("reservation_id", reservationID).
		Str("room_id", res.RoomID).
		Str("time_slot_id", res.TimeSlotID).
		Msg("reservation cancelled")
	s.publish(events.TypeReservationCancelled, payload)

	return nil
}

// ListReservations returns a copy of all active reservations in creation
// order.
func (s *Store) ListReservations() []models.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Reservation(nil), s.reservations...)
}

// ReservationsForUser returns the user's reservations in creation order.
func (s *Store) ReservationsForUser(userID string) []models.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Reservation
	for _, res := range s.reservations {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	return out
}

// ReservationDetail is a reservation joined with the room and slot fields
// the reservation list UI renders.
type ReservationDetail struct {
	models.Reservation
	RoomName  string
	SlotStart string
	SlotEnd   string
}

// GetReservationDetail resolves one reservation with its room and slot.
func (s *Store) GetReservationDetail(reservationID string) (ReservationDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, res := range s.reservations {
		if res.ID == reservationID {
			return s.detail(res), nil
		}
	}
	return ReservationDetail{}, fmt.Errorf("%w: %s", ErrReservationNotFound, reservationID)
}

// ReservationDetails resolves all reservations, in creation order.
func (s *Store) ReservationDetails() []ReservationDetail {
	s.mu.RLock()
	defer s.mu.RUnlock()

	details := make([]ReservationDetail, 0, len(s.reservations))
	for _, res := range s.reservations {
		details = append(details, s.detail(res))
	}
	return details
}

// CurrentUser returns the session user, if one is set.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// SelectedDate returns the session's currently selected date.
func (s *Store) SelectedDate() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedDate
}

// SetSelectedDate updates the session date. The value is UI-scoped state,
// not part of any reservation.
func (s *Store) SetSelectedDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	s.mu.Lock()
	s.selectedDate = date
	s.mu.Unlock()
	return nil
}

// lookupSlot resolves a (room, slot) pair. Caller must hold the lock.
func (s *Store) lookupSlot(roomID, timeSlotID string) (*models.TimeSlot, *models.Room, error) {
	room, ok := s.rooms[roomID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	slot, ok := room.Slot(timeSlotID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s/%s", ErrSlotNotFound, roomID, timeSlotID)
	}
	return slot, room, nil
}

// detail joins a reservation with its room and slot. Caller must hold the
// lock. Dangling references (which the command methods never produce) fall
// back to empty fields.
func (s *Store) detail(res models.Reservation) ReservationDetail {
	d := ReservationDetail{Reservation: res}
	if room, ok := s.rooms[res.RoomID]; ok {
		d.RoomName = room.Name
		if slot, ok := room.Slot(res.TimeSlotID); ok {
			d.SlotStart = slot.StartTime
			d.SlotEnd = slot.EndTime
		}
	}
	return d
}

func (s *Store) publish(eventType string, payload events.ReservationEvent) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.Event{Type: eventType, Reservation: payload, OccurredAt: s.now()})
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, ErrSlotNotFound):
		return "slot_not_found"
	default:
		return "unknown"
	}
}

func copyRoom(room *models.Room) models.Room {
	out := *room
	out.Amenities = append([]string(nil), room.Amenities...)
	out.TimeSlots = append([]models.TimeSlot(nil), room.TimeSlots...)
	return out
}
