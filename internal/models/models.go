package models

import "time"

// Room represents a bookable space with a fixed daily set of time slots.
type Room struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Capacity  int        `json:"capacity"`
	Amenities []string   `json:"amenities"`
	Image     string     `json:"image,omitempty"`
	TimeSlots []TimeSlot `json:"time_slots"`
}

// HasAmenity reports whether the room lists the given amenity.
func (r *Room) HasAmenity(amenity string) bool {
	for _, a := range r.Amenities {
		if a == amenity {
			return true
		}
	}
	return false
}

// Fits reports whether the given attendee count fits the room capacity.
// A count of zero means "not specified" and always fits.
func (r *Room) Fits(attendees int) bool {
	if attendees <= 0 {
		return true
	}
	return attendees <= r.Capacity
}

// Slot returns the room's time slot with the given id.
func (r *Room) Slot(slotID string) (*TimeSlot, bool) {
	for i := range r.TimeSlots {
		if r.TimeSlots[i].ID == slotID {
			return &r.TimeSlots[i], true
		}
	}
	return nil, false
}

// TimeSlot is a fixed interval within a room's daily schedule.
// Start and end are wall-clock "HH:MM" strings with no timezone.
type TimeSlot struct {
	ID        string `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsBooked  bool   `json:"is_booked"`
}

// Label returns the slot interval in display form, e.g. "09:00 - 10:00".
func (s TimeSlot) Label() string {
	return s.StartTime + " - " + s.EndTime
}

// Reservation is a user's claim on a specific room and time slot for a date.
// It references the room and slot by id only; it does not own them.
type Reservation struct {
	ID         string    `json:"id"`
	RoomID     string    `json:"room_id"`
	TimeSlotID string    `json:"time_slot_id"`
	UserID     string    `json:"user_id"`
	Date       string    `json:"date"` // YYYY-MM-DD
	Purpose    string    `json:"purpose,omitempty"`
	Attendees  int       `json:"attendees,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// References reports whether the reservation points at the given slot.
func (r *Reservation) References(roomID, slotID string) bool {
	return r.RoomID == roomID && r.TimeSlotID == slotID
}

// User is the person making reservations in the current session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
