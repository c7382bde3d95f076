package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoom_HasAmenity(t *testing.T) {
	room := Room{
		ID:        "room-1",
		Name:      "Conference Room A",
		Capacity:  10,
		Amenities: []string{"Projector", "Whiteboard"},
	}

	assert.True(t, room.HasAmenity("Projector"))
	assert.True(t, room.HasAmenity("Whiteboard"))
	assert.False(t, room.HasAmenity("Coffee machine"))
	assert.False(t, room.HasAmenity(""))
}

func TestRoom_Fits(t *testing.T) {
	room := Room{ID: "room-2", Capacity: 6}

	tests := []struct {
		name      string
		attendees int
		fits      bool
	}{
		{"zero means unspecified", 0, true},
		{"negative treated as unspecified", -1, true},
		{"below capacity", 5, true},
		{"exactly capacity", 6, true},
		{"above capacity", 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fits, room.Fits(tt.attendees))
		})
	}
}

func TestRoom_Slot(t *testing.T) {
	room := Room{
		ID: "room-1",
		TimeSlots: []TimeSlot{
			{ID: "slot-8", StartTime: "08:00", EndTime: "09:00"},
			{ID: "slot-9", StartTime: "09:00", EndTime: "10:00"},
		},
	}

	slot, ok := room.Slot("slot-9")
	assert.True(t, ok)
	assert.Equal(t, "09:00", slot.StartTime)

	// Returned pointer aliases the room's slot, so mutations stick.
	slot.IsBooked = true
	assert.True(t, room.TimeSlots[1].IsBooked)

	_, ok = room.Slot("slot-99")
	assert.False(t, ok)
}

func TestTimeSlot_Label(t *testing.T) {
	slot := TimeSlot{ID: "slot-14", StartTime: "14:00", EndTime: "15:00"}
	assert.Equal(t, "14:00 - 15:00", slot.Label())
}

func TestReservation_References(t *testing.T) {
	res := Reservation{ID: "res-1", RoomID: "room-3", TimeSlotID: "slot-14"}

	assert.True(t, res.References("room-3", "slot-14"))
	assert.False(t, res.References("room-3", "slot-15"))
	assert.False(t, res.References("room-1", "slot-14"))
}
