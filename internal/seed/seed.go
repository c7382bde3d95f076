// Package seed supplies the static catalog a store starts from: rooms, the
// session user, and any reservations that should exist at startup.
package seed

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"roomreserve/internal/models"
	"roomreserve/internal/schedule"
)

// Room describes a room before its slot grid is generated.
type Room struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Capacity  int      `yaml:"capacity"`
	Amenities []string `yaml:"amenities"`
	Image     string   `yaml:"image,omitempty"`
}

// Reservation pins a slot as reserved at startup. It is applied through the
// store's create path so the booked-flag invariant holds from the first
// instant.
type Reservation struct {
	RoomID     string `yaml:"room_id"`
	TimeSlotID string `yaml:"time_slot_id"`
	Date       string `yaml:"date"`
	Purpose    string `yaml:"purpose,omitempty"`
	Attendees  int    `yaml:"attendees,omitempty"`
}

// User is the session user definition.
type User struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// Catalog is the full static seed.
type Catalog struct {
	Rooms        []Room        `yaml:"rooms"`
	User         *User         `yaml:"user"`
	Reservations []Reservation `yaml:"reservations"`
}

// Default returns the built-in catalog: five rooms, one session user, and
// two pre-existing reservations.
func Default() Catalog {
	return Catalog{
		Rooms: []Room{
			{
				ID:        "room-1",
				Name:      "Conference Room A",
				Capacity:  10,
				Amenities: []string{"Projector", "Whiteboard", "Video conferencing"},
			},
			{
				ID:        "room-2",
				Name:      "Meeting Room B",
				Capacity:  6,
				Amenities: []string{"TV Screen", "Whiteboard"},
			},
			{
				ID:        "room-3",
				Name:      "Boardroom",
				Capacity:  20,
				Amenities: []string{"Projector", "Video conferencing", "Audio system", "Coffee machine"},
			},
			{
				ID:        "room-4",
				Name:      "Focus Room 1",
				Capacity:  2,
				Amenities: []string{"TV Screen"},
			},
			{
				ID:        "room-5",
				Name:      "Creative Space",
				Capacity:  15,
				Amenities: []string{"Whiteboard", "Flexible furniture", "Drawing supplies"},
			},
		},
		User: &User{
			ID:    "user-1",
			Name:  "John Doe",
			Email: "john.doe@example.com",
		},
		Reservations: []Reservation{
			{
				RoomID:     "room-1",
				TimeSlotID: "slot-10",
				Date:       "2025-05-03",
				Purpose:    "Team Meeting",
				Attendees:  8,
			},
			{
				RoomID:     "room-3",
				TimeSlotID: "slot-14",
				Date:       "2025-05-05",
				Purpose:    "Client Presentation",
				Attendees:  12,
			},
		},
	}
}

// Load reads a catalog from a YAML file. ${ENV_VAR} placeholders are
// expanded the same way the main config loader does.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}

	if len(cat.Rooms) == 0 {
		return Catalog{}, fmt.Errorf("catalog has no rooms")
	}
	for i, r := range cat.Rooms {
		if r.ID == "" {
			return Catalog{}, fmt.Errorf("room %d has no id", i)
		}
	}
	return cat, nil
}

// Materialize expands the catalog into model rooms, generating each room's
// slot grid with the given policy. rng controls the randomized pre-booked
// state; pass a seeded source for deterministic output, or nil plus zero
// probability to start with every slot free.
func (c Catalog) Materialize(p schedule.Policy, rng *rand.Rand, bookedProbability float64) []models.Room {
	rooms := make([]models.Room, 0, len(c.Rooms))
	for _, def := range c.Rooms {
		rooms = append(rooms, models.Room{
			ID:        def.ID,
			Name:      def.Name,
			Capacity:  def.Capacity,
			Amenities: append([]string(nil), def.Amenities...),
			Image:     def.Image,
			TimeSlots: schedule.Generate(p, rng, bookedProbability),
		})
	}
	return rooms
}

// SessionUser converts the catalog user definition, if present.
func (c Catalog) SessionUser() *models.User {
	if c.User == nil {
		return nil
	}
	return &models.User{ID: c.User.ID, Name: c.User.Name, Email: c.User.Email}
}
