// Package schedule generates the daily slot grid rooms are seeded with and
// the date options the presentation layer offers.
package schedule

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"roomreserve/internal/models"
)

// Policy describes how a room's daily slot grid is laid out.
type Policy struct {
	StartHour   int // first slot starts at this hour, 0-23
	EndHour     int // no slot ends after this hour
	SlotMinutes int // slot duration in minutes
}

// DefaultPolicy returns the standard office-hours grid: hourly slots
// from 08:00 to 18:00.
func DefaultPolicy() Policy {
	return Policy{StartHour: 8, EndHour: 18, SlotMinutes: 60}
}

// Generate produces the slot grid for one room. When rng is non-nil each
// slot is pre-booked with probability bookedProbability, mirroring how the
// catalog marks a fraction of slots taken at startup. Pass a seeded rng for
// deterministic output.
func Generate(p Policy, rng *rand.Rand, bookedProbability float64) []models.TimeSlot {
	if p.SlotMinutes <= 0 {
		p.SlotMinutes = 60
	}
	if p.EndHour <= p.StartHour {
		return nil
	}

	var slots []models.TimeSlot
	end := p.EndHour * 60
	for cursor := p.StartHour * 60; cursor+p.SlotMinutes <= end; cursor += p.SlotMinutes {
		booked := false
		if rng != nil && bookedProbability > 0 {
			booked = rng.Float64() < bookedProbability
		}
		slots = append(slots, models.TimeSlot{
			ID:        slotID(cursor, p.SlotMinutes),
			StartTime: clock(cursor),
			EndTime:   clock(cursor + p.SlotMinutes),
			IsBooked:  booked,
		})
	}
	return slots
}

// DateOptions returns the next days calendar dates starting at from,
// formatted as YYYY-MM-DD.
func DateOptions(from time.Time, days int) []string {
	if days <= 0 {
		return nil
	}
	options := make([]string, 0, days)
	for i := 0; i < days; i++ {
		options = append(options, from.AddDate(0, 0, i).Format("2006-01-02"))
	}
	return options
}

// At combines a YYYY-MM-DD date with a wall-clock HH:MM time in the given
// location. Slot times carry no timezone, so the caller decides the location.
func At(date, wallClock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date: %w", err)
	}

	parts := strings.Split(wallClock, ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid time format: %s", wallClock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid hour: %w", err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid minute: %w", err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("time out of range: %s", wallClock)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc), nil
}

// slotID keeps the original hour-based ids ("slot-9") for hourly grids and
// falls back to minute precision ("slot-0930") for anything else.
func slotID(startMin, slotMinutes int) string {
	if slotMinutes == 60 && startMin%60 == 0 {
		return fmt.Sprintf("slot-%d", startMin/60)
	}
	return fmt.Sprintf("slot-%02d%02d", startMin/60, startMin%60)
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
