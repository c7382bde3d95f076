package audit

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"roomreserve/internal/models"
	"roomreserve/internal/store"
)

func TestBuildReservationReport(t *testing.T) {
	created := time.Date(2025, time.June, 1, 8, 30, 0, 0, time.UTC)
	details := []store.ReservationDetail{
		{
			Reservation: models.Reservation{
				ID:         "res-1",
				RoomID:     "room-1",
				TimeSlotID: "slot-9",
				UserID:     "user-1",
				Date:       "2025-06-01",
				Purpose:    "Standup",
				Attendees:  3,
				CreatedAt:  created,
			},
			RoomName:  "Conference Room A",
			SlotStart: "09:00",
			SlotEnd:   "10:00",
		},
	}

	report, err := BuildReservationReport(details)
	require.NoError(t, err)
	defer report.Close()

	var buf bytes.Buffer
	require.NoError(t, report.Save(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Reservations")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Reservation ID", rows[0][0])
	assert.Equal(t, "res-1", rows[1][0])
	assert.Equal(t, "Conference Room A", rows[1][1])
	assert.Equal(t, "2025-06-01", rows[1][2])
	assert.Equal(t, "09:00 - 10:00", rows[1][3])
	assert.Equal(t, "Standup", rows[1][4])
	assert.Equal(t, "3", rows[1][5])
	assert.Equal(t, "user-1", rows[1][6])
}

func TestBuildReservationReport_Empty(t *testing.T) {
	report, err := BuildReservationReport(nil)
	require.NoError(t, err)
	defer report.Close()

	var buf bytes.Buffer
	require.NoError(t, report.Save(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Reservations")
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}

func TestReport_RequiresSheet(t *testing.T) {
	report := NewReport()
	defer report.Close()

	assert.Error(t, report.WriteHeader([]string{"A"}))
	assert.Error(t, report.WriteRow([]interface{}{"a"}))
}

func TestFilename(t *testing.T) {
	ts := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "reservations_2025-06.xlsx", Filename(ts))
}
