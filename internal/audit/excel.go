// Package audit exports the reservation ledger as an xlsx report.
package audit

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"roomreserve/internal/store"
)

// reportColumns is the header row of the reservations sheet.
var reportColumns = []string{
	"Reservation ID", "Room", "Date", "Time", "Purpose", "Attendees", "User", "Created At",
}

// Report builds an xlsx workbook sheet by sheet.
type Report struct {
	file         *excelize.File
	currentSheet string
	currentRow   int
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{file: excelize.NewFile()}
}

// AddSheet adds a new sheet with the given name and makes it current.
func (r *Report) AddSheet(name string) error {
	// Truncate sheet name to 31 chars (Excel limit)
	if len(name) > 31 {
		name = name[:31]
	}

	if r.currentSheet == "" {
		// Rename default sheet
		r.file.SetSheetName("Sheet1", name)
	} else {
		if _, err := r.file.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	r.currentSheet = name
	r.currentRow = 1
	return nil
}

// WriteHeader writes a bold column header row to the current sheet.
func (r *Report) WriteHeader(columns []string) error {
	if r.currentSheet == "" {
		return fmt.Errorf("no active sheet")
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, r.currentRow)
		if err != nil {
			return err
		}
		if err := r.file.SetCellValue(r.currentSheet, cell, col); err != nil {
			return err
		}
	}

	style, err := r.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, r.currentRow)
		endCell, _ := excelize.CoordinatesToCellName(len(columns), r.currentRow)
		_ = r.file.SetCellStyle(r.currentSheet, startCell, endCell, style)
	}

	r.currentRow++
	return nil
}

// WriteRow writes a data row to the current sheet.
func (r *Report) WriteRow(row []interface{}) error {
	if r.currentSheet == "" {
		return fmt.Errorf("no active sheet")
	}

	for i, val := range row {
		cell, err := excelize.CoordinatesToCellName(i+1, r.currentRow)
		if err != nil {
			return err
		}
		if err := r.file.SetCellValue(r.currentSheet, cell, val); err != nil {
			return err
		}
	}

	r.currentRow++
	return nil
}

// Save writes the workbook to the writer.
func (r *Report) Save(w io.Writer) error {
	return r.file.Write(w)
}

// SaveToFile writes the workbook to disk.
func (r *Report) SaveToFile(path string) error {
	return r.file.SaveAs(path)
}

// Close releases resources.
func (r *Report) Close() error {
	return r.file.Close()
}

// BuildReservationReport fills a report with one row per reservation,
// joined with room and slot detail.
func BuildReservationReport(details []store.ReservationDetail) (*Report, error) {
	report := NewReport()

	if err := report.AddSheet("Reservations"); err != nil {
		return nil, err
	}
	if err := report.WriteHeader(reportColumns); err != nil {
		return nil, err
	}

	for _, d := range details {
		row := []interface{}{
			d.ID,
			d.RoomName,
			d.Date,
			d.SlotStart + " - " + d.SlotEnd,
			d.Purpose,
			d.Attendees,
			d.UserID,
			d.CreatedAt.Format(time.RFC3339),
		}
		if err := report.WriteRow(row); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// Filename returns the report filename for a point in time,
// e.g. "reservations_2025-06.xlsx".
func Filename(t time.Time) string {
	return fmt.Sprintf("reservations_%s.xlsx", t.Format("2006-01"))
}
