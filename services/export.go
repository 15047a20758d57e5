package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"hotel-booking/models"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const bookingsSheet = "Bookings"

var exportHeaders = []string{
	"ID", "Reference", "Hotel", "Room", "Room type", "Guest",
	"Check-in", "Check-out", "Nights", "Guests", "Total price", "Breakfast", "Paid", "Status",
}

// ExportService writes booking reports as XLSX workbooks.
type ExportService struct {
	queries *QueryService
	logger  *logrus.Logger
}

func NewExportService(queries *QueryService, logger *logrus.Logger) *ExportService {
	return &ExportService{queries: queries, logger: logger}
}

// ExportFileName names a report generated at t.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("bookings_%s.xlsx", t.UTC().Format("20060102_150405"))
}

// WriteBookingsXLSX writes every booking, one row each, to w.
func (s *ExportService) WriteBookingsXLSX(ctx context.Context, w io.Writer) (int, error) {
	bookings, err := s.queries.GetAllBookings(ctx)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(bookingsSheet)
	if err != nil {
		return 0, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return 0, fmt.Errorf("error removing default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return 0, fmt.Errorf("error creating header style: %w", err)
	}
	cancelledStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F8CBAD"}, Pattern: 1},
	})
	if err != nil {
		return 0, fmt.Errorf("error creating row style: %w", err)
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(bookingsSheet, cell, h); err != nil {
			return 0, err
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	if err := f.SetCellStyle(bookingsSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return 0, err
	}

	for i, b := range bookings {
		row := i + 2
		values := []interface{}{
			b.ID, b.ReferenceCode, b.HotelName, b.RoomNumber, b.RoomType, b.UserName,
			b.CheckIn, b.CheckOut, b.Nights, b.GuestsCount, b.TotalPrice.StringFixed(2), yesNo(b.Breakfast), yesNo(b.Paid), b.Status,
		}
		first, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(bookingsSheet, first, &values); err != nil {
			return 0, fmt.Errorf("error writing row %d: %w", row, err)
		}
		if b.Status == models.BookingStatusCancelled {
			last, _ := excelize.CoordinatesToCellName(len(exportHeaders), row)
			if err := f.SetCellStyle(bookingsSheet, first, last, cancelledStyle); err != nil {
				return 0, err
			}
		}
	}

	if err := f.SetColWidth(bookingsSheet, "A", lastCol, 16); err != nil {
		return 0, err
	}
	if err := f.SetColWidth(bookingsSheet, "B", "C", 36); err != nil {
		return 0, err
	}

	if _, err := f.WriteTo(w); err != nil {
		return 0, fmt.Errorf("error writing workbook: %w", err)
	}

	s.logger.WithField("rows", len(bookings)).Info("bookings exported")
	return len(bookings), nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
