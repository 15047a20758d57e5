package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteBookingsXLSX(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.insertBooking(t, "alice", 101, "2025-07-01", "2025-07-04")
	cancelled := f.insertBooking(t, "bob", 201, "2025-07-02", "2025-07-03")
	require.NoError(t, f.store.CancelBooking(ctx, cancelled.ID, time.Now(), ""))

	export := NewExportService(f.queryService(), quietLogger())
	var buf bytes.Buffer
	rows, err := export.WriteBookingsXLSX(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	assert.Equal(t, []string{bookingsSheet}, book.GetSheetList())
	all, err := book.GetRows(bookingsSheet)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, exportHeaders, all[0])
	assert.Equal(t, testHotel, all[1][2])
	assert.Equal(t, "101", all[1][3])
	assert.Equal(t, "2025-07-01", all[1][6])
	assert.Equal(t, "100.00", all[1][10])
	assert.Equal(t, "Cancelled", all[2][13])
}

func TestExportFileName(t *testing.T) {
	name := ExportFileName(time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC))
	assert.Equal(t, "bookings_20250701_093000.xlsx", name)
}
