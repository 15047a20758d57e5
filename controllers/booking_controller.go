// controllers/booking_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"hotel-booking/apperror"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CreateBookingPayload struct {
	UserName    string `json:"user_name" binding:"required"`
	HotelName   string `json:"hotel_name" binding:"required"`
	RoomType    string `json:"room_type" binding:"required"`
	CheckIn     string `json:"check_in" binding:"required"`
	CheckOut    string `json:"check_out" binding:"required"`
	GuestsCount int    `json:"guests_count"`
	Breakfast   bool   `json:"breakfast"`
}

type UpdateDatesPayload struct {
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

type CancelBookingPayload struct {
	Reason string `json:"reason"`
}

type BookingController struct {
	Bookings *services.BookingService
	Queries  *services.QueryService
	Exports  *services.ExportService
	Log      *logrus.Logger
	Now      func() time.Time
}

func NewBookingController(bookings *services.BookingService, queries *services.QueryService, exports *services.ExportService, log *logrus.Logger) *BookingController {
	return &BookingController{Bookings: bookings, Queries: queries, Exports: exports, Log: log, Now: time.Now}
}

func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	ci, err := services.ParseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	co, err := services.ParseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return ci, co, nil
}

// POST /api/bookings
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var payload CreateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	checkIn, checkOut, err := parseStay(payload.CheckIn, payload.CheckOut)
	if err != nil {
		respondError(c, bc.Log, err)
		return
	}

	conf, err := bc.Bookings.CreateBooking(c.Request.Context(), services.CreateBookingRequest{
		UserName:    strings.TrimSpace(payload.UserName),
		HotelName:   strings.TrimSpace(payload.HotelName),
		RoomType:    strings.TrimSpace(payload.RoomType),
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		GuestsCount: payload.GuestsCount,
		Breakfast:   payload.Breakfast,
	})
	if err != nil {
		respondError(c, bc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, conf)
}

// GET /api/bookings?user=&hotel=
func (bc *BookingController) ListBookings(c *gin.Context) {
	user := strings.TrimSpace(c.Query("user"))
	hotel := strings.TrimSpace(c.Query("hotel"))

	var (
		bookings []services.BookingSummary
		err      error
	)
	switch {
	case user != "" && hotel != "":
		utils.JSONError(c, http.StatusBadRequest, apperror.ErrInvalidInput.Code, "filter by user or by hotel, not both")
		return
	case user != "":
		bookings, err = bc.Queries.GetBookingsByUser(c.Request.Context(), user)
	case hotel != "":
		bookings, err = bc.Queries.GetBookingsByHotel(c.Request.Context(), hotel)
	default:
		bookings, err = bc.Queries.GetAllBookings(c.Request.Context())
	}
	if err != nil {
		respondError(c, bc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// GET /api/bookings/export
func (bc *BookingController) ExportBookings(c *gin.Context) {
	name := services.ExportFileName(bc.Now())
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	if _, err := bc.Exports.WriteBookingsXLSX(c.Request.Context(), c.Writer); err != nil {
		if c.Writer.Written() {
			bc.Log.WithError(err).Error("export aborted mid-stream")
			return
		}
		c.Header("Content-Disposition", "")
		respondError(c, bc.Log, err)
		return
	}
	c.Status(http.StatusOK)
}

// GET /api/bookings/reference/:code
func (bc *BookingController) GetBookingByReference(c *gin.Context) {
	summary, err := bc.Queries.GetBookingByReference(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, bc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}

// PATCH /api/bookings/:id/dates
func (bc *BookingController) UpdateBookingDates(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload UpdateDatesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	checkIn, checkOut, err := parseStay(payload.CheckIn, payload.CheckOut)
	if err != nil {
		respondError(c, bc.Log, err)
		return
	}

	summary, err := bc.Bookings.UpdateBookingDates(c.Request.Context(), id, checkIn, checkOut)
	if err != nil {
		respondError(c, bc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}

// POST /api/bookings/:id/cancel
func (bc *BookingController) CancelBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload CancelBookingPayload
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondBindError(c, err)
			return
		}
	}

	summary, err := bc.Bookings.CancelBooking(c.Request.Context(), id, payload.Reason)
	if err != nil {
		respondError(c, bc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}

// DELETE /api/bookings/:id
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := bc.Bookings.DeleteBooking(c.Request.Context(), id); err != nil {
		respondError(c, bc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

// GET /api/pricing/quote?hotel=&room_type=&check_in=&check_out=
func (bc *BookingController) QuoteStay(c *gin.Context) {
	checkIn, checkOut, err := parseStay(c.Query("check_in"), c.Query("check_out"))
	if err != nil {
		respondError(c, bc.Log, err)
		return
	}
	quote, err := bc.Queries.QuoteStay(c.Request.Context(), c.Query("hotel"), c.Query("room_type"), checkIn, checkOut)
	if err != nil {
		respondError(c, bc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, quote)
}
