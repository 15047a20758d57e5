package controllers

import (
	"net/http"
	"strings"
	"time"

	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CreateRoomPayload struct {
	RoomNumber        int    `json:"room_number" binding:"required"`
	HotelName         string `json:"hotel_name" binding:"required"`
	RoomTypeID        uint   `json:"room_type_id" binding:"required"`
	IsAvailable       *bool  `json:"is_available"`
	BreakfastIncluded bool   `json:"breakfast_included"`
	AvailableFrom     string `json:"available_from"`
}

type RoomController struct {
	Catalog *services.CatalogService
	Queries *services.QueryService
	Log     *logrus.Logger
	Now     func() time.Time
}

func NewRoomController(catalog *services.CatalogService, queries *services.QueryService, log *logrus.Logger) *RoomController {
	return &RoomController{Catalog: catalog, Queries: queries, Log: log, Now: time.Now}
}

// GET /api/rooms?hotel=
func (rc *RoomController) GetRooms(c *gin.Context) {
	rooms, err := rc.Catalog.ListRooms(c.Request.Context(), strings.TrimSpace(c.Query("hotel")))
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// POST /api/rooms
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var payload CreateRoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	in := services.RoomInput{
		RoomNumber:        payload.RoomNumber,
		HotelName:         strings.TrimSpace(payload.HotelName),
		RoomTypeID:        payload.RoomTypeID,
		IsAvailable:       payload.IsAvailable,
		BreakfastIncluded: payload.BreakfastIncluded,
	}
	if payload.AvailableFrom != "" {
		from, err := services.ParseDate(payload.AvailableFrom)
		if err != nil {
			respondError(c, rc.Log, err)
			return
		}
		in.AvailableFrom = &from
	}

	room, err := rc.Catalog.CreateRoom(c.Request.Context(), in)
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// GET /api/rooms/cleaning-due
func (rc *RoomController) GetRoomsDueForCleaning(c *gin.Context) {
	rooms, err := rc.Queries.GetRoomsDueForCleaning(c.Request.Context(), rc.Now())
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// POST /api/rooms/:id/cleaned
func (rc *RoomController) MarkRoomCleaned(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	room, err := rc.Queries.MarkRoomCleaned(c.Request.Context(), id, rc.Now())
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}
