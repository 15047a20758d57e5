package controllers

import (
	"net/http"

	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RoomTypeController struct {
	Catalog *services.CatalogService
	Log     *logrus.Logger
}

func NewRoomTypeController(catalog *services.CatalogService, log *logrus.Logger) *RoomTypeController {
	return &RoomTypeController{Catalog: catalog, Log: log}
}

// GET /api/room-types
func (rtc *RoomTypeController) GetRoomTypes(c *gin.Context) {
	types, err := rtc.Catalog.ListRoomTypes(c.Request.Context())
	if err != nil {
		respondError(c, rtc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

// POST /api/room-types
func (rtc *RoomTypeController) CreateRoomType(c *gin.Context) {
	var in services.RoomTypeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	rt, err := rtc.Catalog.CreateRoomType(c.Request.Context(), in)
	if err != nil {
		respondError(c, rtc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rt)
}
