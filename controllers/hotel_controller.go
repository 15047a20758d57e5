package controllers

import (
	"net/http"

	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type HotelController struct {
	Catalog *services.CatalogService
	Log     *logrus.Logger
}

func NewHotelController(catalog *services.CatalogService, log *logrus.Logger) *HotelController {
	return &HotelController{Catalog: catalog, Log: log}
}

// GET /api/hotels
func (hc *HotelController) GetHotels(c *gin.Context) {
	hotels, err := hc.Catalog.ListHotels(c.Request.Context())
	if err != nil {
		respondError(c, hc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotels)
}

// POST /api/hotels
func (hc *HotelController) CreateHotel(c *gin.Context) {
	var in services.HotelInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	hotel, err := hc.Catalog.CreateHotel(c.Request.Context(), in)
	if err != nil {
		respondError(c, hc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, hotel)
}
