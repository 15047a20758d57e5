package controllers

import (
	"net/http"

	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserController struct {
	Users *services.UserService
	Log   *logrus.Logger
}

func NewUserController(users *services.UserService, log *logrus.Logger) *UserController {
	return &UserController{Users: users, Log: log}
}

// POST /api/users
func (uc *UserController) RegisterUser(c *gin.Context) {
	var in services.RegisterUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := uc.Users.RegisterUser(c.Request.Context(), in)
	if err != nil {
		respondError(c, uc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, user)
}

// GET /api/users/:username
func (uc *UserController) GetUser(c *gin.Context) {
	user, err := uc.Users.GetUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, uc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}
