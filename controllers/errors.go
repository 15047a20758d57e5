package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"hotel-booking/apperror"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError renders err with the status and code of its taxonomy entry.
// Anything outside the taxonomy becomes a generic 500.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	if appErr, ok := apperror.From(err); ok {
		if appErr.Status >= http.StatusInternalServerError {
			log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		}
		utils.JSONError(c, appErr.Status, appErr.Code, appErr.Message)
		return
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		log.WithError(err).WithField("path", c.FullPath()).Warn("request timed out")
		utils.JSONError(c, http.StatusGatewayTimeout, "request_timeout", "the request took too long to complete")
	case errors.Is(err, context.Canceled):
		utils.JSONError(c, 499, "request_cancelled", "the request was cancelled")
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("unexpected error")
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "an unexpected error occurred")
	}
}

func respondBindError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, apperror.ErrInvalidInput.Code, "invalid request payload: "+err.Error())
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, apperror.ErrInvalidInput.Code, "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
