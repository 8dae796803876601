package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-rooms/services"
	"hotel-rooms/utils"
)

// respondError renders err in the error envelope. Classified errors keep their
// status and message; anything else is a 500 that still carries its message.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status := services.StatusOf(err)
	_ = c.Error(err)

	var appErr *services.Error
	if !errors.As(err, &appErr) || status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
	utils.JSONError(c, status, err.Error())
}
