package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-rooms/models"
	"hotel-rooms/services"
	"hotel-rooms/utils"
)

type RoomTypeController struct {
	service *services.RoomTypeService
	log     *zap.Logger
}

func NewRoomTypeController(service *services.RoomTypeService, log *zap.Logger) *RoomTypeController {
	return &RoomTypeController{service: service, log: log}
}

func (rc *RoomTypeController) GetRoomTypes(c *gin.Context) {
	types, err := rc.service.List(c.Request.Context())
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	utils.JSONList(c, http.StatusOK, len(types), nil, types)
}

func (rc *RoomTypeController) CreateRoomType(c *gin.Context) {
	var rt models.RoomType
	if err := c.ShouldBindJSON(&rt); err != nil {
		respondError(c, rc.log, services.ValidationFailure(err))
		return
	}

	created, err := rc.service.Create(c.Request.Context(), &rt)
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

func (rc *RoomTypeController) DeleteRoomType(c *gin.Context) {
	if err := rc.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, rc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{})
}
