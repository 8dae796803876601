package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-rooms/models"
	"hotel-rooms/services"
	"hotel-rooms/utils"
)

type RoomController struct {
	service *services.RoomService
	log     *zap.Logger
}

func NewRoomController(service *services.RoomService, log *zap.Logger) *RoomController {
	return &RoomController{service: service, log: log}
}

// ----------------------------------------------------
// GET /api/v1/rooms
// ----------------------------------------------------

func (rc *RoomController) GetRooms(c *gin.Context) {
	params := make(map[string]string)
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}

	page, err := rc.service.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	utils.JSONList(c, http.StatusOK, len(page.Rooms), page.Pagination, page.Rooms)
}

// ----------------------------------------------------
// GET /api/v1/rooms/:id
// ----------------------------------------------------

func (rc *RoomController) GetRoom(c *gin.Context) {
	room, err := rc.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// ----------------------------------------------------
// POST /api/v1/rooms
// ----------------------------------------------------

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		respondError(c, rc.log, services.ValidationFailure(err))
		return
	}

	created, err := rc.service.Create(c.Request.Context(), &room)
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

// ----------------------------------------------------
// PUT /api/v1/rooms/:id
// ----------------------------------------------------

func (rc *RoomController) UpdateRoom(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondError(c, rc.log, services.Validation("Invalid request payload"))
		return
	}

	room, err := rc.service.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// ----------------------------------------------------
// DELETE /api/v1/rooms/:id
// ----------------------------------------------------

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	if err := rc.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, rc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{})
}

// GET /api/v1/rooms/hotel/:hotelId
func (rc *RoomController) GetRoomsByHotelID(c *gin.Context) {
	rooms, err := rc.service.ListByHotel(c.Request.Context(), c.Param("hotelId"))
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	utils.JSONList(c, http.StatusOK, len(rooms), nil, rooms)
}

// GET /api/v1/rooms/type/:roomTypeId
func (rc *RoomController) GetRoomsByRoomType(c *gin.Context) {
	rooms, err := rc.service.ListByRoomType(c.Request.Context(), c.Param("roomTypeId"))
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	utils.JSONList(c, http.StatusOK, len(rooms), nil, rooms)
}

type statusPayload struct {
	Status string `json:"status"`
}

// PATCH /api/v1/rooms/:id/status
func (rc *RoomController) UpdateRoomStatus(c *gin.Context) {
	var payload statusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, rc.log, services.Validation("Please provide a status"))
		return
	}

	room, err := rc.service.UpdateStatus(c.Request.Context(), c.Param("id"), payload.Status)
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// GET /api/v1/rooms/available
func (rc *RoomController) GetAvailableRooms(c *gin.Context) {
	rooms, err := rc.service.Available(c.Request.Context(), services.AvailabilityQuery{
		StartDate:  c.Query("startDate"),
		EndDate:    c.Query("endDate"),
		HotelID:    c.Query("hotelId"),
		RoomTypeID: c.Query("roomTypeId"),
	})
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	utils.JSONList(c, http.StatusOK, len(rooms), nil, rooms)
}

type bulkPayload struct {
	Rooms json.RawMessage `json:"rooms"`
}

// POST /api/v1/rooms/bulk
func (rc *RoomController) BulkCreateRooms(c *gin.Context) {
	var payload bulkPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, rc.log, services.Validation("Please provide an array of rooms"))
		return
	}

	rooms, err := rc.service.BulkCreate(c.Request.Context(), payload.Rooms)
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	utils.JSONList(c, http.StatusCreated, len(rooms), nil, rooms)
}

// POST /api/v1/rooms/:id/maintenance
func (rc *RoomController) SetRoomMaintenance(c *gin.Context) {
	room, err := rc.service.SetMaintenance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}
