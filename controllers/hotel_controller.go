package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-rooms/models"
	"hotel-rooms/services"
	"hotel-rooms/utils"
)

type hotelPayload struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

func (p hotelPayload) toModel() models.Hotel {
	return models.Hotel{
		Name:    p.Name,
		Address: p.Address,
		Phone:   p.Phone,
		Email:   p.Email,
		Website: p.Website,
	}
}

type HotelController struct {
	service *services.HotelService
	log     *zap.Logger
}

func NewHotelController(service *services.HotelService, log *zap.Logger) *HotelController {
	return &HotelController{service: service, log: log}
}

func (hc *HotelController) GetHotels(c *gin.Context) {
	hotels, err := hc.service.List(c.Request.Context())
	if err != nil {
		respondError(c, hc.log, err)
		return
	}
	utils.JSONList(c, http.StatusOK, len(hotels), nil, hotels)
}

func (hc *HotelController) GetHotel(c *gin.Context) {
	hotel, err := hc.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, hc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}

func (hc *HotelController) CreateHotel(c *gin.Context) {
	var payload hotelPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, hc.log, services.ValidationFailure(err))
		return
	}

	hotel := payload.toModel()
	created, err := hc.service.Create(c.Request.Context(), &hotel)
	if err != nil {
		respondError(c, hc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

func (hc *HotelController) UpdateHotel(c *gin.Context) {
	var payload hotelPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, hc.log, services.ValidationFailure(err))
		return
	}

	hotel, err := hc.service.Update(c.Request.Context(), c.Param("id"), payload.toModel())
	if err != nil {
		respondError(c, hc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}
