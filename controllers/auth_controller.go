package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-rooms/middleware"
	"hotel-rooms/services"
	"hotel-rooms/utils"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthController struct {
	service *services.AuthService
	log     *zap.Logger
}

func NewAuthController(service *services.AuthService, log *zap.Logger) *AuthController {
	return &AuthController{service: service, log: log}
}

func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, ac.log, services.Validation("invalid payload"))
		return
	}

	token, expires, err := ac.service.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		respondError(c, ac.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"token":     token,
		"expiresAt": expires,
	})
}

// Logout revokes the token Protect authenticated.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.service.Logout(c.Request.Context(), c.GetString(middleware.TokenKey)); err != nil {
		respondError(c, ac.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{})
}

// Me returns the signed-in admin.
func (ac *AuthController) Me(c *gin.Context) {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, admin)
}
