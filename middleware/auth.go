package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-rooms/models"
	"hotel-rooms/services"
	"hotel-rooms/utils"
)

const (
	AdminKey = "admin"
	TokenKey = "token"
)

// Protect requires a valid "Authorization: Bearer <token>" session.
func Protect(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		admin, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			status := services.StatusOf(err)
			message := err.Error()
			if status == http.StatusInternalServerError {
				_ = c.Error(err)
				message = "Server Error"
			}
			utils.AbortJSONError(c, status, message)
			return
		}
		c.Set(AdminKey, admin)
		c.Set(TokenKey, token)
		c.Next()
	}
}

// Authorize allows only admins whose role is listed. It must run after Protect.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := CurrentAdmin(c)
		if !ok {
			utils.AbortJSONError(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}
		for _, r := range roles {
			if admin.Role == r {
				c.Next()
				return
			}
		}
		utils.AbortJSONError(c, http.StatusForbidden, "User role "+admin.Role+" is not authorized to access this route")
	}
}

func CurrentAdmin(c *gin.Context) (*models.Admin, bool) {
	v, ok := c.Get(AdminKey)
	if !ok {
		return nil, false
	}
	admin, ok := v.(*models.Admin)
	return admin, ok && admin != nil
}

func BearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}
