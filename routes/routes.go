package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"hotel-rooms/controllers"
	"hotel-rooms/middleware"
	"hotel-rooms/models"
	"hotel-rooms/services"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Rooms     *controllers.RoomController
	RoomTypes *controllers.RoomTypeController
	Hotels    *controllers.HotelController
	Auth      *controllers.AuthController
}

// SetupRouter builds the gin engine with middleware and the /api/v1 route table.
func SetupRouter(h Handlers, auth *services.AuthService, origins []string, log *zap.Logger) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		services.RegisterJSONFieldNames(v)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery(log), middleware.Logger(log))

	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protect := middleware.Protect(auth)
	adminOnly := middleware.Authorize(models.RoleAdmin)

	api := r.Group("/api/v1")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", h.Auth.Login)
			authRoutes.POST("/logout", protect, h.Auth.Logout)
			authRoutes.GET("/me", protect, h.Auth.Me)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", h.Rooms.GetRooms)
			// static segments must be registered alongside /:id
			rooms.GET("/available", h.Rooms.GetAvailableRooms)
			rooms.GET("/hotel/:hotelId", h.Rooms.GetRoomsByHotelID)
			rooms.GET("/type/:roomTypeId", h.Rooms.GetRoomsByRoomType)
			rooms.GET("/:id", h.Rooms.GetRoom)

			rooms.POST("", protect, adminOnly, h.Rooms.CreateRoom)
			rooms.POST("/bulk", protect, adminOnly, h.Rooms.BulkCreateRooms)
			rooms.PUT("/:id", protect, adminOnly, h.Rooms.UpdateRoom)
			rooms.DELETE("/:id", protect, adminOnly, h.Rooms.DeleteRoom)
			rooms.PATCH("/:id/status", protect, adminOnly, h.Rooms.UpdateRoomStatus)
			rooms.POST("/:id/maintenance", protect, adminOnly, h.Rooms.SetRoomMaintenance)
		}

		roomTypes := api.Group("/room-types")
		{
			roomTypes.GET("", h.RoomTypes.GetRoomTypes)
			roomTypes.POST("", protect, adminOnly, h.RoomTypes.CreateRoomType)
			roomTypes.DELETE("/:id", protect, adminOnly, h.RoomTypes.DeleteRoomType)
		}

		hotels := api.Group("/hotels")
		{
			hotels.GET("", h.Hotels.GetHotels)
			hotels.GET("/:id", h.Hotels.GetHotel)
			hotels.POST("", protect, adminOnly, h.Hotels.CreateHotel)
			hotels.PUT("/:id", protect, adminOnly, h.Hotels.UpdateHotel)
		}
	}

	return r
}
