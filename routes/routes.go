package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-booking-api/controllers"
	"hotel-booking-api/middleware"
)

// SetupRouter wires the controller instances onto the gin engine.
func SetupRouter(
	bc *controllers.BookingController,
	gc *controllers.GuestController,
	rc *controllers.RoomController,
	rtc *controllers.RoomTypeController,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	allowCredentials := true
	for _, origin := range corsOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			rooms.POST("/free", bc.GetFreeRooms)
			rooms.GET("", rc.GetRooms)
			rooms.GET("/:id", rc.GetRoomByID)
			rooms.POST("", rc.CreateRoom)
			rooms.PATCH("/:id", rc.UpdateRoom)
			rooms.PUT("/:id", rc.UpdateRoom)
			rooms.DELETE("/:id", rc.DeleteRoom)
		}

		roomTypes := api.Group("/room-types")
		{
			roomTypes.GET("", rtc.GetRoomTypes)
			roomTypes.POST("", rtc.CreateRoomType)
			roomTypes.DELETE("/:id", rtc.DeleteRoomType)
		}

		guests := api.Group("/guests")
		{
			guests.POST("", gc.CreateGuest)
			guests.GET("", gc.GetGuests)
			guests.GET("/:id", gc.GetGuestByID)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.POST("/confirm", bc.ConfirmBooking)
			bookings.GET("/:id", bc.GetBookingDetails)
			bookings.DELETE("/:id", bc.CancelBooking)

			// code route sits under its own prefix so numeric ids never
			// shadow 5-char codes
			bookings.DELETE("/code/:code", bc.CancelBookingByCode)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/hotel", controllers.GetHotelSettings)
			settings.PUT("/hotel", controllers.UpdateHotelSettings)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
		}
	}

	return r
}
