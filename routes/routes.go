package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"hotel-booking/controllers"
	"hotel-booking/middleware"
)

type Controllers struct {
	Bookings  *controllers.BookingController
	Rooms     *controllers.RoomController
	RoomTypes *controllers.RoomTypeController
	Hotels    *controllers.HotelController
	Users     *controllers.UserController
}

type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	Gatherer       prometheus.Gatherer
	Logger         *logrus.Logger
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

func SetupRouter(ctl Controllers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(opts.Logger))
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	api.Use(middleware.Timeout(opts.RequestTimeout))
	{
		bookings := api.Group("/bookings")
		{
			bookings.POST("", ctl.Bookings.CreateBooking)
			bookings.GET("", ctl.Bookings.ListBookings)
			// must stay before /:id
			bookings.GET("/export", ctl.Bookings.ExportBookings)
			bookings.GET("/reference/:code", ctl.Bookings.GetBookingByReference)
			bookings.PATCH("/:id/dates", ctl.Bookings.UpdateBookingDates)
			bookings.POST("/:id/cancel", ctl.Bookings.CancelBooking)
			bookings.DELETE("/:id", ctl.Bookings.DeleteBooking)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", ctl.Rooms.GetRooms)
			rooms.POST("", ctl.Rooms.CreateRoom)
			rooms.GET("/cleaning-due", ctl.Rooms.GetRoomsDueForCleaning)
			rooms.POST("/:id/cleaned", ctl.Rooms.MarkRoomCleaned)
		}

		api.GET("/room-types", ctl.RoomTypes.GetRoomTypes)
		api.POST("/room-types", ctl.RoomTypes.CreateRoomType)

		api.GET("/hotels", ctl.Hotels.GetHotels)
		api.POST("/hotels", ctl.Hotels.CreateHotel)

		api.POST("/users", ctl.Users.RegisterUser)
		api.GET("/users/:username", ctl.Users.GetUser)

		api.GET("/pricing/quote", ctl.Bookings.QuoteStay)
	}

	return r
}
