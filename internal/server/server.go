package server

import (
	"context"
	"net/http"

	"emvibook/internal/auth"
	"emvibook/internal/calendar"
	"emvibook/internal/catalog"
	"emvibook/internal/config"
	"emvibook/internal/engine"
	"emvibook/internal/events"
	"emvibook/internal/ledger"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	engine *engine.Service
}

func New(db *sqlx.DB, cfg *config.Config, emitter *events.Emitter) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	calendarService := calendar.NewService(calendar.NewRepository(db))
	catalogService := catalog.NewService(catalog.NewRepository(db))
	ledgerService := ledger.NewService(ledger.NewRepository(db), cfg.PendingTTL, cfg.CancellationCutoff)
	engineService := engine.NewService(calendarService, catalogService, ledgerService, emitter, cfg.MinIncrement)

	calendarHandler := calendar.NewHandler(engineService)
	catalogHandler := catalog.NewHandler(catalogService)
	engineHandler := engine.NewHandler(engineService)

	// Public: browsing availability and offerings needs no account.
	router.GET("/artists/:artistID/availability", engineHandler.GetAvailability)
	router.GET("/artists/:artistID/services", catalogHandler.ListServices)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.POST("/bookings", engineHandler.RequestBooking)
		protected.GET("/bookings", engineHandler.ListClientBookings)
		protected.GET("/bookings/:bookingID", engineHandler.GetBooking)
		protected.POST("/bookings/:bookingID/cancel", engineHandler.CancelBooking)
	}

	artistMiddleware := auth.RequireRole(auth.RoleArtist)
	artist := router.Group("/artist")
	artist.Use(authMiddleware, artistMiddleware)
	{
		artist.GET("/schedule", engineHandler.ListArtistBookings)
		artist.POST("/bookings/:bookingID/confirm", engineHandler.ConfirmBooking)
		artist.POST("/bookings/:bookingID/decline", engineHandler.DeclineBooking)

		artist.POST("/availability/rules", calendarHandler.SetRule)
		artist.GET("/availability/rules", calendarHandler.ListRules)
		artist.DELETE("/availability/rules/:ruleID", calendarHandler.RemoveRule)
		artist.POST("/availability/time-off", calendarHandler.AddTimeOff)
		artist.GET("/availability/time-off", calendarHandler.ListTimeOff)
		artist.DELETE("/availability/time-off/:exceptionID", calendarHandler.RemoveTimeOff)

		artist.POST("/services", catalogHandler.CreateService)
		artist.PATCH("/services/:serviceID", catalogHandler.UpdateService)
		artist.DELETE("/services/:serviceID", catalogHandler.DeleteService)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: router,
		},
		db:     db,
		config: cfg,
		engine: engineService,
	}
}

// Engine exposes the scheduling engine so the caller can run its sweeper.
func (s *Server) Engine() *engine.Service {
	return s.engine
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
