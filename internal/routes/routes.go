package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/slotline/booking-api/internal/audit"
	"github.com/slotline/booking-api/internal/changefeed"
	"github.com/slotline/booking-api/internal/config"
	"github.com/slotline/booking-api/internal/handlers"
	infraRepo "github.com/slotline/booking-api/internal/infra/repository"
	"github.com/slotline/booking-api/internal/middleware"
	ucAppointment "github.com/slotline/booking-api/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	feed changefeed.Feed,
	logger *zap.Logger,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	getAvailabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	createBookingUC := ucAppointment.NewCreateBooking(
		appointmentRepo,
		auditDispatcher,
		feed,
		logger,
	)

	transitionStatusUC := ucAppointment.NewTransitionStatus(
		appointmentRepo,
		auditDispatcher,
		feed,
		logger,
	)

	reserveQueueSlotUC := ucAppointment.NewReserveQueueSlot(
		appointmentRepo,
		auditDispatcher,
		feed,
		logger,
	)

	assignQueueSlotUC := ucAppointment.NewAssignQueueSlot(
		appointmentRepo,
		auditDispatcher,
		feed,
		logger,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	businessHandler := handlers.NewBusinessHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	subscriptionHandler := handlers.NewSubscriptionHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createBookingUC,
		transitionStatusUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
	)

	queueHandler := handlers.NewQueueHandler(
		reserveQueueSlotUC,
		assignQueueSlotUC,
	)

	paymentHandler := handlers.NewPaymentHandler(appointmentRepo, transitionStatusUC)
	eventsHandler := handlers.NewEventsHandler(feed)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, appointmentRepo, getAvailabilityUC, createBookingUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
		}

		// ------------------------------
		// PAYMENT EVENTS (billing side)
		// ------------------------------
		api.POST("/payments/confirmation", paymentHandler.Confirm)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/business", businessHandler.GetMeBusiness)
			secured.PATCH("/me/business", businessHandler.UpdateMeBusiness)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			secured.GET("/me/subscriptions", subscriptionHandler.List)
			secured.POST("/me/subscriptions", subscriptionHandler.Create)
			secured.PATCH("/me/subscriptions/:id/cancel", subscriptionHandler.Cancel)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)

			// ------------------------------
			// WALK-IN QUEUE
			// ------------------------------
			secured.POST("/me/queue", queueHandler.Reserve)
			secured.PATCH("/me/queue/:id/assign", queueHandler.Assign)

			secured.GET("/me/events", eventsHandler.Stream)
			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
