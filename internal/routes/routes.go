package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/NavalhaLabs/navalha-agenda/internal/audit"
	"github.com/NavalhaLabs/navalha-agenda/internal/cache"
	"github.com/NavalhaLabs/navalha-agenda/internal/config"
	"github.com/NavalhaLabs/navalha-agenda/internal/handlers"
	infraRepo "github.com/NavalhaLabs/navalha-agenda/internal/infra/repository"
	"github.com/NavalhaLabs/navalha-agenda/internal/logger"
	"github.com/NavalhaLabs/navalha-agenda/internal/middleware"
	"github.com/NavalhaLabs/navalha-agenda/internal/payments"
	"github.com/NavalhaLabs/navalha-agenda/internal/schedule"
	"github.com/NavalhaLabs/navalha-agenda/internal/storage"
	"github.com/NavalhaLabs/navalha-agenda/internal/timezone"
	ucAppointment "github.com/NavalhaLabs/navalha-agenda/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	availabilityCache := cache.NewAvailabilityCache(cfg)
	mediaStore := storage.NewMediaStore(cfg)

	depositService, err := payments.NewDepositService(cfg.MPAccessToken)
	if err != nil {
		logger.L().Warn("mercadopago disabled", zap.Error(err))
		depositService = nil
	}

	// ======================================================
	// 📅 DISPONIBILIDADE
	// ======================================================
	policy := schedule.DefaultPolicy()
	clock := schedule.NewLocationClock(timezone.Location(timezone.DefaultTimezone))

	slotGenerator := schedule.NewGenerator(
		appointmentRepo, // working hours
		appointmentRepo, // bookings
		appointmentRepo, // time off
		clock,
		policy,
	)
	aggregator := schedule.NewAggregator(slotGenerator, appointmentRepo)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
		availabilityCache,
		depositService,
		policy,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
		availabilityCache,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
	)

	getAvailabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		aggregator,
	)

	dayAvailabilityUC := ucAppointment.NewDayAvailability(
		appointmentRepo,
		aggregator,
		availabilityCache,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	barbershopHandler := handlers.NewBarbershopHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	barberHandler := handlers.NewBarberHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	timeOffHandler := handlers.NewTimeOffHandler(db)
	mediaHandler := handlers.NewMediaHandler(db, mediaStore)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		createAppointmentUC,
		cancelAppointmentUC,
		getAvailabilityUC,
		dayAvailabilityUC,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.AvailabilityForClient)
			publicAPI.GET("/:slug/calendar", publicHandler.CalendarForClient)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/:slug/appointments/:code", publicHandler.GetAppointmentByCode)
			publicAPI.PATCH("/:slug/appointments/:code/cancel", publicHandler.CancelAppointmentByCode)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.POST("/me/avatar", mediaHandler.UploadAvatar)

			secured.GET("/me/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/me/barbershop", barbershopHandler.UpdateMeBarbershop)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.PUT("/me/services/:id/barbers", serviceHandler.AssignBarbers)

			secured.GET("/me/barbers", barberHandler.List)
			secured.POST("/me/barbers", barberHandler.Create)
			secured.PATCH("/me/barbers/:id", barberHandler.Update)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			secured.GET("/me/time-off", timeOffHandler.List)
			secured.POST("/me/time-off", timeOffHandler.Create)
			secured.DELETE("/me/time-off/:id", timeOffHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
