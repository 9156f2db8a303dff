package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-bot/internal/audit"
	"github.com/BruksfildServices01/barber-bot/internal/config"
	"github.com/BruksfildServices01/barber-bot/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-bot/internal/infra/repository"
	"github.com/BruksfildServices01/barber-bot/internal/middleware"
	"github.com/BruksfildServices01/barber-bot/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-bot/internal/usecase/appointment"
)

// Deps are the optional collaborators of the admin API. A nil Images or
// Broadcaster disables POST /broadcasts; a nil Sender cancels bookings
// without telling the customer.
type Deps struct {
	Audit       *audit.Dispatcher
	Images      handlers.ImageStore
	Broadcaster handlers.AdBroadcaster
	Sender      ucAppointment.TextSender
	Logger      *slog.Logger
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	loc := cfg.Location()
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	adminRepo := infraRepo.NewAdminGormRepository(db)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewAvailability(appointmentRepo, loc, nil)
	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo, loc)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo, loc)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		deps.Audit,
		deps.Sender,
		loc,
		deps.Logger,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(adminRepo, cfg.JWTSecret)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC, cfg.WindowDays)
	appointmentHandler := handlers.NewAppointmentHandler(
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		cancelAppointmentUC,
		loc,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(db, loc)
	broadcastHandler := handlers.NewBroadcastHandler(deps.Images, deps.Broadcaster, deps.Audit)

	base := r.Group(cfg.AdminBasePath)

	base.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := base.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			// ------------------------------
			// CATALOG
			// ------------------------------
			handlers.NewResourceHandler[models.User](db, deps.Audit, "user").
				Register(secured, "/users")
			handlers.NewResourceHandler[models.Salon](db, deps.Audit, "salon").
				Register(secured, "/salons")
			handlers.NewResourceHandler[models.Barber](db, deps.Audit, "barber",
				handlers.WithFilters("salon_id"),
				handlers.WithPreload("Salon"),
			).Register(secured, "/barbers")
			handlers.NewResourceHandler[models.Service](db, deps.Audit, "service",
				handlers.WithFilters("salon_id"),
				handlers.WithPreload("Salon"),
			).Register(secured, "/services")
			handlers.NewResourceHandler[models.BarberService](db, deps.Audit, "barber_service",
				handlers.WithFilters("barber_id", "service_id"),
				handlers.WithPreload("Barber", "Service"),
			).Register(secured, "/barber-services")
			handlers.NewResourceHandler[models.BarberAvailability](db, deps.Audit, "barber_availability",
				handlers.WithFilters("barber_id"),
				handlers.WithPreload("Barber"),
			).Register(secured, "/barber-availabilities")

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments/by-date", appointmentHandler.ListByDate)
			secured.GET("/appointments/by-month", appointmentHandler.ListByMonth)
			secured.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
			handlers.NewResourceHandler[models.Appointment](db, deps.Audit, "appointment",
				handlers.WithFilters("barber_id", "user_id", "salon_id"),
				handlers.WithPreload("User", "Salon", "Barber", "Service"),
			).Register(secured, "/appointments")

			// ------------------------------
			// AVAILABILITY
			// ------------------------------
			secured.GET("/barbers/:id/free-dates", availabilityHandler.FreeDates)
			secured.GET("/barbers/:id/free-slots", availabilityHandler.FreeSlots)

			secured.GET("/audit-logs", auditLogsHandler.List)
			secured.POST("/broadcasts", broadcastHandler.Create)
		}
	}
}
