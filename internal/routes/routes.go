package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aurelia-labs/salon-scheduler/internal/audit"
	"github.com/aurelia-labs/salon-scheduler/internal/cache"
	"github.com/aurelia-labs/salon-scheduler/internal/config"
	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
	"github.com/aurelia-labs/salon-scheduler/internal/handlers"
	infraRepo "github.com/aurelia-labs/salon-scheduler/internal/infra/repository"
	"github.com/aurelia-labs/salon-scheduler/internal/middleware"
	"github.com/aurelia-labs/salon-scheduler/internal/notify"
	ucAnalytics "github.com/aurelia-labs/salon-scheduler/internal/usecase/analytics"
	ucAppointment "github.com/aurelia-labs/salon-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	analyticsCache *cache.AnalyticsCache,
	loc *time.Location,
	logger *slog.Logger,
) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	catalogRepo := infraRepo.NewCatalogGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	notifier := notify.NewLogNotifier(logger)

	checker := schedule.NewChecker(scheduleRepo, appointmentRepo, loc)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	checkAvailabilityUC := ucAppointment.NewCheckAvailability(checker)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		catalogRepo,
		checker,
		notifier,
		auditDispatcher,
		analyticsCache,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		catalogRepo,
		checker,
		auditDispatcher,
		analyticsCache,
	)

	transitionStatusUC := ucAppointment.NewTransitionStatus(
		appointmentRepo,
		auditDispatcher,
		analyticsCache,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo,
		auditDispatcher,
		analyticsCache,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	listUpcomingUC := ucAppointment.NewListUpcoming(appointmentRepo)

	// ======================================================
	// USE CASES — ANALYTICS
	// ======================================================
	dashboardUC := ucAnalytics.NewDashboard(appointmentRepo, loc)
	analyticsUC := ucAnalytics.NewAnalytics(appointmentRepo, scheduleRepo, loc)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	userHandler := handlers.NewUserHandler(db)

	clientHandler := handlers.NewClientHandler(db)
	therapistHandler := handlers.NewTherapistHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)

	scheduleHandler := handlers.NewScheduleHandler(scheduleRepo, auditDispatcher, logger)

	appointmentHandler := handlers.NewAppointmentHandler(
		checkAvailabilityUC,
		createAppointmentUC,
		updateAppointmentUC,
		transitionStatusUC,
		deleteAppointmentUC,
		listAppointmentsUC,
		listUpcomingUC,
		loc,
		logger,
	)

	dashboardHandler := handlers.NewDashboardHandler(dashboardUC, analyticsCache, loc, logger)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsUC, analyticsCache, loc, logger)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// ROUTES
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
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

			// ------------------------------
			// CLIENTS
			// ------------------------------
			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PATCH("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			// ------------------------------
			// THERAPISTS
			// ------------------------------
			secured.GET("/therapists", therapistHandler.List)
			secured.POST("/therapists", therapistHandler.Create)
			secured.GET("/therapists/:id", therapistHandler.Get)
			secured.PATCH("/therapists/:id", therapistHandler.Update)
			secured.DELETE("/therapists/:id", therapistHandler.Delete)

			// ------------------------------
			// SERVICES
			// ------------------------------
			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.GET("/services/:id", serviceHandler.Get)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			// ------------------------------
			// SCHEDULE
			// ------------------------------
			secured.GET("/schedule/working-hours", scheduleHandler.GetWorkingHours)
			secured.GET("/schedule/exceptions", scheduleHandler.ListExceptions)

			adminSchedule := secured.Group("/schedule")
			adminSchedule.Use(middleware.RequireRole(middleware.RoleAdmin))
			{
				adminSchedule.PUT("/working-hours", scheduleHandler.UpdateWorkingHours)
				adminSchedule.POST("/exceptions", scheduleHandler.CreateException)
				adminSchedule.DELETE("/exceptions/:id", scheduleHandler.DeleteException)
			}

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments/check-availability", appointmentHandler.CheckAvailability)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/upcoming", appointmentHandler.Upcoming)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			// ------------------------------
			// ANALYTICS
			// ------------------------------
			secured.GET("/dashboard/stats", dashboardHandler.Stats)
			secured.GET("/analytics", analyticsHandler.Report)

			// ------------------------------
			// ADMIN
			// ------------------------------
			adminOnly := secured.Group("/")
			adminOnly.Use(middleware.RequireRole(middleware.RoleAdmin))
			{
				adminOnly.GET("/users", userHandler.List)
				adminOnly.POST("/users", userHandler.Create)
				adminOnly.PATCH("/users/:id", userHandler.Update)
				adminOnly.DELETE("/users/:id", userHandler.Delete)

				adminOnly.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
