package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/schema"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucDirectory "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/directory"
)

// App carries the process-wide singletons built in main.
type App struct {
	DB      *gorm.DB
	Config  *config.Config
	Log     *zap.Logger
	Metrics *metrics.Metrics
	KV      cache.KV
	Audit   audit.Sink
	Schema  *schema.Manager
	Tokens  *auth.Tokens
	Clock   timezone.Clock
}

func RegisterRoutes(r *gin.Engine, app App) {
	cfg := app.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestLogger(app.Log, app.Metrics),
		middleware.CORS(cfg.CORSOrigins),
		middleware.Timeout(cfg.RequestTimeout),
	)

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(app.DB)
	directoryRepo := infraRepo.NewDirectoryGormRepository(app.DB)
	auditReader := audit.New(app.DB)
	hasher := auth.BcryptHasher{}

	// ======================================================
	// USE CASES
	// ======================================================
	deps := ucAppointment.Deps{
		Store: appointmentRepo,
		Audit: app.Audit,
		Clock: app.Clock,
		Policy: domain.BookingPolicy{
			LookaheadMonths: cfg.LookaheadMonths,
			StepMinutes:     cfg.SlotStepMinutes,
		},
		Metrics: app.Metrics,
		Log:     app.Log,
	}

	doctors := ucDirectory.NewDoctors(directoryRepo, app.KV, cfg.CacheTTL, app.Audit, app.Log)
	users := ucDirectory.NewUsers(directoryRepo, hasher, app.Audit)
	categories := ucDirectory.NewCategories(directoryRepo, app.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(app.Schema)
	authHandler := handlers.NewAuthHandler(users, app.Tokens)
	categoryHandler := handlers.NewCategoryHandler(categories)
	doctorHandler := handlers.NewDoctorHandler(doctors, ucAppointment.NewCheckAvailability(deps, doctors))
	appointmentHandler := handlers.NewAppointmentHandler(deps)
	adminHandler := handlers.NewAdminHandler(
		users,
		ucAppointment.NewGetStats(deps),
		ucAppointment.NewGetDashboard(deps),
		app.Schema,
		doctors,
		auditReader,
		app.Audit,
		app.Log,
	)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(app.Metrics.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		public := api.Group("/")
		public.Use(middleware.OptionalAuth(app.Tokens))
		{
			public.GET("/categories", categoryHandler.List)
			public.GET("/categories/:id", categoryHandler.Get)

			public.GET("/doctors", doctorHandler.List)
			public.GET("/doctors/:id", doctorHandler.Get)
			public.GET("/doctors/:id/slots", doctorHandler.Slots)
		}

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(app.Tokens))
		{
			secured.GET("/me", authHandler.Me)
			secured.PATCH("/me", authHandler.UpdateMe)

			secured.POST("/appointments", appointmentHandler.Book)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(app.Tokens), middleware.RequireAdmin())
		{
			admin.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			admin.PATCH("/appointments/:id/no-show", appointmentHandler.NoShow)
			admin.DELETE("/appointments/:id", appointmentHandler.Delete)

			admin.POST("/doctors", doctorHandler.Create)
			admin.PATCH("/doctors/:id", doctorHandler.Update)
			admin.DELETE("/doctors/:id", doctorHandler.Deactivate)

			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users", adminHandler.CreateUser)
			admin.PATCH("/users/:id/active", adminHandler.SetUserActive)

			admin.POST("/categories", categoryHandler.Create)

			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/audit-logs", adminHandler.AuditLogs)

			admin.POST("/maintenance/reset", adminHandler.Reset)
			admin.POST("/maintenance/clear", adminHandler.Clear)
		}
	}
}
