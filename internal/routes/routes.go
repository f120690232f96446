package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/studiotrim/agenda-api/internal/audit"
	"github.com/studiotrim/agenda-api/internal/config"
	"github.com/studiotrim/agenda-api/internal/handlers"
	"github.com/studiotrim/agenda-api/internal/infra/repository"
	"github.com/studiotrim/agenda-api/internal/middleware"
	"github.com/studiotrim/agenda-api/internal/payment"
	"github.com/studiotrim/agenda-api/internal/statscache"
	"github.com/studiotrim/agenda-api/internal/storage"
	usecase "github.com/studiotrim/agenda-api/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	repo := repository.NewAppointmentGormRepository(db)
	dispatcher := audit.NewDispatcher(audit.New(db), log)

	cache := statscache.New(cfg)
	files := storage.New(cfg)

	provider, err := payment.New(cfg)
	if err != nil {
		log.Warn("pagamentos desativados", zap.Error(err))
	}

	createUC := usecase.NewCreateAppointment(repo, dispatcher)
	cancelUC := usecase.NewCancelAppointment(repo, dispatcher)
	completeUC := usecase.NewCompleteAppointment(repo, dispatcher)
	deleteUC := usecase.NewDeleteAppointment(repo, dispatcher)
	listByDateUC := usecase.NewListAppointmentsByDate(repo)
	listByMonthUC := usecase.NewListAppointmentsByMonth(repo)
	availabilityUC := usecase.NewGetAvailability(repo)

	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db, files)
	salonHandler := handlers.NewSalonHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	serviceHandler := handlers.NewServiceHandler(db, files)
	appointmentHandler := handlers.NewAppointmentHandler(
		createUC, cancelUC, completeUC, deleteUC,
		listByDateUC, listByMonthUC, cache,
	)
	agendaHandler := handlers.NewAgendaHandler(db)
	statsHandler := handlers.NewStatsHandler(db, cache)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	prefsHandler := handlers.NewNotificationPrefsHandler(db)
	paymentHandler := handlers.NewPaymentHandler(db, provider)
	auditHandler := handlers.NewAuditLogsHandler(db)
	publicHandler := handlers.NewPublicHandler(db, availabilityUC, createUC, cache)

	api := r.Group("/api")

	// ---------- Auth ----------
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// ---------- Painel (autenticado) ----------
	me := api.Group("/me")
	me.Use(middleware.AuthMiddleware(cfg))
	{
		me.GET("", meHandler.GetMe)
		me.PATCH("", meHandler.UpdateMe)
		me.POST("/avatar", meHandler.UploadAvatar)

		me.GET("/salon", salonHandler.GetSalon)
		me.PATCH("/salon", salonHandler.UpdateSalon)

		me.GET("/clients", clientHandler.ListClients)
		me.POST("/clients", clientHandler.CreateClient)

		me.GET("/services", serviceHandler.ListServices)
		me.POST("/services", serviceHandler.CreateService)
		me.PATCH("/services/:id", serviceHandler.UpdateService)
		me.POST("/services/:id/image", serviceHandler.UploadImage)

		me.POST("/appointments", appointmentHandler.Create)
		me.GET("/appointments", appointmentHandler.ListByDate)
		me.GET("/appointments/month", appointmentHandler.ListByMonth)
		me.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		me.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
		me.DELETE("/appointments/:id", appointmentHandler.Delete)
		me.POST("/appointments/:id/payment-link", paymentHandler.CreatePaymentLink)

		me.GET("/agenda", agendaHandler.GetAgenda)
		me.GET("/agenda/calendar", agendaHandler.GetCalendar)

		me.GET("/stats", statsHandler.GetSummary)
		me.GET("/stats/revenue-series", statsHandler.GetRevenueSeries)

		me.GET("/working-hours", workingHoursHandler.GetWorkingHours)
		me.PUT("/working-hours", workingHoursHandler.UpdateWorkingHours)

		me.GET("/notification-prefs", prefsHandler.GetPrefs)
		me.PUT("/notification-prefs", prefsHandler.UpdatePrefs)

		me.GET("/audit-logs", auditHandler.ListLogs)
	}

	// ---------- Página pública de agendamento ----------
	public := api.Group("/public/:slug")
	{
		public.GET("/services", publicHandler.ListServices)
		public.GET("/availability", publicHandler.GetAvailability)
		public.POST("/appointments", publicHandler.CreateAppointment)
	}
}
