package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-scheduler/internal/audit"
	"github.com/BruksfildServices01/agenda-scheduler/internal/config"
	"github.com/BruksfildServices01/agenda-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/agenda-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/agenda-scheduler/internal/lock"
	"github.com/BruksfildServices01/agenda-scheduler/internal/middleware"
	ucAccess "github.com/BruksfildServices01/agenda-scheduler/internal/usecase/access"
	ucAppointment "github.com/BruksfildServices01/agenda-scheduler/internal/usecase/appointment"
)

// Deps agrupa os singletons criados no main.
type Deps struct {
	Locker lock.Locker
	Audit  *audit.Dispatcher
	Now    func() time.Time
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Deps) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	accessRepo := infraRepo.NewAccessGormRepository(db)
	auditLogger := audit.New(db)

	policy := ucAccess.NewPolicy(accessRepo, appointmentRepo)

	// ======================================================
	// 🧠 USE CASES (AGENDAMENTOS)
	// ======================================================
	changeStatusUC := ucAppointment.NewChangeStatus(
		appointmentRepo,
		policy,
		deps.Locker,
		deps.Audit,
		deps.Now,
	)

	uc := handlers.AppointmentUseCases{
		Create: ucAppointment.NewCreateAppointment(
			appointmentRepo,
			policy,
			deps.Locker,
			deps.Audit,
			deps.Now,
		),
		Update: ucAppointment.NewUpdateAppointment(
			appointmentRepo,
			policy,
			deps.Locker,
			deps.Audit,
			deps.Now,
		),
		ChangeStatus: changeStatusUC,
		Cancel:       ucAppointment.NewCancelAppointment(changeStatusUC),
		Exclude: ucAppointment.NewExcludeAppointment(
			appointmentRepo,
			policy,
			deps.Audit,
			deps.Now,
		),
		Get:         ucAppointment.NewGetAppointment(appointmentRepo, policy),
		Conflicts:   ucAppointment.NewFindConflicts(appointmentRepo, policy),
		List:        ucAppointment.NewListAppointments(appointmentRepo, policy),
		StaffAgenda: ucAppointment.NewStaffAgenda(appointmentRepo, policy),
		ClientList:  ucAppointment.NewClientAppointments(appointmentRepo, policy),
		History:     ucAppointment.NewAppointmentHistory(appointmentRepo, policy, auditLogger),
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	meHandler := handlers.NewMeHandler(policy)
	appointmentHandler := handlers.NewAppointmentHandler(uc)

	r.NoRoute(handlers.NotFoundRoute)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		api.GET("/me", meHandler.GetMe)

		// ------------------------------
		// 📅 AGENDAMENTOS
		// ------------------------------
		api.GET("/agendamentos", appointmentHandler.List)
		api.POST("/agendamentos", appointmentHandler.Create)
		api.POST("/agendamentos/conflitos", appointmentHandler.CheckConflicts)
		api.GET("/agendamentos/:id", appointmentHandler.Get)
		api.PUT("/agendamentos/:id", appointmentHandler.Update)
		api.PATCH("/agendamentos/:id/status", appointmentHandler.ChangeStatus)
		api.PATCH("/agendamentos/:id/cancelar", appointmentHandler.Cancel)
		api.DELETE("/agendamentos/:id", appointmentHandler.Delete)
		api.GET("/agendamentos/:id/historico", appointmentHandler.History)

		// ------------------------------
		// 👥 AGENDA DO FUNCIONÁRIO / CLIENTE
		// ------------------------------
		api.GET("/funcionarios/:funcionario_id/agenda/:data", appointmentHandler.StaffAgenda)
		api.GET("/clientes/:cliente_id/agendamentos", appointmentHandler.ClientAppointments)
	}
}
