package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nightly-app/nightly-admin-api/internal/application/onboarding"
	"github.com/nightly-app/nightly-admin-api/internal/application/ports"
	"github.com/nightly-app/nightly-admin-api/internal/application/roles"
	"github.com/nightly-app/nightly-admin-api/internal/application/usecase"
	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
	"github.com/nightly-app/nightly-admin-api/pkg/config"
	"github.com/nightly-app/nightly-admin-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Auth          ports.AuthProvider
	Resolver      *roles.Resolver
	OnboardingUC  *onboarding.UseCase
	LocalUC       *usecase.LocalUseCase
	CodigoUC      *usecase.CodigoUseCase
	PlanUC        *usecase.PlanUseCase
	PropietarioUC *usecase.PropietarioUseCase
	JWT           config.JWTConfig
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth y onboarding (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.Auth, deps.Resolver, deps.JWT, deps.Log)
	onboardingHandler := NewOnboardingHandler(deps.OnboardingUC, deps.Resolver, deps.JWT, deps.Log)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/registro", onboardingHandler.Registrar)

	// Rutas protegidas: token del panel + rol resuelto contra la DB en cada request
	protected := api.Group("/", AuthMiddleware(deps.JWT.Secret), RolMiddleware(deps.Resolver))
	authGroup2 := protected.Group("/auth")
	authGroup2.Get("/rol", authHandler.Rol)

	// Panel de super admins
	admin := protected.Group("/admin", RequireTipo(entity.TipoSuperAdmin))
	adminHandler := NewAdminHandler(deps.LocalUC, deps.CodigoUC, deps.PlanUC)
	admin.Get("/locales", adminHandler.ListarLocales)
	admin.Post("/locales", adminHandler.CrearLocal)
	admin.Post("/locales/rapido", adminHandler.CrearLocalRapido)
	admin.Patch("/locales/:id", adminHandler.ActualizarLocal)
	admin.Delete("/locales/:id", adminHandler.EliminarLocal)
	admin.Post("/codigos", adminHandler.GenerarCodigo)
	admin.Patch("/propietarios/:id/plan", adminHandler.AsignarPlan)

	// Vista del propietario
	owner := protected.Group("/owner/local", RequireTipo(entity.TipoPropietario))
	ownerHandler := NewOwnerHandler(deps.PropietarioUC)
	owner.Get("/", ownerHandler.MiLocal)
	owner.Patch("/", ownerHandler.Actualizar)
	owner.Post("/fotos/presign", ownerHandler.PresignFoto)
	owner.Post("/fotos/confirm", ownerHandler.ConfirmarFoto)
	owner.Delete("/fotos", ownerHandler.EliminarFoto)
	owner.Post("/boost", ownerHandler.Boost)
}
