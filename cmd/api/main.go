package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nightly-app/nightly-admin-api/internal/application/onboarding"
	"github.com/nightly-app/nightly-admin-api/internal/application/roles"
	"github.com/nightly-app/nightly-admin-api/internal/application/usecase"
	"github.com/nightly-app/nightly-admin-api/internal/infrastructure/postgres"
	"github.com/nightly-app/nightly-admin-api/internal/infrastructure/supabase"
	httpRouter "github.com/nightly-app/nightly-admin-api/internal/interfaces/http"
	"github.com/nightly-app/nightly-admin-api/pkg/config"
	"github.com/nightly-app/nightly-admin-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	adminRepo := postgres.NewSuperAdminRepository(pool)
	perfilRepo := postgres.NewPerfilRepository(pool)
	localRepo := postgres.NewLocalRepository(pool)
	codigoRepo := postgres.NewCodigoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authClient := supabase.NewAuthClient(cfg.Auth)
	storageClient := supabase.NewStorageClient(cfg.Storage, cfg.Auth.ServiceKey)
	notificador := supabase.NewNotificadorClient(cfg.Auth)

	resolver := roles.NewResolver(adminRepo, perfilRepo)
	onboardingUC := onboarding.NewUseCase(codigoRepo, perfilRepo, localRepo, authClient, log)
	localUC := usecase.NewLocalUseCase(localRepo)
	codigoUC := usecase.NewCodigoUseCase(codigoRepo, localRepo, txRunner, localUC)
	planUC := usecase.NewPlanUseCase(perfilRepo)
	propietarioUC := usecase.NewPropietarioUseCase(localRepo, storageClient, notificador)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Nightly Admin API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Auth:          authClient,
		Resolver:      resolver,
		OnboardingUC:  onboardingUC,
		LocalUC:       localUC,
		CodigoUC:      codigoUC,
		PlanUC:        planUC,
		PropietarioUC: propietarioUC,
		JWT:           cfg.JWT,
		Log:           log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
