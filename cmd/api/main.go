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
	"github.com/robfig/cron/v3"
	"github.com/tu-usuario/warehouse-ledger/internal/application/alerts"
	"github.com/tu-usuario/warehouse-ledger/internal/application/audit"
	"github.com/tu-usuario/warehouse-ledger/internal/application/auth"
	"github.com/tu-usuario/warehouse-ledger/internal/application/ledger"
	"github.com/tu-usuario/warehouse-ledger/internal/application/usecase"
	infrapdf "github.com/tu-usuario/warehouse-ledger/internal/infrastructure/pdf"
	"github.com/tu-usuario/warehouse-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/warehouse-ledger/internal/interfaces/http"
	"github.com/tu-usuario/warehouse-ledger/pkg/config"
	"github.com/tu-usuario/warehouse-ledger/pkg/logger"
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

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones de esquema")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	stockRepo := postgres.NewStockLineRepository(pool)
	auditRepo := postgres.NewAuditRecordRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRequestRepository(pool)
	transferRepo := postgres.NewInternalTransferRepository(pool)
	alertRepo := postgres.NewStockAlertRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	engine := ledger.NewEngine(txRunner, productRepo, locationRepo, log)
	adjustmentUC := ledger.NewAdjustmentUseCase(
		txRunner, adjustmentRepo, stockRepo, productRepo, locationRepo,
		cfg.Ledger.AdjustmentTolerance, log,
	)
	transferUC := ledger.NewTransferUseCase(txRunner, transferRepo, productRepo, locationRepo, log)
	evaluator := alerts.NewEvaluator(txRunner, alertRepo, productRepo, log)

	auditExporter := infrapdf.NewAuditTrailExporter()
	auditUC := audit.NewQueryUseCase(auditRepo, auditExporter)

	productUC := usecase.NewProductUseCase(productRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Barrido periódico de alertas de reorden.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Alerts.CronSpec, func() {
		open, err := evaluator.EvaluateAll(context.Background())
		if err != nil {
			log.Error().Err(err).Msg("barrido de alertas falló")
			return
		}
		log.Info().Int("open_alerts", open).Msg("barrido de alertas completado")
	}); err != nil {
		log.Fatal().Err(err).Str("spec", cfg.Alerts.CronSpec).Msg("expresión cron inválida")
	}
	scheduler.Start()
	defer scheduler.Stop()

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
		Title:    "Warehouse Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		Engine:       engine,
		AdjustmentUC: adjustmentUC,
		TransferUC:   transferUC,
		Evaluator:    evaluator,
		AuditUC:      auditUC,
		ProductUC:    productUC,
		LocationUC:   locationUC,
		JWTSecret:    cfg.JWT.Secret,
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
