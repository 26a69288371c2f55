package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appposting "github.com/omplast/stores-api/internal/application/posting"
	appstock "github.com/omplast/stores-api/internal/application/stock"
	"github.com/omplast/stores-api/internal/infrastructure/postgres"
	httpRouter "github.com/omplast/stores-api/internal/interfaces/http"
	"github.com/omplast/stores-api/pkg/config"
	"github.com/omplast/stores-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	docRepo := postgres.NewDocumentRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// One adapter per postable document type. MIS and the outbound challans
	// keep the observed lenient behavior: unmatched free-text lines warn and
	// skip instead of failing the document.
	engine := appposting.NewEngine(txRunner, docRepo, log,
		appposting.NewGRNAdapter(docRepo),
		appposting.NewMISAdapter(docRepo, appposting.Lenient),
		appposting.NewFGNAdapter(docRepo, bomRepo),
		appposting.NewDispatchAdapter(docRepo, itemRepo, appposting.Lenient),
		appposting.NewJobWorkAdapter(docRepo, itemRepo, appposting.Lenient),
	)
	stockUC := appstock.NewQueryUseCase(balanceRepo, movementRepo, itemRepo)
	rebuildUC := appstock.NewRebuildUseCase(txRunner, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engine:    engine,
		StockUC:   stockUC,
		RebuildUC: rebuildUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
