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
	"github.com/jhoicas/stock-atelier/internal/application/auth"
	"github.com/jhoicas/stock-atelier/internal/application/catalogue"
	"github.com/jhoicas/stock-atelier/internal/application/stock"
	"github.com/jhoicas/stock-atelier/internal/domain/permission"
	infrapdf "github.com/jhoicas/stock-atelier/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-atelier/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stock-atelier/internal/interfaces/http"
	"github.com/jhoicas/stock-atelier/pkg/config"
	"github.com/jhoicas/stock-atelier/pkg/logger"
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
		Bool("stock_strict", cfg.Stock.Strict).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	articleRepo := postgres.NewArticleRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	applyMovementUC := stock.NewApplyMovementUseCase(txRunner, articleRepo, cfg.Stock.Strict)
	journalUC := stock.NewJournalUseCase(movementRepo)
	catalogueUC := catalogue.NewCatalogueUseCase(articleRepo, lotRepo)

	// PDF: etiqueta imprimible con código de barras Code-128
	labelGenerator := infrapdf.NewLabelGenerator()
	labelUC := catalogue.NewLabelUseCase(articleRepo, labelGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Stock Atelier API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogueUC:   catalogueUC,
		LabelUC:       labelUC,
		ApplyMovement: applyMovementUC,
		JournalUC:     journalUC,
		AuthUC:        authUC,
		Rules:         permission.Default(),
		JWTSecret:     cfg.JWT.Secret,
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
