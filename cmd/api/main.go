package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/stockchange-api/internal/application/stockchange"
	"github.com/jhoicas/stockchange-api/internal/domain/repository"
	infrapdf "github.com/jhoicas/stockchange-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockchange-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/stockchange-api/internal/infrastructure/redis"
	"github.com/jhoicas/stockchange-api/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/stockchange-api/internal/interfaces/http"
	"github.com/jhoicas/stockchange-api/pkg/config"
	"github.com/jhoicas/stockchange-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("serial_oracle", cfg.Oracle.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	redisClient, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()

	// Oráculo de existencia de seriales: la BD principal o el catálogo local.
	var counter repository.SerialNumberCounter = postgres.NewSerialNumberRepository(pool)
	if cfg.Oracle.Driver == config.OracleDriverSQLite {
		catalogue, err := sqlite.Open(cfg.Oracle.CataloguePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Oracle.CataloguePath).Msg("abrir catálogo de seriales")
		}
		defer catalogue.Close()
		counter = catalogue
	}

	stockChangeUC := stockchange.NewUseCase(
		infraredis.NewSessionStore(redisClient, cfg.Session.TTL()),
		postgres.NewStockRecordRepository(pool),
		counter,
		postgres.NewTxRunner(pool),
		infrapdf.NewMarotoPDFGenerator(),
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockChangeUC: stockChangeUC,
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
		AppName:       cfg.App.Name,
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
