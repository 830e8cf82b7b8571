package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"

	"github.com/vpetrenko/catalog_api/internal/apperr"
	"github.com/vpetrenko/catalog_api/internal/config"
	"github.com/vpetrenko/catalog_api/internal/db"
	"github.com/vpetrenko/catalog_api/internal/events"
	"github.com/vpetrenko/catalog_api/internal/httpserver"
	"github.com/vpetrenko/catalog_api/internal/logging"
	"github.com/vpetrenko/catalog_api/internal/middleware"
	"github.com/vpetrenko/catalog_api/internal/models"
	"github.com/vpetrenko/catalog_api/internal/repo"
	"github.com/vpetrenko/catalog_api/internal/seed"
	"github.com/vpetrenko/catalog_api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on process environment")
	}

	root := &cli.Command{
		Name:  "catalog-api",
		Usage: "catalog management REST backend",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server",
				Action: func(ctx context.Context, _ *cli.Command) error { return serve(ctx) },
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, _ *cli.Command) error {
					_, err := openDB(ctx, true)
					return err
				},
			},
			{
				Name:  "seed-admin",
				Usage: "Create the bootstrap admin account",
				Action: func(ctx context.Context, _ *cli.Command) error {
					cfg := config.Load()
					cfg.Validate()
					database, err := openDB(ctx, true)
					if err != nil {
						return err
					}
					return seed.Admin(ctx, &repo.GormRepo{DB: database},
						cfg.SeedAdminName, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDB(ctx context.Context, migrate bool) (*gorm.DB, error) {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	database, err := db.Open(initCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := database.AutoMigrate(models.All()...); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return database, nil
}

func serve(ctx context.Context) error {
	cfg := config.Load()
	cfg.Validate()

	logger := logging.New(cfg.LogLevel)

	database, err := openDB(ctx, true)
	if err != nil {
		return err
	}

	producer := events.NewProducer(cfg.KafkaBrokers, cfg.EventsTopic)
	defer producer.Close()

	gormRepo := &repo.GormRepo{DB: database}

	authSvc := &service.AuthService{
		Repo:          gormRepo,
		Events:        producer,
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	}
	catalogSvc := &service.CatalogService{Repo: gormRepo, Events: producer}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.HTTPErrorHandler = apperr.NewHTTPErrorHandler(cfg.Production())
	e.Use(logging.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Auth:          &httpserver.AuthHTTP{Svc: authSvc},
		Categories:    &httpserver.CategoryHTTP{Svc: catalogSvc},
		SubCategories: &httpserver.SubCategoryHTTP{Svc: catalogSvc},
		Products:      &httpserver.ProductHTTP{Svc: catalogSvc},
		Guard:         middleware.NewGuard(cfg.JWTAccessSecret, gormRepo),
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("server start failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	return nil
}
