package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/condratcatalina/Afaceri-electronice/internal/config"
	"github.com/condratcatalina/Afaceri-electronice/internal/db"
	"github.com/condratcatalina/Afaceri-electronice/internal/es"
	"github.com/condratcatalina/Afaceri-electronice/internal/events"
	"github.com/condratcatalina/Afaceri-electronice/internal/httpserver"
	"github.com/condratcatalina/Afaceri-electronice/internal/logging"
	authmw "github.com/condratcatalina/Afaceri-electronice/internal/middleware/auth"
	loggingmw "github.com/condratcatalina/Afaceri-electronice/internal/middleware/logging"
	"github.com/condratcatalina/Afaceri-electronice/internal/repo"
	"github.com/condratcatalina/Afaceri-electronice/internal/service"
)

const productsIndex = "products"

func main() {
	cfg := config.Load()

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.RefreshSecret, "REFRESH_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	store := &repo.GormRepo{DB: gdb}

	catalogSvc := &service.CatalogService{Repo: store, ESIndex: productsIndex}
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		catalogSvc.ES = esClient
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	authSvc := &service.AuthService{
		Repo:          store,
		JWTSecret:     cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
	}
	cartSvc := &service.CartService{Repo: store}
	favoritesSvc := &service.FavoritesService{Repo: store}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())
	e.Pre(echomw.RemoveTrailingSlash())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:      &httpserver.AuthHTTP{Svc: authSvc, Producer: producer},
		CatalogHandler:   &httpserver.CatalogHTTP{Svc: catalogSvc, Producer: producer},
		CartHandler:      &httpserver.CartHTTP{Svc: cartSvc, Producer: producer},
		FavoritesHandler: &httpserver.FavoritesHTTP{Svc: favoritesSvc, Producer: producer},
		AuthMW:           authmw.New(cfg.JWTSecret, authSvc),
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("stopped")
}
