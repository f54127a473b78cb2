package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mateohidalgo/landrecords-backend/api/controllers"
	"github.com/mateohidalgo/landrecords-backend/api/routes"
	"github.com/mateohidalgo/landrecords-backend/internal/auth"
	"github.com/mateohidalgo/landrecords-backend/internal/categories"
	"github.com/mateohidalgo/landrecords-backend/internal/documents"
	"github.com/mateohidalgo/landrecords-backend/internal/profiles"
	"github.com/mateohidalgo/landrecords-backend/internal/records"
	"github.com/mateohidalgo/landrecords-backend/internal/users"
	"github.com/mateohidalgo/landrecords-backend/pkg/auth/session"
	"github.com/mateohidalgo/landrecords-backend/pkg/config"
	"github.com/mateohidalgo/landrecords-backend/pkg/db"
	"github.com/mateohidalgo/landrecords-backend/pkg/logger"
	"github.com/mateohidalgo/landrecords-backend/pkg/metrics"
	"github.com/mateohidalgo/landrecords-backend/pkg/migrate"
	"github.com/mateohidalgo/landrecords-backend/pkg/redis"
	"github.com/mateohidalgo/landrecords-backend/pkg/storage"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	blobStore, err := storage.New(cfg.Storage)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap document storage", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	categoryRepo := categories.NewRepository(dbClient.DB())
	recordRepo := records.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		TxRunner:       dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	profileService, err := profiles.NewService(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	recordService, err := records.NewService(records.ServiceParams{
		Repo:       recordRepo,
		Categories: categoryRepo,
		Blobs:      blobStore,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create record service", err)
		os.Exit(1)
	}

	documentService, err := documents.NewService(recordRepo, blobStore)
	if err != nil {
		logg.Error(context.Background(), "failed to create document service", err)
		os.Exit(1)
	}

	readinessProbes := map[string]controllers.Pinger{
		"database": dbClient,
		"redis":    redisClient,
	}
	if probe, ok := blobStore.(controllers.Pinger); ok {
		readinessProbes["storage"] = probe
	}

	promRegistry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(promRegistry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:  cfg,
			Logger:  logg,
			Metrics: httpMetrics,
			ReadinessProbes: readinessProbes,
			SessionManager:  sessionManager,
			AuthService:     authService,
			RegisterService: registerService,
			ProfileService:  profileService,
			CategoryService: categoryService,
			RecordService:   recordService,
			DocumentService: documentService,
			PromRegistry:    promRegistry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
