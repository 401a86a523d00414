package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contacts-api/config"
	_ "contacts-api/docs" // Important for Swagger
	v1 "contacts-api/internal/delivery/http/v1"
	"contacts-api/internal/domain"
	"contacts-api/internal/repository/memory"
	"contacts-api/internal/repository/mongodb"
	"contacts-api/internal/repository/postgres"
	"contacts-api/internal/usecase"
	"contacts-api/pkg/database"
	"contacts-api/pkg/logger"
	"contacts-api/pkg/redis"
	"contacts-api/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
)

// @title           Contacts API
// @version         1.0.0
// @description     CRUD API for managing contacts.
// @contact.name    API Support
// @contact.email   support@contactsapi.com
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)
	logger.Log.Info("Starting contacts API", "port", cfg.Port, "storage", cfg.StorageDriver)

	// 3. Setup Storage; the server never starts against a broken connection
	contactRepo, closeStorage, err := openStorage(cfg)
	if err != nil {
		logger.Log.Error("Failed to connect to storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer closeStorage()

	// 4. Setup Redis (optional, rate limiting only)
	var cache *goredis.Client
	if cfg.UpstashRedisURL != "" {
		cache, err = redis.NewClient(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting uses in-memory counters", "error", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	// 5. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)
	contactUC := usecase.NewContactUsecase(contactRepo, validate)
	healthUC := usecase.NewHealthUsecase(contactRepo, cache)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Redis:     cache,
		Config:    cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
	}

	go func() {
		logger.Log.Info("Server running",
			"url", "http://localhost:"+cfg.Port,
			"endpoints", []string{
				"GET / - Hello World",
				"GET /contacts - Get all contacts",
				"GET /contacts/:id - Get contact by ID",
				"POST /contacts - Create new contact",
				"PUT /contacts/:id - Update contact",
				"DELETE /contacts/:id - Delete contact",
				"GET /api-docs/index.html - API documentation",
			},
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// openStorage connects the configured backend and returns its repository
// together with a function that releases the connection.
func openStorage(cfg *config.Config) (domain.ContactRepository, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		pool, err := database.NewPostgresConnection(cfg.DBUrl, cfg.DBTimeout)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.DBTimeout)
		defer cancel()
		if err := postgres.EnsureContactSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewContactRepository(pool), pool.Close, nil

	case config.DriverMemory:
		logger.Log.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewContactRepository(), func() {}, nil

	default:
		client, err := database.NewMongoConnection(cfg.MongoURI, cfg.DBTimeout)
		if err != nil {
			return nil, nil, err
		}
		logger.Log.Info("Database selected", "database", cfg.MongoDatabase, "collection", cfg.MongoCollection)
		coll := client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				logger.Log.Warn("MongoDB disconnect failed", "error", err)
			}
		}
		return mongodb.NewContactRepository(coll), closeFn, nil
	}
}
