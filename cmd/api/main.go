package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/sitegarden/account-service/internal/adapters/blacklist"
	"github.com/sitegarden/account-service/internal/adapters/handler"
	"github.com/sitegarden/account-service/internal/adapters/middleware"
	"github.com/sitegarden/account-service/internal/adapters/repository"
	"github.com/sitegarden/account-service/internal/config"
	"github.com/sitegarden/account-service/internal/core/services"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := repository.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	accountRepo := repository.NewSQLAccountRepository(db)
	websiteRepo := repository.NewSQLWebsiteRepository(db)
	tokenBlacklist := blacklist.NewRedisBlacklist(redisClient)
	hasher := services.NewBcryptHasher()

	authService := services.NewAuthService(accountRepo, hasher, tokenBlacklist, cfg.JWTSecret, cfg.AccessTokenTTL)
	registrationService := services.NewRegistrationService(accountRepo, hasher)
	websiteService := services.NewWebsiteService(websiteRepo, accountRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	authHandler := handler.NewAuthHandler(authService)
	registrationHandler := handler.NewRegistrationHandler(registrationService)
	websiteHandler := handler.NewWebsiteHandler(websiteService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	mux := http.NewServeMux()

	// Health endpoints (orchestrator probes)
	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/health/ready", healthHandler.Ready)
	mux.HandleFunc("/health/live", healthHandler.Live)

	mux.Handle("/metrics", promhttp.Handler())

	// API endpoints
	mux.HandleFunc("/register", registrationHandler.RegisterFullAccount)
	mux.HandleFunc("/register/student", registrationHandler.RegisterStudent)
	mux.HandleFunc("/login", authHandler.Login)
	mux.Handle("/logout", authMiddleware.RequireAccount(authHandler.Logout))
	mux.Handle("/website", authMiddleware.RequireAccount(websiteHandler.Create))
	mux.HandleFunc("/website/", websiteHandler.Get)

	root := middleware.CORS(cfg.AllowedOrigins)(middleware.Metrics(mux))

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, root); err != nil {
		log.Fatalf("Could not start server: %s\n", err)
	}
}
