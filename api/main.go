package main

import (
	"context"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/gudang-mitra/gudang-api/internal/auth"
	"github.com/gudang-mitra/gudang-api/internal/config"
	"github.com/gudang-mitra/gudang-api/internal/db"
	httpapi "github.com/gudang-mitra/gudang-api/internal/http"
	"github.com/gudang-mitra/gudang-api/internal/http/ban"
	"github.com/gudang-mitra/gudang-api/internal/http/handlers"
	rl "github.com/gudang-mitra/gudang-api/internal/http/rate_limiter"
	"github.com/gudang-mitra/gudang-api/internal/redissvc"
	"github.com/gudang-mitra/gudang-api/internal/repo"
)

// @title Gudang Mitra API
// @version 1.0
// @description REST API for warehouse inventory, item requests and tool loans.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	auth.Configure([]byte(cfg.JWTSecret), cfg.TokenTTL)
	ban.Configure(cfg.LoginMaxStrikes, cfg.LoginBanWindow)
	rl.Configure(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	go rl.StartVisitorCleanupLoop()

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	defer rdb.Close()

	redisService := redissvc.NewRedisService(rdb, ctx)
	handlers.SetRedisService(redisService)
	ban.SetRedisService(redisService)
	handlers.SetRefreshStore(auth.NewRefreshStore(rdb))

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatal("❌ Could not run migrations:", err)
	}

	handlers.SetItemRepo(repo.NewPostgresItemRepository(database))
	handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
	handlers.SetCategoryRepo(repo.NewPostgresCategoryRepository(database))
	handlers.SetRequestRepo(repo.NewPostgresRequestRepository(database))
	handlers.SetLoanRepo(repo.NewPostgresLoanRepository(database))
	handlers.SetMovementRepo(repo.NewPostgresMovementRepository(database))
	handlers.SetNotificationRepo(repo.NewPostgresNotificationRepository(database))
	handlers.SetStatsRepo(repo.NewPostgresStatsRepository(database))

	go handlers.StartOverdueLoanSweepLoop()

	r := httpapi.NewRouter()
	log.Println("✅ Server running on", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal(err)
	}
}
