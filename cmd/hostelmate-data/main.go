package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hostelmate-data/common/database"
	"hostelmate-data/common/logger"
	commonredis "hostelmate-data/common/redis"
	"hostelmate-data/internal/cache"
	"hostelmate-data/internal/config"
	httpapi "hostelmate-data/internal/http"
	"hostelmate-data/internal/repository"
	"hostelmate-data/internal/service"

	"github.com/go-redis/redis/v8"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, cfg.ServiceName)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. 存储：DB 不可用时回退到内存仓储（仅用于本地联调，进程退出即丢失）
	var db *sql.DB
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(ctx, &cfg.Database); err == nil {
			db = d
			log.Info("DB enabled for hostelmate-data")
		} else {
			log.Warn("DB enabled but connection failed, falling back to memory store", zap.Error(err))
		}
	}
	var repos *repository.Repositories
	if db != nil {
		repos = repository.NewPostgresRepositories(db)
	} else {
		repos = repository.NewMemoryRepositories()
	}

	// 2. 仪表盘缓存：Redis 不可用时不缓存
	var redisClient *redis.Client
	var dashboardCache *cache.DashboardCache
	if cfg.Dashboard.CacheEnabled {
		redisClient = commonredis.NewRedisClient(&cfg.Redis)
		if err := commonredis.Ping(ctx, redisClient); err != nil {
			log.Warn("Redis unavailable, dashboard cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
			_ = redisClient.Close()
			redisClient = nil
		} else {
			dashboardCache = cache.NewDashboardCache(cache.NewRedisKV(redisClient), cfg.Dashboard.CacheTTL, log)
		}
	}

	// 3. 服务与路由
	svcs := service.NewServices(repos, time.Now, dashboardCache, cfg.Dashboard.RequireSubscription, log)

	auth := httpapi.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, log)
	router := httpapi.NewRouter(auth, log)
	router.RegisterHealthRoutes()
	router.RegisterMeRoutes(httpapi.NewMeHandler(svcs.Me, log))
	router.RegisterDashboardRoutes(httpapi.NewDashboardHandler(svcs.Dashboard, log))
	router.RegisterEntityRoutes(svcs)

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.HTTP.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}).Handler(router)

	// 4. 定时任务：订阅过期清理
	sweeper := service.NewSubscriptionSweeper(repos.Subscriptions, log)
	if cfg.Subscription.SweepCron != "" {
		if err := sweeper.Start(cfg.Subscription.SweepCron); err != nil {
			log.Fatal("Invalid SUBSCRIPTION_SWEEP_CRON", zap.String("schedule", cfg.Subscription.SweepCron), zap.Error(err))
		}
		defer sweeper.Stop()
	}

	srv := service.NewServer(cfg.HTTP.Addr, handler, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Error("HTTP server failed", zap.Error(err))
		}
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	_ = commonredis.Close(redisClient)
	_ = database.Close(db)
}
