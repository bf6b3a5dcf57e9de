package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	commoncfg "hostelmate-data/common/config"

	"github.com/joho/godotenv"
)

// Config hostelmate-data（HTTP API）配置
type Config struct {
	ServiceName string
	HTTP        struct {
		Addr               string
		CORSAllowedOrigins []string
	}
	DBEnabled bool
	Database  commoncfg.DatabaseConfig
	Redis     commoncfg.RedisConfig

	// Dashboard 仪表盘配置
	Dashboard struct {
		CacheEnabled bool
		CacheTTL     time.Duration
		// RequireSubscription 为 true 时，非特权用户需要有效订阅才能访问仪表盘
		RequireSubscription bool
	}

	Auth struct {
		JWTSecret string
		JWTIssuer string
	}

	Subscription struct {
		SweepCron string // robfig/cron 表达式，空字符串表示不启用
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load 加载配置：先尝试读取 .env（不存在则忽略），再从环境变量读取并填充默认值
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.ServiceName = getEnv("SERVICE_NAME", "hostelmate-data")
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")
	cfg.HTTP.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"))

	// DB 不可用时回退到内存存储（便于本地联调）
	cfg.DBEnabled = getEnv("DB_ENABLED", "true") == "true"
	cfg.Database.Host = "localhost"
	cfg.Database.Port = 5432
	cfg.Database.User = "postgres"
	cfg.Database.Password = "postgres"
	cfg.Database.Database = "hostelmate"
	cfg.Database.SSLMode = "disable"
	cfg.Database.MaxConns = 20
	cfg.Database.MaxIdle = 5
	cfg.Database.LoadFromEnv("DB")

	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.LoadFromEnv("REDIS")

	cfg.Dashboard.CacheEnabled = getEnv("CACHE_ENABLED", "true") == "true"
	cfg.Dashboard.CacheTTL = time.Duration(parseInt(getEnv("DASHBOARD_CACHE_TTL", "300"), 300)) * time.Second
	if cfg.Dashboard.CacheTTL <= 0 {
		cfg.Dashboard.CacheTTL = 300 * time.Second
	}
	cfg.Dashboard.RequireSubscription = getEnv("REQUIRE_SUBSCRIPTION", "false") == "true"

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.Auth.JWTIssuer = getEnv("JWT_ISSUER", "hostelmate")

	cfg.Subscription.SweepCron = getEnv("SUBSCRIPTION_SWEEP_CRON", "0 3 * * *")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
