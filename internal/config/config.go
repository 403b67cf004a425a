package config

import (
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const EnvProduction = "production"

// Config 应用全部配置，启动时由 Load 从环境变量构建一次，之后只读
type Config struct {
	Server struct {
		Port            string
		Env             string
		Version         string
		ShutdownTimeout time.Duration
		MaxBodyBytes    int64
	}
	Database struct {
		Driver       string // postgres 或 memory
		DSN          string
		MaxOpenConns int
		MaxIdleConns int
	}
	Log struct {
		Level string
	}
	RateLimit struct {
		RPS   float64
		Burst int
	}
	CORS CORSConfig
}

// CORSConfig 显式传给 CORS 中间件的跨域配置
type CORSConfig struct {
	Origins           []string
	Patterns          []*regexp.Regexp
	AllowUnknownInDev bool
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8081",
	"https://localhost:8081",
	"https://delipucashserver.vercel.app",
}

// 移动端常见的 origin 形式：Expo、Vercel 预览、Capacitor、Ionic、Cordova
var defaultOriginPatterns = []string{
	`^exp://.*`,
	`^https://.*\.vercel\.app$`,
	`^capacitor://.*`,
	`^ionic://.*`,
	`^file://.*`,
}

// Load 从环境变量读取配置，未设置时使用默认值
func Load() *Config {
	cfg := &Config{}

	cfg.Server.Port = getEnv("PORT", "8080")
	cfg.Server.Env = getEnv("APP_ENV", getEnv("NODE_ENV", "development"))
	cfg.Server.Version = getEnv("APP_VERSION", "1.0.0")
	cfg.Server.ShutdownTimeout = time.Duration(getInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second
	cfg.Server.MaxBodyBytes = 50 << 20

	cfg.Database.Driver = strings.ToLower(getEnv("STORE_DRIVER", "postgres"))
	cfg.Database.DSN = getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=delipucash port=5432 sslmode=disable TimeZone=UTC")
	cfg.Database.MaxOpenConns = getInt("DB_MAX_OPEN_CONNS", 20)
	cfg.Database.MaxIdleConns = getInt("DB_MAX_IDLE_CONNS", 5)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")

	cfg.RateLimit.RPS = getFloat("RATE_LIMIT_RPS", 20)
	cfg.RateLimit.Burst = getInt("RATE_LIMIT_BURST", 40)

	cfg.CORS = loadCORS(cfg.IsProduction())

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == EnvProduction
}

func loadCORS(production bool) CORSConfig {
	origins := append([]string{}, defaultOrigins...)
	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
		origins = append(origins, frontend)
	}
	for _, origin := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	patterns := make([]*regexp.Regexp, 0, len(defaultOriginPatterns))
	for _, p := range defaultOriginPatterns {
		patterns = append(patterns, regexp.MustCompile(p))
	}

	return CORSConfig{
		Origins:           origins,
		Patterns:          patterns,
		AllowUnknownInDev: !production,
	}
}

// Allowed 判断 origin 是否命中白名单或正则
func (c CORSConfig) Allowed(origin string) bool {
	for _, o := range c.Origins {
		if o == origin {
			return true
		}
	}
	for _, p := range c.Patterns {
		if p.MatchString(origin) {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("WARNING: invalid %s=%q, using default %d", key, raw, fallback)
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("WARNING: invalid %s=%q, using default %g", key, raw, fallback)
		return fallback
	}
	return v
}
