package app

import (
	"Gin_postgres_redis_library_lending/db"
	"Gin_postgres_redis_library_lending/session"
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// 简化别名，便于 handlers 调用
type Ctx = gin.Context
type H = gin.H

// App 聚合各依赖
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config Config

	kioskSess *session.KioskStore
}

// Config 从环境变量读取
type Config struct {
	RedisAddr    string
	RedisPwd     string
	WebOrigin    string
	KioskTTL     time.Duration
	SeenThrottle time.Duration
}

func (a *App) KioskSessions() *session.KioskStore { return a.kioskSess }

func MustNew() *App {
	cfg := loadConfig()

	// --- DB: Postgres ---
	dbConn := db.ConnectDB()

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	// --- Gin ---
	r := gin.Default()
	useCORS(r, cfg.WebOrigin)
	a := &App{
		Router: r, DB: dbConn, RDB: rdb, Config: cfg,
		kioskSess: session.NewKioskStore(rdb, cfg.KioskTTL),
	}
	return a
}

func (a *App) Close() { _ = a.RDB.Close() }

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	// 自助机会话：员工走开后自动过期
	ttlSec := get("KIOSK_SESSION_TTL_SECONDS", "600")
	ttl := 10 * time.Minute
	if d, err := time.ParseDuration(ttlSec + "s"); err == nil {
		ttl = d
	}
	throttleSec := get("SEEN_THROTTLE_SECONDS", "300")
	throttle := 5 * time.Minute
	if d, err := time.ParseDuration(throttleSec + "s"); err == nil {
		throttle = d
	}
	return Config{
		RedisAddr:    get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:     os.Getenv("REDIS_PASSWORD"),
		WebOrigin:    get("WEB_ORIGIN", "http://localhost:5173"),
		KioskTTL:     ttl,
		SeenThrottle: throttle,
	}
}
