package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTTTL = 24 * time.Hour

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr          string
	Port                string
	DatabaseDriver      string
	DatabasePath        string
	DatabaseDSN         string
	SessionSecret       string
	JWTSecret           string
	JWTTTL              time.Duration
	GinMode             string
	TemplateGlob        string
	StaticDir           string
	FoodDataPath        string
	LogLevel            string
	DemoPatientEmail    string
	DemoPatientPassword string
}

// Load 从 .env 与环境变量读取应用配置，并为缺失项提供安全的默认值。
// .env 不存在时直接忽略。
func Load() AppConfig {
	_ = godotenv.Load()

	port := envOrDefault("PORT", "8080")
	listenAddr := envOrDefault("LISTEN_ADDR", fmt.Sprintf(":%s", port))
	sessionSecret := envOrDefault("SESSION_SECRET", "prakriti-dev-secret")

	ttl := defaultJWTTTL
	if raw := strings.TrimSpace(os.Getenv("JWT_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	return AppConfig{
		ListenAddr:          listenAddr,
		Port:                port,
		DatabaseDriver:      strings.ToLower(envOrDefault("DATABASE_DRIVER", "sqlite")),
		DatabasePath:        envOrDefault("DATABASE_PATH", "prakriti.db"),
		DatabaseDSN:         strings.TrimSpace(os.Getenv("DATABASE_DSN")),
		SessionSecret:       sessionSecret,
		JWTSecret:           envOrDefault("JWT_SECRET", sessionSecret),
		JWTTTL:              ttl,
		GinMode:             envOrDefault("GIN_MODE", "release"),
		TemplateGlob:        envOrDefault("TEMPLATE_GLOB", "web/template/*.html"),
		StaticDir:           envOrDefault("STATIC_DIR", "web/static"),
		FoodDataPath:        strings.TrimSpace(os.Getenv("FOOD_DATA_PATH")),
		LogLevel:            envOrDefault("LOG_LEVEL", "info"),
		DemoPatientEmail:    strings.TrimSpace(os.Getenv("DEMO_PATIENT_EMAIL")),
		DemoPatientPassword: strings.TrimSpace(os.Getenv("DEMO_PATIENT_PASSWORD")),
	}
}

// DatabaseTarget 返回当前驱动对应的连接串：sqlite 使用文件路径，postgres 使用 DSN。
func (c AppConfig) DatabaseTarget() string {
	if c.DatabaseDriver == "postgres" {
		return c.DatabaseDSN
	}
	return c.DatabasePath
}

func envOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
