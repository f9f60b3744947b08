package config

import (
	"fmt"
	"os"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Config ePRO 分诊服务配置
type Config struct {
	// HTTP 监听地址
	HTTPAddr string

	// 存储开关：默认内存仓库（演示环境），打开后使用 PostgreSQL
	DBEnabled bool
	Database  DatabaseConfig

	// Redis 开关：打开后对话历史入 Redis、警示发布到 Streams
	RedisEnabled bool
	Redis        RedisConfig

	// 会话与通知配置
	Chat struct {
		KeyPrefix  string // 对话历史键前缀，如 "epro:chat:"
		TTLSeconds int    // 会话历史 TTL（秒），默认 24小时
	}
	Alert struct {
		Stream     string // 警示通知 Streams 名称，如 "epro:alerts"
		WebhookURL string // 外呼网关地址，空则不启用 webhook 通知
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load 从环境变量加载配置（带默认值）
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.DBEnabled = getEnv("DB_ENABLED", "false") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = 5432
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "epro")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.RedisEnabled = getEnv("REDIS_ENABLED", "false") == "true"
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Chat.KeyPrefix = getEnv("CHAT_KEY_PREFIX", "epro:chat:")
	cfg.Chat.TTLSeconds = 86400 // 24小时

	cfg.Alert.Stream = getEnv("ALERT_STREAM", "epro:alerts")
	cfg.Alert.WebhookURL = getEnv("ALERT_WEBHOOK_URL", "")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
