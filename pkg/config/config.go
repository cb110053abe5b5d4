package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	CORS     CORSConfig
	Database DatabaseConfig
	NATS     NATSConfig // mail queue + project events
	Redis    RedisConfig
	JWT      JWTConfig
	Token    TokenConfig
	Log      LogConfig
}

type AppConfig struct {
	Name string
	Port string
	Env  string
}

// CORSConfig อนุญาตเฉพาะ origin ของ frontend
type CORSConfig struct {
	FrontendURL   string
	AllowNoOrigin bool // true เมื่อรันด้วย --api (Postman, curl)
}

type DatabaseConfig struct {
	Driver     string // postgres, sqlite
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string
}

// NATSConfig configuration สำหรับ NATS JetStream
type NATSConfig struct {
	URL string // nats://localhost:4222
}

// RedisConfig สำหรับเก็บ one-time tokens (confirm account / reset password)
type RedisConfig struct {
	URL      string // redis://localhost:6379
	Password string
	DB       int
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

type TokenConfig struct {
	TTL       time.Duration
	PurgeCron string
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, file, both
	FilePath   string // logs/app.log
	MaxSize    int    // MB
	MaxBackups int    // จำนวน backup files
	MaxAge     int    // วัน
	Compress   bool   // บีบอัด backup
}

func LoadConfig() (*Config, error) {
	// ไม่ error ถ้าไม่มี .env file (ใช้ environment variables แทน)
	_ = godotenv.Load()

	logMaxSize, _ := strconv.Atoi(getEnv("LOG_MAX_SIZE", "100"))
	logMaxBackups, _ := strconv.Atoi(getEnv("LOG_MAX_BACKUPS", "5"))
	logMaxAge, _ := strconv.Atoi(getEnv("LOG_MAX_AGE", "30"))
	logCompress := getEnv("LOG_COMPRESS", "true") == "true"

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	config := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "UpTask API"),
			Port: getEnv("APP_PORT", "4000"),
			Env:  getEnv("APP_ENV", "development"),
		},
		CORS: CORSConfig{
			FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),
			AllowNoOrigin: getEnv("CORS_ALLOW_NO_ORIGIN", "false") == "true",
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			DBName:     getEnv("DB_NAME", "uptask"),
			SSLMode:    getEnv("DB_SSL_MODE", "disable"),
			SQLitePath: getEnv("DB_SQLITE_PATH", "uptask.db"),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret:    getEnv("JWT_SECRET", "your-secret-key"),
			ExpiresIn: getDuration("JWT_EXPIRES_IN", 180*24*time.Hour),
		},
		Token: TokenConfig{
			TTL:       getDuration("TOKEN_TTL", 10*time.Minute),
			PurgeCron: getEnv("TOKEN_PURGE_CRON", "*/15 * * * *"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "both"),
			FilePath:   getEnv("LOG_FILE", "logs/app.log"),
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
			Compress:   logCompress,
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getDuration อ่าน duration แบบ Go ("10m", "4320h") ถ้า parse ไม่ได้ใช้ค่า default
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

// IsDevelopment ตรวจสอบว่าเป็น development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction ตรวจสอบว่าเป็น production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
