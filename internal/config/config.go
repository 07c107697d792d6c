package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort           string
	DbDriver          string
	DbHost            string
	DbPort            string
	DbUser            string
	DbPassword        string
	DbName            string
	DbParams          string
	DbDSN             string
	DbMaxOpenConns    int
	DbMaxIdleConns    int
	DbConnMaxLifetime time.Duration
	TrustedProxies    []string
	TranslationFolder string
	LogLevel          string
	LogFile           string
	// StrictConflictCheck re-reads a task before reporting an optimistic-lock
	// conflict, so a concurrent delete surfaces as not found.
	StrictConflictCheck bool
	ShutdownTimeout     time.Duration
	// CorsAllowedOrigins lists the browser origins allowed to call the API.
	// "*" allows any origin.
	CorsAllowedOrigins []string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	driver := getEnv("DB_DRIVER", "pgx")

	return &Config{
		AppPort:             getEnv("APP_PORT", "8080"),
		DbDriver:            driver,
		DbHost:              getEnv("DB_HOST", "db"),
		DbPort:              getEnv("DB_PORT", defaultPort(driver)),
		DbUser:              getEnv("DB_USER", "taskmanager"),
		DbPassword:          getEnv("DB_PASSWORD", "taskmanager"),
		DbName:              getEnv("DB_NAME", "taskmanager"),
		DbParams:            getEnv("DB_PARAMS", ""),
		DbDSN:               os.Getenv("DB_DSN"),
		DbMaxOpenConns:      getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DbMaxIdleConns:      getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DbConnMaxLifetime:   getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		TrustedProxies:      parseList(os.Getenv("TRUSTED_PROXIES")),
		CorsAllowedOrigins:  parseList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		TranslationFolder:   getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFile:             os.Getenv("LOG_FILE"),
		StrictConflictCheck: getEnvBool("STRICT_CONFLICT_CHECK", false),
		ShutdownTimeout:     getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

func defaultPort(driver string) string {
	switch driver {
	case "mysql":
		return "3306"
	case "sqlite3":
		return ""
	default:
		return "5432"
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

// parseList splits a comma separated list, dropping blanks.
func parseList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
