package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	ServerName        string
	Port              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	GinMode           string
	CORSOrigins       string

	// Database
	DBDriver   string
	DBLogLevel string

	// Reservations
	StrictStatusTransitions bool

	// RabbitMQ (empty URL = events disabled)
	RabbitMQURL       string
	EventsQueue       string
	EventsDialTimeout time.Duration
	MetricsPrefix     string

	LogLevel string
}

// LoadConfig loads .env (optional) then reads environment variables.
// It reports whether a .env file was loaded so main can log it.
func LoadConfig() (*Config, bool) {
	envLoaded := godotenv.Load() == nil

	rabbitURL := envOrDefault("RABBITMQ_URL", "")
	if rabbitURL == "" {
		rabbitURL = envOrDefault("AMQP_URL", "")
	}

	cfg := &Config{
		ServerName:        envOrDefault("SERVER_NAME", "Hotel Reservations"),
		Port:              envOrDefault("PORT", "8080"),
		ReadTimeout:       envSeconds("READ_TIMEOUT", 10),
		ReadHeaderTimeout: envSeconds("READ_HEADER_TIMEOUT", 5),
		WriteTimeout:      envSeconds("WRITE_TIMEOUT", 20),
		IdleTimeout:       envSeconds("IDLE_TIMEOUT", 60),
		ShutdownTimeout:   envSeconds("SHUTDOWN_TIMEOUT", 15),
		GinMode:           envOrDefault("GIN_MODE", "release"),
		CORSOrigins:       envOrDefault("CORS_ORIGINS", ""),

		DBDriver:   strings.ToLower(envOrDefault("DB_DRIVER", DriverMySQL)),
		DBLogLevel: envOrDefault("DB_LOG_LEVEL", "warn"),

		StrictStatusTransitions: envBool("STRICT_STATUS_TRANSITIONS", true),

		RabbitMQURL:       rabbitURL,
		EventsQueue:       envOrDefault("RESERVATION_EVENTS_QUEUE", "reservation.events"),
		EventsDialTimeout: envSeconds("EVENTS_DIAL_TIMEOUT", 3),
		MetricsPrefix:     envOrDefault("METRICS_NAMESPACE", "hotel_reservations"),

		LogLevel: envOrDefault("LOG_LEVEL", "info"),
	}

	return cfg, envLoaded
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(envOrDefault(key, ""))
	if err != nil {
		return def
	}
	return v
}

func envSeconds(key string, def int) time.Duration {
	n, err := strconv.Atoi(envOrDefault(key, ""))
	if err != nil || n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Second
}
