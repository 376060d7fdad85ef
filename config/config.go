package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, the Postgres database, the XRPL endpoint and the Kafka sink.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=xnftpulse
//	POSTGRES_SSLMODE=disable
//	XRPL_URL=wss://s2-clio.ripple.com:51233/
//	KAFKA_ENABLED=true
//	KAFKA_BROKERS=localhost:9092
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
	XRPL     XRPLConfig     // nft_history source
	Kafka    KafkaConfig    // optional event sink
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port          string // The TCP port the HTTP server will listen on (e.g., "8080")
	RateLimit     int    // Requests per client IP per minute
	ShutdownGrace time.Duration
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server (SUPABASE_HOST is accepted as a fallback).
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication (SUPABASE_PASS is accepted as a fallback).
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: optional full DSN (POSTGRES_URL); overrides the fields above.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// XRPLConfig points at a Clio server exposing nft_history.
type XRPLConfig struct {
	URL       string
	Timeout   time.Duration
	PageLimit int
	MaxPages  int
}

// KafkaConfig controls publishing of acceptances. Disabled by default.
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all required fields.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Falls back to SUPABASE_HOST / SUPABASE_PASS when the POSTGRES_ ones are unset.
//   - Accepts a full POSTGRES_URL that overrides the individual Postgres fields.
//   - Calls validateConfig() to ensure required fields are present.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_RATE_LIMIT", 60)
	viper.SetDefault("SERVER_SHUTDOWN_GRACE", "5s")

	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_DB", "xnftpulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("XRPL_URL", "wss://s2-clio.ripple.com:51233/")
	viper.SetDefault("XRPL_TIMEOUT", "30s")
	viper.SetDefault("XRPL_PAGE_LIMIT", 100)
	viper.SetDefault("XRPL_MAX_PAGES", 50)

	viper.SetDefault("KAFKA_ENABLED", false)
	viper.SetDefault("KAFKA_BROKERS", "localhost:9092")
	viper.SetDefault("KAFKA_TOPIC", "nft.accepted_offers")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port:          viper.GetString("SERVER_PORT"),
			RateLimit:     viper.GetInt("SERVER_RATE_LIMIT"),
			ShutdownGrace: viper.GetDuration("SERVER_SHUTDOWN_GRACE"),
		},
		Postgres: PostgresConfig{
			Host:     firstNonEmpty(viper.GetString("POSTGRES_HOST"), viper.GetString("SUPABASE_HOST"), "localhost"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: firstNonEmpty(viper.GetString("POSTGRES_PASSWORD"), viper.GetString("SUPABASE_PASS"), "postgres"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
			URL:      viper.GetString("POSTGRES_URL"),
		},
		XRPL: XRPLConfig{
			URL:       viper.GetString("XRPL_URL"),
			Timeout:   viper.GetDuration("XRPL_TIMEOUT"),
			PageLimit: viper.GetInt("XRPL_PAGE_LIMIT"),
			MaxPages:  viper.GetInt("XRPL_MAX_PAGES"),
		},
		Kafka: KafkaConfig{
			Enabled: viper.GetBool("KAFKA_ENABLED"),
			Brokers: splitList(viper.GetString("KAFKA_BROKERS")),
			Topic:   viper.GetString("KAFKA_TOPIC"),
		},
	}

	// Validate critical fields
	validateConfig()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// splitList parses a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// missingFields lists the required variables absent from AppConfig.
func missingFields() []string {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if AppConfig.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if AppConfig.XRPL.URL == "" {
		missing = append(missing, "XRPL_URL")
	}
	if AppConfig.Kafka.Enabled {
		if len(AppConfig.Kafka.Brokers) == 0 {
			missing = append(missing, "KAFKA_BROKERS")
		}
		if AppConfig.Kafka.Topic == "" {
			missing = append(missing, "KAFKA_TOPIC")
		}
	}
	return missing
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// Behavior:
//   - Collects missing critical fields via missingFields().
//   - If any are missing, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	if missing := missingFields(); len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
