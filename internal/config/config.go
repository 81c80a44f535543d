package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName       = "PassGate"
	defaultAppEnv        = "development"
	defaultPort          = "8080"
	defaultLogLevel      = "info"
	defaultShutdownDelay = 10 * time.Second
	defaultMailPort      = 465
	defaultSessionTTL    = 12 * time.Hour
	defaultGuardTTL      = 2 * time.Minute
	defaultWorkers       = 4
	defaultQueueSize     = 64

	defaultMailSubject = "Your new password for {{.ServerName}}"
	defaultMailBody    = "<p>Hello {{.PlayerName}},</p>" +
		"<p>Your new password for <b>{{.ServerName}}</b> is: <b>{{.Password}}</b></p>" +
		"<p>Log in and change it as soon as possible.</p>"

	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
)

// Mail holds the SMTP transport and message template settings consumed by the
// recovery workflow. Host, port and sender account are required whenever the
// feature is enabled; the display name is optional.
type Mail struct {
	Enabled    bool
	Host       string
	Port       int
	Account    string
	Password   string
	SenderName string
	Subject    string
	Body       string
	// Optional PEM file appended to the system certificate pool. A load
	// failure downgrades to the system pool instead of failing the request.
	CAFile string
}

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	ServerName     string
	DatabaseURL    string
	RedisURL       string
	ShutdownPeriod time.Duration
	SessionTTL     time.Duration
	RecoveryGuard  time.Duration
	Workers        int
	QueueSize      int
	Mail           Mail
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:        getEnv("APP_NAME", defaultAppName),
		AppEnv:         getEnv("APP_ENV", defaultAppEnv),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		ServerName:     os.Getenv("SERVER_NAME"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		ShutdownPeriod: defaultShutdownDelay,
		SessionTTL:     defaultSessionTTL,
		RecoveryGuard:  defaultGuardTTL,
		Workers:        defaultWorkers,
		QueueSize:      defaultQueueSize,
		Mail: Mail{
			Enabled:    getEnv("MAIL_ENABLED", "false") == "true",
			Host:       os.Getenv("MAIL_HOST"),
			Port:       defaultMailPort,
			Account:    os.Getenv("MAIL_ACCOUNT"),
			Password:   os.Getenv("MAIL_PASSWORD"),
			SenderName: getEnv("MAIL_SENDER_NAME", defaultAppName),
			Subject:    getEnv("MAIL_SUBJECT", defaultMailSubject),
			Body:       getEnv("MAIL_BODY", defaultMailBody),
			CAFile:     os.Getenv("MAIL_CA_FILE"),
		},
	}

	if v := os.Getenv("MAIL_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MAIL_PORT: %w", err)
		}
		cfg.Mail.Port = port
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = d
	}

	if v := os.Getenv("RECOVERY_GUARD_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RECOVERY_GUARD_TTL: %w", err)
		}
		cfg.RecoveryGuard = d
	}

	if v := os.Getenv("WORKER_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WORKER_COUNT: %w", err)
		}
		cfg.Workers = n
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL must be set")
	}

	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("REDIS_URL must be set")
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// ServerIdentifier resolves the name substituted into recovery mails. The
// configured name wins, then the bound listen address, then a fixed literal.
func (c Config) ServerIdentifier() string {
	if c.ServerName != "" {
		return c.ServerName
	}
	if c.Port != "" {
		return "localhost" + c.Address()
	}
	return "Game Server"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
