package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/passgate")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.AppName != "PassGate" {
		t.Fatalf("unexpected app name %q", cfg.AppName)
	}
	if cfg.Mail.Enabled {
		t.Fatal("mail must be disabled by default")
	}
	if cfg.Mail.Port != 465 {
		t.Fatalf("unexpected default mail port %d", cfg.Mail.Port)
	}
	if cfg.Mail.Subject == "" || cfg.Mail.Body == "" {
		t.Fatal("expected default mail templates")
	}
	if cfg.RecoveryGuard != 2*time.Minute {
		t.Fatalf("unexpected default guard TTL %v", cfg.RecoveryGuard)
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	if _, err := Load(); err == nil {
		t.Fatal("expected missing DATABASE_URL error")
	}
}

func TestLoadParsesMailSettings(t *testing.T) {
	setRequired(t)
	t.Setenv("MAIL_ENABLED", "true")
	t.Setenv("MAIL_HOST", "smtp.example.com")
	t.Setenv("MAIL_PORT", "587")
	t.Setenv("MAIL_ACCOUNT", "noreply@example.com")
	t.Setenv("MAIL_SENDER_NAME", "Example Server")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Mail.Enabled {
		t.Fatal("expected mail enabled")
	}
	if cfg.Mail.Host != "smtp.example.com" || cfg.Mail.Port != 587 {
		t.Fatalf("unexpected transport %s:%d", cfg.Mail.Host, cfg.Mail.Port)
	}
	if cfg.Mail.SenderName != "Example Server" {
		t.Fatalf("unexpected sender name %q", cfg.Mail.SenderName)
	}
}

func TestLoadRejectsBadMailPort(t *testing.T) {
	setRequired(t)
	t.Setenv("MAIL_PORT", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("expected invalid MAIL_PORT error")
	}
}

func TestServerIdentifierPrecedence(t *testing.T) {
	cfg := Config{ServerName: "play.example.com", Port: "8080"}
	if got := cfg.ServerIdentifier(); got != "play.example.com" {
		t.Fatalf("expected configured name to win, got %q", got)
	}

	cfg.ServerName = ""
	if got := cfg.ServerIdentifier(); got != "localhost:8080" {
		t.Fatalf("expected bound address fallback, got %q", got)
	}

	cfg.Port = ""
	if got := cfg.ServerIdentifier(); got != "Game Server" {
		t.Fatalf("expected literal fallback, got %q", got)
	}
}
