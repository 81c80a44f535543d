package mail

import (
	"errors"
	"testing"

	"github.com/passgate/passgate/internal/logging"
)

func TestNewSessionRequiresHost(t *testing.T) {
	cfg := mailConfig()
	cfg.Host = ""
	_, err := NewSession(cfg, logging.Discard())
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestNewSessionRequiresSenderAccount(t *testing.T) {
	cfg := mailConfig()
	cfg.Account = ""
	_, err := NewSession(cfg, logging.Discard())
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestNewSessionRejectsBadPort(t *testing.T) {
	cfg := mailConfig()
	cfg.Port = 0
	_, err := NewSession(cfg, logging.Discard())
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestNewSessionDegradesOnMissingCAFile(t *testing.T) {
	cfg := mailConfig()
	cfg.CAFile = "/does/not/exist.pem"
	sess, err := NewSession(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("expected degradation, got %v", err)
	}
	if sess == nil {
		t.Fatal("expected a usable session")
	}
}
