package mail

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/gomail.v2"

	"github.com/passgate/passgate/internal/config"
)

// ErrConfiguration marks a session that cannot be built from the provided
// transport settings.
var ErrConfiguration = fmt.Errorf("mail: invalid transport configuration")

// Session is a reusable SMTP transport connection configuration. It is
// stateless with respect to individual messages; the workflow rebuilds it per
// request so configuration changes take effect without a restart.
type Session struct {
	dialer *gomail.Dialer
}

// NewSession builds a transport session from the mail settings. The connection
// is implicit TLS with server identity verification; there is no STARTTLS
// downgrade, so an endpoint without TLS fails closed.
func NewSession(cfg config.Mail, logger *slog.Logger) (*Session, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrConfiguration)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: port %d out of range", ErrConfiguration, cfg.Port)
	}
	if cfg.Account == "" {
		return nil, fmt.Errorf("%w: sender account is required", ErrConfiguration)
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Account, cfg.Password)
	dialer.SSL = true
	dialer.TLSConfig = &tls.Config{ServerName: cfg.Host}

	// A broken CA file must not block the whole workflow; fall back to the
	// system pool and log.
	if cfg.CAFile != "" {
		if pool, err := loadCertPool(cfg.CAFile); err != nil {
			logger.Warn("load mail CA file failed, using system pool", "file", cfg.CAFile, "error", err)
		} else {
			dialer.TLSConfig.RootCAs = pool
		}
	}

	return &Session{dialer: dialer}, nil
}

// Send opens the encrypted connection and transmits one composed message. It
// is intended to run on an async worker, never on the request path.
func (s *Session) Send(msg *Message) error {
	return s.dialer.DialAndSend(msg.toGomail())
}

func loadCertPool(file string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	pool, err := x509.SystemCertPool()
	if err != nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in %s", file)
	}
	return pool, nil
}
