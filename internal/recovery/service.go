package recovery

import (
	"context"
	"errors"
	"log/slog"

	"github.com/passgate/passgate/internal/account"
	"github.com/passgate/passgate/internal/config"
	"github.com/passgate/passgate/internal/mail"
	"github.com/passgate/passgate/internal/security"
	"github.com/passgate/passgate/internal/session"
	"github.com/passgate/passgate/internal/tasks"
)

// Caller identifies who triggered the recovery request. Interactive is false
// for console or programmatic invokers, which are refused.
type Caller struct {
	Name        string
	Interactive bool
}

// Transport delivers one composed message over an established session.
type Transport interface {
	Send(msg *mail.Message) error
}

// TransportFactory builds a transport session from the mail settings. The
// workflow calls it once per request so configuration changes take effect
// without a restart.
type TransportFactory func(cfg config.Mail, logger *slog.Logger) (Transport, error)

// NewMailTransport is the production TransportFactory backed by SMTP over TLS.
func NewMailTransport(cfg config.Mail, logger *slog.Logger) (Transport, error) {
	return mail.NewSession(cfg, logger)
}

// Service drives credential rotation: it validates preconditions, composes the
// notification, then fans out two independent async units, one delivering the
// mail and one persisting the rotated hash. The hash is assigned before either
// unit runs, so a failed delivery never leaves the rotation half-applied. The
// flip side is that a user can be rotated to a credential they never receive;
// there is no automatic rollback on delivery failure.
type Service struct {
	repo         account.Repository
	sessions     session.Registry
	hasher       security.Hasher
	exec         tasks.Executor
	newTransport TransportFactory
	cfg          config.Config
	logger       *slog.Logger
}

// NewService wires the rotation workflow. All collaborators are explicit; the
// service holds no ambient state.
func NewService(
	repo account.Repository,
	sessions session.Registry,
	hasher security.Hasher,
	exec tasks.Executor,
	newTransport TransportFactory,
	cfg config.Config,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:         repo,
		sessions:     sessions,
		hasher:       hasher,
		exec:         exec,
		newTransport: newTransport,
		cfg:          cfg,
		logger:       logger,
	}
}

// Recover runs one recovery request to completion of its synchronous phase.
// A nil return means both async units were scheduled; it does not wait on
// either, and their outcomes are never reported back to this caller.
func (s *Service) Recover(ctx context.Context, caller Caller) error {
	if !caller.Interactive {
		return ErrPlayersOnly
	}
	if !s.cfg.Mail.Enabled {
		return ErrRecoveryDisabled
	}

	acct, err := s.repo.FindByName(ctx, caller.Name)
	if err != nil {
		if !errors.Is(err, account.ErrNotFound) {
			s.logger.Error("account lookup failed", "account", caller.Name, "error", err)
		}
		return ErrAccountNotLoaded
	}

	active, err := s.sessions.IsActive(ctx, acct.ID)
	if err != nil {
		s.logger.Error("session lookup failed", "account", acct.Name, "error", err)
		return ErrCommandFailed
	}
	if active {
		return ErrAlreadyLoggedIn
	}

	if acct.Email == "" {
		return ErrNoMailAddress
	}

	claimed, err := s.sessions.BeginRecovery(ctx, acct.ID)
	if err != nil {
		s.logger.Error("recovery guard failed", "account", acct.Name, "error", err)
		return ErrCommandFailed
	}
	if !claimed {
		return ErrRecoveryInFlight
	}

	if err := s.dispatch(acct); err != nil {
		if endErr := s.sessions.EndRecovery(ctx, acct.ID); endErr != nil {
			s.logger.Warn("release recovery guard failed", "account", acct.Name, "error", endErr)
		}
		s.logger.Error("error executing recovery", "account", acct.Name, "error", err)
		return ErrCommandFailed
	}

	return nil
}

// dispatch covers the Composing and Dispatching phases. Any error before the
// first Submit leaves the old credential active and unchanged.
func (s *Service) dispatch(acct account.Account) error {
	secret := security.GenerateSecret()

	transport, err := s.newTransport(s.cfg.Mail, s.logger)
	if err != nil {
		return err
	}

	msg, err := mail.Compose(acct.Email, acct.Name, mail.Vars{
		PlayerName: acct.Name,
		ServerName: s.cfg.ServerIdentifier(),
		Password:   secret,
	}, s.cfg.Mail)
	if err != nil {
		return err
	}

	if !s.exec.Submit(func() {
		if err := transport.Send(msg); err != nil {
			s.logger.Error("recovery mail delivery failed", "account", acct.Name, "host", s.cfg.Mail.Host, "error", err)
		}
	}) {
		s.logger.Warn("executor rejected delivery task", "account", acct.Name)
	}

	// Rotate before delivery is observed: if the send is slow or fails, the
	// new credential is committed anyway.
	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return err
	}
	acct.PasswordHash = hash

	// acct is a value snapshot; the original request tuple does not outlive
	// this call. The task uses a fresh context because the request context
	// ends when the caller returns.
	snapshot := acct
	if !s.exec.Submit(func() {
		defer func() {
			if err := s.sessions.EndRecovery(context.Background(), snapshot.ID); err != nil {
				s.logger.Warn("release recovery guard failed", "account", snapshot.Name, "error", err)
			}
		}()
		if err := s.repo.UpdatePasswordHash(context.Background(), snapshot.ID, snapshot.PasswordHash); err != nil {
			s.logger.Error("persist rotated credential failed", "account", snapshot.Name, "error", err)
		}
	}) {
		s.logger.Warn("executor rejected persistence task", "account", acct.Name)
	}

	return nil
}
