package recovery

import "errors"

// Precondition aborts. Each one is caller-visible, carries no side effects and
// maps to a distinct notice at the HTTP boundary.
var (
	ErrPlayersOnly      = errors.New("recovery is only available to connected players")
	ErrRecoveryDisabled = errors.New("password recovery by mail is not enabled")
	ErrAccountNotLoaded = errors.New("account is not loaded")
	ErrAlreadyLoggedIn  = errors.New("account is already logged in")
	ErrNoMailAddress    = errors.New("no mail address on file for this account")
	ErrRecoveryInFlight = errors.New("a recovery for this account is already in flight")
)

// ErrCommandFailed is the generic notice for session or composition failures.
// The stored credential is unchanged when it is returned.
var ErrCommandFailed = errors.New("error executing command")
