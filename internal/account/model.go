package account

import "time"

// Account represents one registered identity. PasswordHash is never empty once
// the account exists; Email is optional and its absence disables recovery.
type Account struct {
	ID           string
	Name         string
	PasswordHash []byte
	Email        string
	CreatedAt    time.Time
}
