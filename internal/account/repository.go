package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no account exists for the given name.
var ErrNotFound = errors.New("account not found")

// Repository persists accounts.
type Repository interface {
	Create(ctx context.Context, acct Account) error
	FindByName(ctx context.Context, name string) (Account, error)
	UpdatePasswordHash(ctx context.Context, id string, hash []byte) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed account repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account.
func (r *PostgresRepository) Create(ctx context.Context, acct Account) error {
	acctID, err := uuid.Parse(acct.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO accounts (id, name, password_hash, email, created_at)
        VALUES ($1, $2, $3, $4, $5)`, acctID, acct.Name, acct.PasswordHash, acct.Email, acct.CreatedAt.UTC())
	return err
}

// FindByName fetches an account by its player name.
func (r *PostgresRepository) FindByName(ctx context.Context, name string) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, password_hash, email, created_at FROM accounts WHERE name = $1`, name)
	var (
		id        uuid.UUID
		createdAt time.Time
		acct      Account
	)
	if err := row.Scan(&id, &acct.Name, &acct.PasswordHash, &acct.Email, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	acct.ID = id.String()
	acct.CreatedAt = createdAt.UTC()
	return acct, nil
}

// UpdatePasswordHash replaces the stored credential hash. Last write wins; the
// store provides no per-identity serialization beyond row-level atomicity.
func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id string, hash []byte) error {
	acctID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `UPDATE accounts SET password_hash = $1 WHERE id = $2`, hash, acctID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
