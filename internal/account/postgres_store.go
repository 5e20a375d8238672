package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists accounts in PostgreSQL. Per-account atomicity comes
// from row locks: Update runs its mutator between SELECT ... FOR UPDATE and
// the write, inside one transaction.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a Postgres-backed account store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectColumns = `username, display_name, pin_hash, balance, created_at`

// Get fetches an account by username.
func (s *PostgresStore) Get(ctx context.Context, username string) (Account, error) {
	row := s.db.QueryRow(ctx, `SELECT `+selectColumns+` FROM accounts WHERE username = $1`, username)
	acct, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, storeFault("get account", err)
	}
	return acct, nil
}

// Insert creates the account unless the username is taken. ON CONFLICT DO
// NOTHING makes the existence check and the insert one atomic statement, so
// concurrent creates for the same username cannot both succeed.
func (s *PostgresStore) Insert(ctx context.Context, acct Account) error {
	cmd, err := s.db.Exec(ctx, `INSERT INTO accounts (username, display_name, pin_hash, balance, created_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (username) DO NOTHING`,
		acct.Username, acct.DisplayName, acct.PINHash, acct.Balance, acct.CreatedAt.UTC())
	if err != nil {
		return storeFault("insert account", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrUsernameTaken
	}
	return nil
}

// Update applies mutate to the row while holding its lock. A mutator error
// rolls the transaction back, leaving the record exactly as it was.
func (s *PostgresStore) Update(ctx context.Context, username string, mutate func(Account) (Account, error)) (Account, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Account{}, storeFault("begin update", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	row := tx.QueryRow(ctx, `SELECT `+selectColumns+` FROM accounts WHERE username = $1 FOR UPDATE`, username)
	acct, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, storeFault("lock account", err)
	}

	updated, err := mutate(acct)
	if err != nil {
		return Account{}, err
	}
	updated.Username = acct.Username
	updated.CreatedAt = acct.CreatedAt

	if _, err := tx.Exec(ctx, `UPDATE accounts SET display_name = $1, pin_hash = $2, balance = $3 WHERE username = $4`,
		updated.DisplayName, updated.PINHash, updated.Balance, updated.Username); err != nil {
		return Account{}, storeFault("write account", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Account{}, storeFault("commit update", err)
	}

	return updated, nil
}

// Delete removes the account row.
func (s *PostgresStore) Delete(ctx context.Context, username string) error {
	cmd, err := s.db.Exec(ctx, `DELETE FROM accounts WHERE username = $1`, username)
	if err != nil {
		return storeFault("delete account", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (Account, error) {
	var acct Account
	if err := row.Scan(&acct.Username, &acct.DisplayName, &acct.PINHash, &acct.Balance, &acct.CreatedAt); err != nil {
		return Account{}, err
	}
	acct.CreatedAt = acct.CreatedAt.UTC()
	return acct, nil
}

func storeFault(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
