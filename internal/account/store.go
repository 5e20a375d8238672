package account

import "context"

// Store is the durable username-keyed record store the ledger core depends
// on. Every method is atomic with respect to a single key; Update in
// particular applies its mutator inside one read-check-write unit so
// check-then-decrement sequences cannot interleave across callers.
type Store interface {
	// Get returns the account or ErrNotFound.
	Get(ctx context.Context, username string) (Account, error)

	// Insert creates the account if and only if the username is free,
	// returning ErrUsernameTaken otherwise. The existence check and the
	// insert are one atomic unit.
	Insert(ctx context.Context, acct Account) error

	// Update loads the account, applies mutate and commits the result. An
	// error returned by mutate aborts the update with no write and is
	// surfaced unchanged. Returns the committed account.
	Update(ctx context.Context, username string, mutate func(Account) (Account, error)) (Account, error)

	// Delete permanently removes the account or returns ErrNotFound.
	Delete(ctx context.Context, username string) error
}
