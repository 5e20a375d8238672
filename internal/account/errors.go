package account

import "errors"

var (
	// ErrNotFound indicates no account exists for the username. Authenticate
	// also returns it on a wrong PIN so callers cannot probe for usernames.
	ErrNotFound = errors.New("account not found")

	// ErrUsernameTaken indicates a create collided with an existing account.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidUsername indicates the username is empty after trimming.
	ErrInvalidUsername = errors.New("invalid username")

	// ErrInvalidPIN indicates the PIN is not exactly four decimal digits.
	ErrInvalidPIN = errors.New("PIN must be exactly 4 digits")

	// ErrInvalidAmount indicates a deposit or withdrawal amount that is not
	// strictly positive.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds indicates a withdrawal exceeding the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrStoreUnavailable wraps storage-layer faults. The core performs no
	// retries; callers own the retry policy.
	ErrStoreUnavailable = errors.New("account store unavailable")
)
