package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

const keyPrefix = "session:v1:"

// ErrNoSession indicates the token is unknown or expired.
var ErrNoSession = errors.New("no such session")

// Store issues and resolves opaque session tokens. A token maps to the
// authenticated username for the configured TTL; logout and account closure
// destroy it. The core ledger knows nothing about sessions.
type Store interface {
	// Create stores a new session for username and returns its token.
	Create(ctx context.Context, username string) (string, error)

	// Username resolves a token to the username it was issued for,
	// returning ErrNoSession for unknown or expired tokens.
	Username(ctx context.Context, token string) (string, error)

	// Destroy removes the session. Unknown tokens are not an error.
	Destroy(ctx context.Context, token string) error

	// DestroyAll removes every live session for the username. Used when
	// the account itself is closed.
	DestroyAll(ctx context.Context, username string) error
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func normalizeTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 30 * time.Minute
	}
	return ttl
}
