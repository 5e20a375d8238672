package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/corebank/corebank/internal/notification"
)

// dummyHash keeps the missing-user path of Authenticate roughly as expensive
// as a real comparison, so response timing does not leak which usernames exist.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("0000"), bcrypt.DefaultCost)

// Service owns the account lifecycle and every balance-affecting operation.
// All mutations go through the store's atomic per-key primitives; the service
// holds no locks of its own.
type Service struct {
	store    Store
	notifier notification.Notifier
}

// NewService builds the ledger core around the provided store.
func NewService(store Store, notifier notification.Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// CreateAccount opens a new account with a zero balance. The stored PIN is a
// bcrypt hash; the raw PIN never reaches the store.
func (s *Service) CreateAccount(ctx context.Context, username, displayName, pin string) (Account, error) {
	if !ValidUsername(username) {
		return Account{}, ErrInvalidUsername
	}
	if !ValidPIN(pin) {
		return Account{}, ErrInvalidPIN
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, fmt.Errorf("hash pin: %w", err)
	}

	acct := Account{
		Username:    strings.TrimSpace(username),
		DisplayName: strings.TrimSpace(displayName),
		PINHash:     hash,
		Balance:     0,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, acct); err != nil {
		return Account{}, err
	}

	s.notify(ctx, notification.KindAccountCreated, acct.Username, "account opened")
	return acct, nil
}

// Authenticate verifies the username/PIN pair. Missing user and wrong PIN
// both come back as ErrNotFound so the two cases are indistinguishable. The
// returned profile never carries the credential.
func (s *Service) Authenticate(ctx context.Context, username, pin string) (Profile, error) {
	acct, err := s.store.Get(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(pin))
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}

	if err := bcrypt.CompareHashAndPassword(acct.PINHash, []byte(pin)); err != nil {
		return Profile{}, ErrNotFound
	}

	return acct.Profile(), nil
}

// GetBalance returns the current balance in minor units.
func (s *Service) GetBalance(ctx context.Context, username string) (int64, error) {
	acct, err := s.store.Get(ctx, username)
	if err != nil {
		return 0, err
	}
	return acct.Balance, nil
}

// GetProfile returns the credential-free view of an account.
func (s *Service) GetProfile(ctx context.Context, username string) (Profile, error) {
	acct, err := s.store.Get(ctx, username)
	if err != nil {
		return Profile{}, err
	}
	return acct.Profile(), nil
}

// Deposit credits the account and returns the committed balance. The
// increment happens inside one atomic store update; the returned value is the
// committed one, not a separate re-read.
func (s *Service) Deposit(ctx context.Context, username string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	updated, err := s.store.Update(ctx, username, func(acct Account) (Account, error) {
		acct.Balance += amount
		return acct, nil
	})
	if err != nil {
		return 0, err
	}
	return updated.Balance, nil
}

// Withdraw debits the account if funds suffice. The balance check and the
// decrement run inside the same atomic update, so concurrent withdrawals
// cannot both observe sufficient funds and drive the balance negative.
func (s *Service) Withdraw(ctx context.Context, username string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	updated, err := s.store.Update(ctx, username, func(acct Account) (Account, error) {
		if acct.Balance < amount {
			return Account{}, ErrInsufficientFunds
		}
		acct.Balance -= amount
		return acct, nil
	})
	if err != nil {
		return 0, err
	}

	s.notify(ctx, notification.KindWithdrawal, username, fmt.Sprintf("withdrew %d", amount))
	return updated.Balance, nil
}

// ModifyAccount applies a partial profile update. A present display name
// always commits; a present but malformed PIN is reported via PINRejected
// without aborting the rest of the update.
func (s *Service) ModifyAccount(ctx context.Context, username string, upd ProfileUpdate) (ModifyResult, error) {
	var res ModifyResult

	var newHash []byte
	if upd.PIN != nil {
		if !ValidPIN(*upd.PIN) {
			res.PINRejected = true
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(*upd.PIN), bcrypt.DefaultCost)
			if err != nil {
				return ModifyResult{}, fmt.Errorf("hash pin: %w", err)
			}
			newHash = hash
		}
	}

	_, err := s.store.Update(ctx, username, func(acct Account) (Account, error) {
		if upd.DisplayName != nil {
			acct.DisplayName = strings.TrimSpace(*upd.DisplayName)
		}
		if newHash != nil {
			acct.PINHash = newHash
		}
		return acct, nil
	})
	if err != nil {
		return ModifyResult{}, err
	}

	res.DisplayNameUpdated = upd.DisplayName != nil
	res.PINUpdated = newHash != nil
	return res, nil
}

// CloseAccount permanently removes the account. Every subsequent operation on
// the username behaves as ErrNotFound.
func (s *Service) CloseAccount(ctx context.Context, username string) error {
	if err := s.store.Delete(ctx, username); err != nil {
		return err
	}
	s.notify(ctx, notification.KindAccountClosed, username, "account closed")
	return nil
}

func (s *Service) notify(ctx context.Context, kind, username, body string) {
	if s.notifier == nil {
		return
	}
	_ = s.notifier.Send(ctx, notification.Message{Kind: kind, Username: username, Body: body})
}
