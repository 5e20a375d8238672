package account

import "time"

// Account is the persisted record for a user-owned monetary account. Balance
// is held in minor units and never goes negative.
type Account struct {
	Username    string
	DisplayName string
	PINHash     []byte
	Balance     int64
	CreatedAt   time.Time
}

// Profile is the credential-free view of an account returned to callers that
// only proved who they are, e.g. by Authenticate.
type Profile struct {
	Username    string
	DisplayName string
}

// Profile strips the account down to its public fields.
func (a Account) Profile() Profile {
	return Profile{Username: a.Username, DisplayName: a.DisplayName}
}

// ProfileUpdate carries the optional fields of a modify request. Nil fields
// are left untouched.
type ProfileUpdate struct {
	DisplayName *string
	PIN         *string
}

// ModifyResult reports which parts of a modify request were applied. A
// malformed PIN sets PINRejected without aborting a display-name change.
type ModifyResult struct {
	DisplayNameUpdated bool
	PINUpdated         bool
	PINRejected        bool
}
