package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
	coreport "github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/core"
)

// Channel identifies the front-end a user onboarded through
type Channel string

// Onboarding channels
const (
	ChannelWeb  Channel = "web"
	ChannelChat Channel = "chat"
	ChannelBot  Channel = "bot"
)

// Identifiers carries the interchangeable external identifiers a request may
// present for the same person. At most one user may own each value.
type Identifiers struct {
	WalletAddress string
	ChatID        string
	Email         string
}

// Empty reports whether no identifier was supplied
func (i Identifiers) Empty() bool {
	return i.WalletAddress == "" && i.ChatID == "" && i.Email == ""
}

// User represents a custodial account holder. The balance on this record is
// the single source of truth for spendable funds; deposits and orders are an
// audit trail around it.
type User struct {
	ID            string
	WalletAddress string
	ChatID        string
	Email         string
	DisplayName   string
	balance       decimal.Decimal // never negative (private)
	Verified      bool
	Channel       Channel
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUser creates a user seeded with the supplied identifiers. At least one
// identifier is required; the display name is derived deterministically from
// the first available one.
func NewUser(ids Identifiers, channel Channel, timeProvider coreport.TimeProvider) (*User, error) {
	if ids.Empty() {
		return nil, errs.ErrValidation
	}

	now := timeProvider.Now()
	return &User{
		ID:            uuid.NewString(),
		WalletAddress: ids.WalletAddress,
		ChatID:        ids.ChatID,
		Email:         ids.Email,
		DisplayName:   DeriveDisplayName(ids),
		balance:       decimal.Zero,
		Channel:       channel,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// DeriveDisplayName builds a default display name from the highest-priority
// identifier present: wallet address, then chat handle, then the local part
// of the email. Wallet addresses are truncated to their first 8 characters
// so the name stays short enough for chat surfaces.
func DeriveDisplayName(ids Identifiers) string {
	switch {
	case ids.WalletAddress != "":
		addr := ids.WalletAddress
		if len(addr) > 8 {
			addr = addr[:8]
		}
		return "user-" + addr
	case ids.ChatID != "":
		return ids.ChatID
	case ids.Email != "":
		if at := strings.Index(ids.Email, "@"); at > 0 {
			return ids.Email[:at]
		}
		return ids.Email
	default:
		return "user"
	}
}

// Balance returns the current spendable balance
func (u *User) Balance() decimal.Decimal {
	return u.balance
}

// SetBalance updates the balance directly (for internal use, like repositories)
func (u *User) SetBalance(balance decimal.Decimal, timeProvider coreport.TimeProvider) {
	u.balance = balance
	u.UpdatedAt = timeProvider.Now()
}

// HasIdentifier reports whether at least one external identifier is populated
func (u *User) HasIdentifier() bool {
	return u.WalletAddress != "" || u.ChatID != "" || u.Email != ""
}

// CanDebit checks if the user has enough balance for a debit of the given amount
func (u *User) CanDebit(amount decimal.Decimal) bool {
	return u.balance.GreaterThanOrEqual(amount)
}

// Backfill adds missing identifiers from the supplied set without overwriting
// populated fields. A conflicting overwrite attempt is an identity conflict.
// It returns whether anything changed.
func (u *User) Backfill(ids Identifiers, timeProvider coreport.TimeProvider) (bool, error) {
	changed := false

	if ids.WalletAddress != "" {
		if u.WalletAddress == "" {
			u.WalletAddress = ids.WalletAddress
			changed = true
		} else if u.WalletAddress != ids.WalletAddress {
			return false, errs.NewIdentityConflictError(ids.WalletAddress, u.WalletAddress)
		}
	}
	if ids.ChatID != "" {
		if u.ChatID == "" {
			u.ChatID = ids.ChatID
			changed = true
		} else if u.ChatID != ids.ChatID {
			return false, errs.NewIdentityConflictError(ids.ChatID, u.ChatID)
		}
	}
	if ids.Email != "" {
		if u.Email == "" {
			u.Email = ids.Email
			changed = true
		} else if u.Email != ids.Email {
			return false, errs.NewIdentityConflictError(ids.Email, u.Email)
		}
	}

	if changed {
		u.UpdatedAt = timeProvider.Now()
	}
	return changed, nil
}
