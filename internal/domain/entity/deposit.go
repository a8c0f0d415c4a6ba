package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepositStatus defines the lifecycle of a deposit record
type DepositStatus string

// Deposit statuses. A row is inserted as reserved the moment its external
// transaction id is claimed; it flips to confirmed together with the balance
// credit, in the same database transaction.
const (
	DepositReserved  DepositStatus = "reserved"
	DepositConfirmed DepositStatus = "confirmed"
)

// Deposit is an internally recorded, verified credit event derived from one
// external ledger transaction. The external transaction id is globally unique
// and is the dedup key: exactly one Deposit may ever exist per id.
type Deposit struct {
	ID            string
	UserID        string
	ExternalTxID  string // canonical form
	Amount        decimal.Decimal
	TokenID       string
	SenderAddress string
	ConsensusAt   time.Time
	ConfirmedAt   *time.Time
	Status        DepositStatus
	CreatedAt     time.Time
}

// NewReservation creates a deposit reservation for the given canonical
// external transaction id. Everything beyond the dedup key is filled in when
// verification succeeds.
func NewReservation(externalTxID string, now time.Time) *Deposit {
	return &Deposit{
		ID:           uuid.NewString(),
		ExternalTxID: externalTxID,
		Status:       DepositReserved,
		CreatedAt:    now,
	}
}

// Confirm fills in the verified transfer details and marks the deposit confirmed
func (d *Deposit) Confirm(userID string, amount decimal.Decimal, tokenID, sender string, consensusAt, now time.Time) {
	d.UserID = userID
	d.Amount = amount
	d.TokenID = tokenID
	d.SenderAddress = sender
	d.ConsensusAt = consensusAt
	d.ConfirmedAt = &now
	d.Status = DepositConfirmed
}

// CreditReason returns the journal reason tag for this deposit's balance credit
func (d *Deposit) CreditReason() string {
	return "deposit:" + d.ExternalTxID
}
