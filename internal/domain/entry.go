package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryDirection marks which side of a transfer an entry records.
type EntryDirection string

const (
	DirectionDebit  EntryDirection = "debit"
	DirectionCredit EntryDirection = "credit"
)

// EntryStatus is the settlement state of a ledger entry. Entries are only
// ever written in their terminal state; pending and failed are reserved
// for future asynchronous settlement paths.
type EntryStatus string

const (
	StatusCompleted EntryStatus = "completed"
	StatusPending   EntryStatus = "pending"
	StatusFailed    EntryStatus = "failed"
)

// LedgerEntry is an immutable audit record of one side of a completed
// transfer. Each transfer writes two linked entries sharing a reference:
// a debit row owned by the sender and a credit row owned by the receiver.
// Both rows carry both post-transfer balance snapshots so either side
// alone is a complete audit record, independent of current account state.
type LedgerEntry struct {
	ID                   string
	Reference            string
	AccountID            string
	Direction            EntryDirection
	SenderID             string
	ReceiverID           string
	Amount               decimal.Decimal
	Status               EntryStatus
	Description          string
	SenderBalanceAfter   decimal.Decimal
	ReceiverBalanceAfter decimal.Decimal
	CreatedAt            time.Time
}

// Counterparty returns the other participant from the owning account's
// point of view.
func (e *LedgerEntry) Counterparty() string {
	if e.Direction == DirectionDebit {
		return e.ReceiverID
	}
	return e.SenderID
}

// BalanceAfter returns the owning account's post-transfer balance.
func (e *LedgerEntry) BalanceAfter() decimal.Decimal {
	if e.Direction == DirectionDebit {
		return e.SenderBalanceAfter
	}
	return e.ReceiverBalanceAfter
}
