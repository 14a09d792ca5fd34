package entities

import (
	"errors"
	"time"
)

// TransactionKind classifies a balance movement.
type TransactionKind string

const (
	TransactionKindBet        TransactionKind = "bet"
	TransactionKindWin        TransactionKind = "win"
	TransactionKindAdjustment TransactionKind = "adjustment"
)

// IsWin returns true if the kind represents a credit from a settled wager
func (tk TransactionKind) IsWin() bool {
	return tk == TransactionKindWin
}

// IsBet returns true if the kind represents funds staked on a wager
func (tk TransactionKind) IsBet() bool {
	return tk == TransactionKindBet
}

// String returns the string representation of the kind
func (tk TransactionKind) String() string {
	return string(tk)
}

// TransactionStatus is the settlement state of a transaction record.
// Records are written completed; the column exists for the caller layer's
// pending-settlement flows.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
)

// RelatedType identifies what kind of wager entity a transaction settles.
type RelatedType string

const (
	RelatedTypeTable  RelatedType = "table"
	RelatedTypeHand   RelatedType = "hand"
	RelatedTypeParlay RelatedType = "parlay"
)

// CurrencySweeps is the single wagering currency of the ledger.
const CurrencySweeps = "sweeps_coins"

// Transaction is one immutable, append-only ledger record. Amount carries
// the signed balance change; BalanceBefore/BalanceAfter pin the record to
// the balance it moved so consistency is checkable after the fact.
type Transaction struct {
	ID            int64             `db:"id"`
	UserID        int64             `db:"user_id"`
	Kind          TransactionKind   `db:"kind"`
	Currency      string            `db:"currency"`
	Amount        int64             `db:"amount"`
	BalanceBefore int64             `db:"balance_before"`
	BalanceAfter  int64             `db:"balance_after"`
	Description   string            `db:"description"`
	Status        TransactionStatus `db:"status"`
	RelatedID     *string           `db:"related_id"`
	RelatedType   *RelatedType      `db:"related_type"`
	CreatedAt     time.Time         `db:"created_at"`
}

// IsCredit returns true if the record increased the balance
func (t *Transaction) IsCredit() bool {
	return t.Amount > 0
}

// IsDebit returns true if the record decreased the balance
func (t *Transaction) IsDebit() bool {
	return t.Amount < 0
}

// Validate performs basic consistency checks on the record
func (t *Transaction) Validate() error {
	if t.Amount == 0 {
		return errors.New("change amount cannot be zero")
	}
	if t.BalanceAfter != t.BalanceBefore+t.Amount {
		return errors.New("balance calculation is inconsistent")
	}
	if t.BalanceAfter < 0 {
		return errors.New("balance cannot go negative")
	}
	return nil
}
