package core

import (
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the fixed pattern used to render a transaction's
// creation instant (day-month-year, millisecond precision).
const TimestampLayout = "02-01-2006 15:04:05.000"

// Transaction is a single monetary event. It is immutable once created.
//
// Transactions are compared by identity: the model and the controller always
// work with *Transaction, and every transaction carries a random ID so that
// two records with the same amount, category and timestamp stay distinct.
type Transaction struct {
	id        uuid.UUID
	amount    float64
	category  string
	createdAt time.Time
}

// NewTransaction creates a transaction stamped with the current time.
// No validation happens here; see Validator.
func NewTransaction(amount float64, category string) *Transaction {
	return &Transaction{
		id:        uuid.New(),
		amount:    amount,
		category:  category,
		createdAt: time.Now(),
	}
}

// ID returns the transaction's unique identifier.
func (t *Transaction) ID() uuid.UUID { return t.id }

// Amount returns the transaction amount.
func (t *Transaction) Amount() float64 { return t.amount }

// Category returns the transaction category.
func (t *Transaction) Category() string { return t.category }

// CreatedAt returns the creation instant.
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }

// Timestamp returns the creation instant formatted with TimestampLayout.
func (t *Transaction) Timestamp() string {
	return t.createdAt.Format(TimestampLayout)
}

// ParseTimestamp parses a string produced by Timestamp in the local zone.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s, time.Local)
}

// Total returns the sum of the amounts of ts.
func Total(ts []*Transaction) float64 {
	var total float64
	for _, t := range ts {
		total += t.amount
	}
	return total
}
