package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"expensetracker/internal/core"
)

// EventType names what happened to a transaction. It doubles as the routing
// key suffix.
type EventType string

const (
	TransactionAdded   EventType = "transaction.added"
	TransactionRemoved EventType = "transaction.removed"
)

// TransactionEvent is the message published when the model changes. ID is
// unique per event; TransactionID is shared by every event about the same
// transaction.
type TransactionEvent struct {
	Type          EventType `json:"type"`
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	Category      string    `json:"category"`
	Timestamp     string    `json:"timestamp"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewTransactionEvent describes t for an event of type typ.
func NewTransactionEvent(typ EventType, t *core.Transaction) *TransactionEvent {
	return &TransactionEvent{
		Type:          typ,
		ID:            uuid.NewString(),
		TransactionID: t.ID().String(),
		Amount:        t.Amount(),
		Category:      t.Category(),
		Timestamp:     t.Timestamp(),
		OccurredAt:    time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionEventFromJSON decodes an event produced by ToJSON.
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var e TransactionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
