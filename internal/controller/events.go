package controller

import "expensetracker/internal/core"

// EventPublisher is notified after the model changes. Publishing is best
// effort: the controller logs failures and carries on.
type EventPublisher interface {
	TransactionAdded(t *core.Transaction) error
	TransactionRemoved(t *core.Transaction) error
}

type nopPublisher struct{}

func (nopPublisher) TransactionAdded(*core.Transaction) error   { return nil }
func (nopPublisher) TransactionRemoved(*core.Transaction) error { return nil }
