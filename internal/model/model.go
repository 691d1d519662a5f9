// Package model holds the authoritative, in-memory sequence of transactions.
package model

import (
	"sync"

	"expensetracker/internal/core"
)

// Model owns the ordered transaction sequence. Display order is insertion
// order. Transactions are matched by pointer identity, never by value.
type Model struct {
	mu    sync.Mutex
	items []*core.Transaction
}

func New() *Model {
	return &Model{}
}

// AddTransaction appends t. Callers validate before adding.
func (m *Model) AddTransaction(t *core.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, t)
}

// RemoveTransaction removes the first occurrence of t. Removing a
// transaction that is not present is a no-op.
func (m *Model) RemoveTransaction(t *core.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, item := range m.items {
		if item == t {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return
		}
	}
}

// Transactions returns the sequence in insertion order. The slice is fresh
// but its elements are the model's own transactions; treat it as read-only.
func (m *Model) Transactions() []*core.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*core.Transaction(nil), m.items...)
}

// Len returns the number of transactions.
func (m *Model) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
