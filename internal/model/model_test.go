package model

import (
	"testing"

	"expensetracker/internal/core"
)

func TestAddAndRemoveTransaction(t *testing.T) {
	m := New()
	if m.Len() != 0 {
		t.Fatalf("expected empty model, got %d", m.Len())
	}

	tx := core.NewTransaction(50.0, core.Food)
	m.AddTransaction(tx)
	if m.Len() != 1 {
		t.Fatalf("expected 1 transaction, got %d", m.Len())
	}
	if got := core.Total(m.Transactions()); got != 50.0 {
		t.Fatalf("total = %v, want 50", got)
	}

	m.RemoveTransaction(tx)
	if m.Len() != 0 {
		t.Fatalf("expected empty model after remove, got %d", m.Len())
	}
	if got := core.Total(m.Transactions()); got != 0 {
		t.Fatalf("total = %v, want 0", got)
	}
}

func TestRemoveUsesIdentity(t *testing.T) {
	m := New()
	a := core.NewTransaction(10, core.Food)
	b := core.NewTransaction(10, core.Food)
	c := core.NewTransaction(10, core.Food)
	m.AddTransaction(a)
	m.AddTransaction(b)
	m.AddTransaction(c)

	m.RemoveTransaction(b)

	got := m.Transactions()
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Fatalf("expected [a c], got %v", got)
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	m := New()
	m.AddTransaction(core.NewTransaction(1, core.Bills))

	m.RemoveTransaction(core.NewTransaction(1, core.Bills))
	m.RemoveTransaction(nil)

	if m.Len() != 1 {
		t.Fatalf("expected model unchanged, got %d items", m.Len())
	}
}

func TestTransactionsOrderAndIsolation(t *testing.T) {
	m := New()
	first := core.NewTransaction(1, core.Food)
	second := core.NewTransaction(2, core.Travel)
	m.AddTransaction(first)
	m.AddTransaction(second)

	got := m.Transactions()
	if got[0] != first || got[1] != second {
		t.Fatalf("expected insertion order")
	}

	got[0] = nil
	if m.Transactions()[0] != first {
		t.Fatalf("caller write leaked into the model")
	}
}
