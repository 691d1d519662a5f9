package core

import (
	"testing"
	"time"
)

func TestNewTransaction(t *testing.T) {
	before := time.Now()
	tx := NewTransaction(50.0, Food)

	if tx.Amount() != 50.0 {
		t.Fatalf("amount = %v, want 50", tx.Amount())
	}
	if tx.Category() != Food {
		t.Fatalf("category = %q, want %q", tx.Category(), Food)
	}
	if tx.CreatedAt().Before(before) {
		t.Fatalf("created at %v before construction %v", tx.CreatedAt(), before)
	}

	parsed, err := ParseTimestamp(tx.Timestamp())
	if err != nil {
		t.Fatalf("parse timestamp %q: %v", tx.Timestamp(), err)
	}
	if d := time.Since(parsed); d < 0 || d > 60*time.Millisecond {
		t.Fatalf("timestamp %q is %v away from now", tx.Timestamp(), d)
	}
}

func TestTransactionIdentity(t *testing.T) {
	a := NewTransaction(10, Food)
	b := NewTransaction(10, Food)
	if a == b {
		t.Fatal("expected distinct pointers")
	}
	if a.ID() == b.ID() {
		t.Fatal("expected distinct ids for equal-valued transactions")
	}
}

func TestTotal(t *testing.T) {
	ts := []*Transaction{
		NewTransaction(50, Food),
		NewTransaction(100, Entertainment),
		NewTransaction(75, Travel),
	}
	if got := Total(ts); got != 225 {
		t.Fatalf("Total = %v, want 225", got)
	}
	if got := Total(nil); got != 0 {
		t.Fatalf("Total(nil) = %v, want 0", got)
	}
}
