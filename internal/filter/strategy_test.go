package filter

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"expensetracker/internal/core"
)

func sample() []*core.Transaction {
	return []*core.Transaction{
		core.NewTransaction(50.0, "food"),
		core.NewTransaction(100.0, "entertainment"),
		core.NewTransaction(75.0, "travel"),
	}
}

func TestAmountFilter(t *testing.T) {
	ts := sample()
	got := NewAmountFilter(100.0).Filter(ts)
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0] != ts[1] {
		t.Fatalf("expected the entertainment transaction, got %v/%s", got[0].Amount(), got[0].Category())
	}
}

func TestCategoryFilter(t *testing.T) {
	ts := sample()
	got := NewCategoryFilter("entertainment").Filter(ts)
	if len(got) != 1 || got[0] != ts[1] {
		t.Fatalf("unexpected matches: %v", got)
	}

	if got := NewCategoryFilter("Entertainment").Filter(ts); len(got) != 0 {
		t.Fatalf("expected case-sensitive match, got %d results", len(got))
	}
}

func TestFilterPreservesOrderAndInput(t *testing.T) {
	ts := []*core.Transaction{
		core.NewTransaction(10, "food"),
		core.NewTransaction(20, "bills"),
		core.NewTransaction(30, "food"),
		core.NewTransaction(40, "food"),
	}
	before := append([]*core.Transaction(nil), ts...)

	got := NewCategoryFilter("food").Filter(ts)
	want := []*core.Transaction{ts[0], ts[2], ts[3]}
	if len(got) != len(want) {
		t.Fatalf("got %d matches, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("match %d out of order", i)
		}
	}
	for i := range before {
		if ts[i] != before[i] {
			t.Fatalf("input mutated at %d", i)
		}
	}
}

func TestFilterEmptyInput(t *testing.T) {
	if got := NewAmountFilter(1).Filter(nil); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		criterion string
		want      Strategy
		wantErr   error
	}{
		{name: "amount", kind: KindAmount, criterion: "100", want: AmountFilter{Target: 100}},
		{name: "amount with spaces", kind: "  Amount ", criterion: " 12.5 ", want: AmountFilter{Target: 12.5}},
		{name: "category", kind: KindCategory, criterion: "food", want: CategoryFilter{Target: "food"}},
		{name: "bad amount", kind: KindAmount, criterion: "abc", wantErr: ErrInvalidCriterion},
		{name: "empty category", kind: KindCategory, criterion: " ", wantErr: ErrInvalidCriterion},
		{name: "unknown kind", kind: "date", criterion: "x", wantErr: ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.kind, tt.criterion)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("New() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestUnknownKindListsKnownKinds(t *testing.T) {
	_, err := New("date", "x")
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("New() error = %v, want %v", err, ErrUnknownKind)
	}
	if !strings.Contains(err.Error(), "amount, category") {
		t.Fatalf("expected known kinds in %q", err.Error())
	}

	kinds := Kinds()
	if !slices.IsSorted(kinds) || !slices.Contains(kinds, KindAmount) || !slices.Contains(kinds, KindCategory) {
		t.Fatalf("Kinds() = %v", kinds)
	}
}

type minAmountFilter struct{ min float64 }

func (f minAmountFilter) Filter(ts []*core.Transaction) []*core.Transaction {
	return selectWhere(ts, func(t *core.Transaction) bool { return t.Amount() >= f.min })
}

func TestRegister(t *testing.T) {
	const kind Kind = "min_amount"
	Register(kind, func(string) (Strategy, error) { return minAmountFilter{min: 60}, nil })

	s, err := New(kind, "")
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	ts := sample()
	got := s.Filter(ts)
	if len(got) != 2 || got[0] != ts[1] || got[1] != ts[2] {
		t.Fatalf("unexpected matches: %v", got)
	}
}
