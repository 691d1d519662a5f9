// Package filter provides the strategies used to select transactions.
//
// Each strategy encapsulates one matching rule. Strategies are stateless
// beyond their criterion, never mutate their input and return the matching
// transactions in their original relative order.
package filter

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"expensetracker/internal/core"
)

// Strategy selects a subsequence of transactions.
type Strategy interface {
	// Filter returns the transactions of ts that match, in order. The result
	// references the same transactions; ts is left untouched.
	Filter(ts []*core.Transaction) []*core.Transaction
}

// Kind names a family of strategies that can be built from text.
type Kind string

const (
	KindAmount   Kind = "amount"
	KindCategory Kind = "category"
)

var (
	ErrUnknownKind      = errors.New("unknown filter kind")
	ErrInvalidCriterion = errors.New("invalid filter criterion")
)

// Factory builds a strategy from a textual criterion.
type Factory func(criterion string) (Strategy, error)

// AmountFilter matches transactions whose amount equals Target exactly.
type AmountFilter struct {
	Target float64
}

// NewAmountFilter returns an AmountFilter for target.
func NewAmountFilter(target float64) AmountFilter {
	return AmountFilter{Target: target}
}

func (f AmountFilter) Filter(ts []*core.Transaction) []*core.Transaction {
	return selectWhere(ts, func(t *core.Transaction) bool {
		return t.Amount() == f.Target
	})
}

func (f AmountFilter) String() string {
	return fmt.Sprintf("amount=%s", strconv.FormatFloat(f.Target, 'f', -1, 64))
}

// CategoryFilter matches transactions whose category equals Target.
// Comparison is exact and case-sensitive.
type CategoryFilter struct {
	Target string
}

// NewCategoryFilter returns a CategoryFilter for target.
func NewCategoryFilter(target string) CategoryFilter {
	return CategoryFilter{Target: target}
}

func (f CategoryFilter) Filter(ts []*core.Transaction) []*core.Transaction {
	return selectWhere(ts, func(t *core.Transaction) bool {
		return t.Category() == f.Target
	})
}

func (f CategoryFilter) String() string {
	return "category=" + f.Target
}

func selectWhere(ts []*core.Transaction, match func(*core.Transaction) bool) []*core.Transaction {
	out := make([]*core.Transaction, 0, len(ts))
	for _, t := range ts {
		if match(t) {
			out = append(out, t)
		}
	}
	return out
}

// factories maps kinds to their builders. New kinds are added with Register.
var (
	factoriesMu sync.RWMutex
	factories   = map[Kind]Factory{
		KindAmount:   parseAmount,
		KindCategory: parseCategory,
	}
)

func parseAmount(criterion string) (Strategy, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(criterion), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q: %v", ErrInvalidCriterion, criterion, err)
	}
	return NewAmountFilter(v), nil
}

func parseCategory(criterion string) (Strategy, error) {
	criterion = strings.TrimSpace(criterion)
	if criterion == "" {
		return nil, fmt.Errorf("%w: empty category", ErrInvalidCriterion)
	}
	return NewCategoryFilter(criterion), nil
}

// New builds the strategy registered for kind from criterion.
func New(kind Kind, criterion string) (Strategy, error) {
	factoriesMu.RLock()
	factory, ok := factories[normalize(kind)]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s (known: %s)", ErrUnknownKind, kind, joinKinds(Kinds()))
	}
	return factory(criterion)
}

// Register adds or replaces the factory for kind.
func Register(kind Kind, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[normalize(kind)] = factory
}

func normalize(kind Kind) Kind {
	return Kind(strings.ToLower(strings.TrimSpace(string(kind))))
}

// Kinds returns the registered kinds, sorted.
func Kinds() []Kind {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	out := make([]Kind, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func joinKinds(kinds []Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
