package core

import (
	"errors"
	"math"
	"strings"
)

const (
	Food          = "food"
	Travel        = "travel"
	Bills         = "bills"
	Entertainment = "entertainment"
	Other         = "other"

	// DefaultMaxAmount is the largest amount accepted for a single transaction.
	DefaultMaxAmount = 1000.0
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("invalid category")
)

// DefaultCategories lists the categories accepted out of the box.
var DefaultCategories = []string{Food, Travel, Bills, Entertainment, Other}

// Validator decides whether user input may become a transaction.
type Validator interface {
	IsValidAmount(amount float64) bool
	IsValidCategory(category string) bool
}

// Rules is the default Validator: amounts must be finite, positive and not
// above MaxAmount; categories must be one of Categories.
type Rules struct {
	MaxAmount  float64
	Categories []string
}

// DefaultRules returns the stock validation rules.
func DefaultRules() Rules {
	return Rules{
		MaxAmount:  DefaultMaxAmount,
		Categories: append([]string(nil), DefaultCategories...),
	}
}

func (r Rules) IsValidAmount(amount float64) bool {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return false
	}
	if amount <= 0 {
		return false
	}
	return r.MaxAmount <= 0 || amount <= r.MaxAmount
}

// IsValidCategory reports whether category, once trimmed, exactly matches
// one of the allowed categories.
func (r Rules) IsValidCategory(category string) bool {
	category = strings.TrimSpace(category)
	if category == "" {
		return false
	}
	for _, c := range r.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Validate checks both inputs and returns the first rule that failed.
func (r Rules) Validate(amount float64, category string) error {
	if !r.IsValidAmount(amount) {
		return ErrInvalidAmount
	}
	if !r.IsValidCategory(category) {
		return ErrInvalidCategory
	}
	return nil
}
