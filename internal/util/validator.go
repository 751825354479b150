package util

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// maxAmount caps single entries at 10 billion; anything above is a typo.
var maxAmount = decimal.NewFromInt(10_000_000_000)

// ValidateAmount verifies an amount is non-negative and sane. Direction is
// carried by the entry type, never by the sign.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("amount must not be negative, got %s", amount)
	}
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("amount too large, got %s", amount)
	}
	return nil
}

// ValidateDate verifies a calendar date in YYYY-MM-DD form.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateCategory verifies the category is present and reasonably sized.
func ValidateCategory(category string) error {
	if category == "" {
		return fmt.Errorf("category is empty")
	}
	if len(category) > 100 {
		return fmt.Errorf("category too long, max 100 characters")
	}
	return nil
}
