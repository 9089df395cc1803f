package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	// MinorUnitPrecision is the currency's minor-unit precision; amounts
	// with more decimal places are rejected, never silently rounded.
	MinorUnitPrecision = 2

	MaxTransferAmount    = "1000000000" // 1 billion
	MaxDescriptionLength = 140

	DefaultDescription = "Fund Transfer"
)

// ValidateAmount validates a transfer amount: positive, bounded, and at
// most minor-unit precision.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if !amount.Equal(amount.Truncate(MinorUnitPrecision)) {
		return fmt.Errorf("%w: at most %d decimal places", ErrInvalidAmount, MinorUnitPrecision)
	}

	maxAmount, _ := decimal.NewFromString(MaxTransferAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxTransferAmount)
	}

	return nil
}

// ValidateDescription bounds the free-text description.
func ValidateDescription(description string) error {
	if len(strings.TrimSpace(description)) > MaxDescriptionLength {
		return fmt.Errorf("description exceeds %d characters", MaxDescriptionLength)
	}
	return nil
}

// NormalizeDescription trims the description and applies the default
// when it is empty.
func NormalizeDescription(description string) string {
	description = strings.TrimSpace(description)
	if description == "" {
		return DefaultDescription
	}
	return description
}

// ValidatePagination clamps pagination parameters to sane bounds.
func ValidatePagination(page, pageSize int) (int, int) {
	const (
		MaxPageSize     = 100
		DefaultPageSize = 10
	)

	if page <= 0 {
		page = 1
	}

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return page, pageSize
}
