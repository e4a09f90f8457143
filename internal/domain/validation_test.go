package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateCurrency(t *testing.T) {
	tests := []struct {
		name        string
		currency    string
		expectError bool
	}{
		{name: "USD", currency: "USD"},
		{name: "lowercase", currency: "eur"},
		{name: "padded", currency: " GBP "},
		{name: "unsupported", currency: "XXX", expectError: true},
		{name: "empty", currency: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCurrency(tt.currency)
			if tt.expectError && !errors.Is(err, ErrInvalidCurrency) {
				t.Errorf("expected ErrInvalidCurrency, got %v", err)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateAccountNumber(t *testing.T) {
	tests := []struct {
		name        string
		number      string
		expectError bool
	}{
		{name: "ten digits", number: "1234567890"},
		{name: "twelve digits", number: "123456789012"},
		{name: "too short", number: "123456789", expectError: true},
		{name: "too long", number: "1234567890123", expectError: true},
		{name: "letters", number: "12345abcde", expectError: true},
		{name: "empty", number: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccountNumber(tt.number)
			if tt.expectError && !errors.Is(err, ErrInvalidAccountNumber) {
				t.Errorf("expected ErrInvalidAccountNumber, got %v", err)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		errorType error
	}{
		{name: "one cent minimum", amount: "0.01"},
		{name: "typical amount", amount: "250.75"},
		{name: "at the cap", amount: MaxTransferAmount},
		{name: "zero", amount: "0", errorType: ErrInvalidAmount},
		{name: "negative", amount: "-5", errorType: ErrInvalidAmount},
		{name: "below minimum", amount: "0.001", errorType: ErrAmountTooSmall},
		{name: "above the cap", amount: "1000000000.01", errorType: ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(decimal.RequireFromString(tt.amount))
			if tt.errorType == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.errorType != nil && !errors.Is(err, tt.errorType) {
				t.Errorf("expected %v, got %v", tt.errorType, err)
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	if err := ValidateDescription(strings.Repeat("a", MaxDescriptionLength)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateDescription(strings.Repeat("a", MaxDescriptionLength+1)); !errors.Is(err, ErrDescriptionTooLong) {
		t.Errorf("expected ErrDescriptionTooLong, got %v", err)
	}
	if err := ValidateDescription(""); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{name: "valid values pass through", limit: 25, offset: 100, wantLimit: 25, wantOffset: 100},
		{name: "zero limit gets default", limit: 0, offset: 0, wantLimit: 50, wantOffset: 0},
		{name: "oversized limit is capped", limit: 5000, offset: 0, wantLimit: 1000, wantOffset: 0},
		{name: "negative offset is floored", limit: 10, offset: -5, wantLimit: 10, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := ValidatePagination(tt.limit, tt.offset)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("expected (%d, %d), got (%d, %d)", tt.wantLimit, tt.wantOffset, limit, offset)
			}
		})
	}
}
