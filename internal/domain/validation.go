package domain

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxAmount          = "1000000000"
	AmountScale        = 4
	MaxReferenceIDLen  = 64
	MaxMetadataLength  = 4096
	DefaultPageSize    = 20
	MaxPageSize        = 100
	MaxHistoryOffset   = math.MaxInt32
	canonicalUUIDChars = 36
)

// Supported currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true, "CHF": true,
	"CAD": true, "AUD": true, "NZD": true, "SGD": true, "HKD": true,
}

var (
	referenceIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	maxAmount        = decimal.RequireFromString(MaxAmount)
)

// ValidateID validates a UUID identifier and returns its canonical form.
func ValidateID(raw, field string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}

	if len(raw) != canonicalUUIDChars {
		return "", fmt.Errorf("%w: %s has invalid format", ErrInvalidInput, field)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s has invalid format", ErrInvalidInput, field)
	}

	return id.String(), nil
}

// ValidateCurrency validates currency code and returns it upper-cased.
func ValidateCurrency(currency string) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	if !validCurrencies[currency] {
		return "", fmt.Errorf("%w: unsupported currency code", ErrInvalidInput)
	}

	return currency, nil
}

// ValidateAmount parses a positive fixed-point amount with at most four fractional digits.
func ValidateAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", ErrInvalidInput)
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount format", ErrInvalidInput)
	}

	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	if amount.GreaterThan(maxAmount) {
		return decimal.Zero, fmt.Errorf("%w: amount exceeds maximum allowed", ErrInvalidInput)
	}

	if amount.Exponent() < -AmountScale {
		return decimal.Zero, fmt.Errorf("%w: amount precision exceeds %d decimal places", ErrInvalidInput, AmountScale)
	}

	return amount, nil
}

// ValidateReferenceID validates the caller-supplied idempotency key.
func ValidateReferenceID(referenceID string) (string, error) {
	if strings.TrimSpace(referenceID) == "" {
		return "", fmt.Errorf("%w: reference id is required", ErrInvalidInput)
	}

	if !referenceIDRegex.MatchString(referenceID) {
		return "", fmt.Errorf("%w: reference id must be 1-%d characters of [A-Za-z0-9_-]", ErrInvalidInput, MaxReferenceIDLen)
	}

	return referenceID, nil
}

// ValidatePagination validates page bounds and caps size at MaxPageSize.
func ValidatePagination(page, size int) (int, int, error) {
	if page < 0 {
		return 0, 0, fmt.Errorf("%w: page number must be non-negative", ErrInvalidInput)
	}

	if size <= 0 {
		return 0, 0, fmt.Errorf("%w: page size must be positive", ErrInvalidInput)
	}

	if size > MaxPageSize {
		size = MaxPageSize
	}

	if page > MaxHistoryOffset/size {
		return 0, 0, fmt.Errorf("%w: page number too large", ErrInvalidInput)
	}

	return page, size, nil
}

// SanitizeMetadata truncates metadata to MaxMetadataLength characters and strips control characters.
func SanitizeMetadata(metadata string) string {
	if metadata == "" {
		return ""
	}

	if utf8.RuneCountInString(metadata) > MaxMetadataLength {
		runes := []rune(metadata)
		metadata = string(runes[:MaxMetadataLength])
	}

	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, metadata)
}

// MaskID keeps the first eight characters of an identifier for log lines.
func MaskID(id string) string {
	if id == "" {
		return ""
	}
	if len(id) <= 8 {
		return "****"
	}
	return id[:8] + "****"
}
