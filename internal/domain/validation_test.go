package domain

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"canonical", "550e8400-e29b-41d4-a716-446655440000", "550e8400-e29b-41d4-a716-446655440000", false},
		{"upper case normalized", "550E8400-E29B-41D4-A716-446655440000", "550e8400-e29b-41d4-a716-446655440000", false},
		{"surrounding spaces", "  550e8400-e29b-41d4-a716-446655440000 ", "550e8400-e29b-41d4-a716-446655440000", false},
		{"empty", "", "", true},
		{"blank", "   ", "", true},
		{"not a uuid", "not-a-uuid", "", true},
		{"braced form", "{550e8400-e29b-41d4-a716-446655440000}", "", true},
		{"urn form", "urn:uuid:550e8400-e29b-41d4-a716-446655440000", "", true},
		{"bad hex", "550e8400-e29b-41d4-a716-44665544000z", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateID(tt.input, "account_id")
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestValidateIDMessageNamesField(t *testing.T) {
	_, err := ValidateID("", "from_account_id")
	if err == nil || !strings.Contains(err.Error(), "from_account_id is required") {
		t.Fatalf("expected field name in error, got %v", err)
	}
}

func TestValidateCurrency(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"USD", "USD", false},
		{"usd", "USD", false},
		{" eur ", "EUR", false},
		{"HKD", "HKD", false},
		{"XYZ", "", true},
		{"", "", true},
		{"US", "", true},
		{"USDT", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ValidateCurrency(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput for %q, got %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"integer", "100", "100", false},
		{"two decimals", "100.50", "100.5", false},
		{"four decimals", "100.1234", "100.1234", false},
		{"trimmed", " 50.00 ", "50", false},
		{"maximum", "1000000000", "1000000000", false},
		{"five decimals", "100.12345", "", true},
		{"trailing zero beyond scale", "1.00000", "", true},
		{"zero", "0", "", true},
		{"negative", "-10", "", true},
		{"above maximum", "1000000000.0001", "", true},
		{"empty", "", "", true},
		{"garbage", "abc", "", true},
		{"smallest unit", "0.0001", "0.0001", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateAmount(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput for %q, got %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got.String())
			}
		})
	}
}

func TestValidateAmountKeepsPrecision(t *testing.T) {
	got, err := ValidateAmount("100.1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StringFixed(AmountScale) != "100.1234" {
		t.Fatalf("expected 100.1234 unchanged, got %s", got.StringFixed(AmountScale))
	}
}

func TestValidateReferenceID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "ref-1", false},
		{"underscore", "order_2024_01", false},
		{"max length", strings.Repeat("a", MaxReferenceIDLen), false},
		{"too long", strings.Repeat("a", MaxReferenceIDLen+1), true},
		{"empty", "", true},
		{"blank", "   ", true},
		{"space inside", "ref 1", true},
		{"special chars", "ref;DROP", true},
		{"unicode", "réf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateReferenceID(tt.input)
			if tt.wantErr && !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		size     int
		wantSize int
		wantErr  bool
	}{
		{"valid", 0, 20, 20, false},
		{"capped", 3, 500, MaxPageSize, false},
		{"exact cap", 1, MaxPageSize, MaxPageSize, false},
		{"negative page", -1, 20, 0, true},
		{"zero size", 0, 0, 0, true},
		{"negative size", 0, -5, 0, true},
		{"last addressable page", MaxHistoryOffset / MaxPageSize, MaxPageSize, MaxPageSize, false},
		{"offset overflow", MaxHistoryOffset/MaxPageSize + 1, MaxPageSize, 0, true},
		{"huge page", math.MaxInt / 50, 500, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size, err := ValidatePagination(tt.page, tt.size)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if page != tt.page || size != tt.wantSize {
				t.Fatalf("expected (%d, %d), got (%d, %d)", tt.page, tt.wantSize, page, size)
			}
		})
	}
}

func TestSanitizeMetadata(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text kept", "invoice #42 paid", "invoice #42 paid"},
		{"control chars removed", "test\x00data\nwith\tcontrol\x7f", "testdatawithcontrol"},
		{"unicode kept", "café ☕", "café ☕"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeMetadata(tt.input); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSanitizeMetadataTruncates(t *testing.T) {
	got := SanitizeMetadata(strings.Repeat("x", MaxMetadataLength+100))
	if len(got) != MaxMetadataLength {
		t.Fatalf("expected %d characters, got %d", MaxMetadataLength, len(got))
	}

	multiByte := SanitizeMetadata(strings.Repeat("é", MaxMetadataLength+1))
	if n := len([]rune(multiByte)); n != MaxMetadataLength {
		t.Fatalf("expected %d runes, got %d", MaxMetadataLength, n)
	}
}

func TestMaskID(t *testing.T) {
	if got := MaskID("550e8400-e29b-41d4-a716-446655440000"); got != "550e8400****" {
		t.Fatalf("unexpected mask: %s", got)
	}
	if got := MaskID("short"); got != "****" {
		t.Fatalf("expected short ids fully masked, got %s", got)
	}
	if got := MaskID(""); got != "" {
		t.Fatalf("expected empty, got %s", got)
	}
}
