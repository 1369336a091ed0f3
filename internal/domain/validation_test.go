package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAccountName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid name", "savings", nil},
		{"empty name", "", ErrAccountNameEmpty},
		{"whitespace only", "   ", ErrAccountNameEmpty},
		{"too long", strings.Repeat("a", 256), ErrAccountNameEmpty},
		{"default account name", "default", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccountName(tt.input)
			if err != tt.wantErr {
				t.Errorf("ValidateAccountName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid email", "me@kinsonleung.com", nil},
		{"uppercase email", "ME@EXAMPLE.COM", nil},
		{"missing at", "kinsonleung.com", ErrInvalidEmail},
		{"missing domain", "me@", ErrInvalidEmail},
		{"empty", "", ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.input)
			if err != tt.wantErr {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  decimal.Decimal
		wantErr error
	}{
		{"positive amount", decimal.NewFromInt(20), nil},
		{"zero amount", decimal.Zero, ErrInvalidAmount},
		{"negative amount", decimal.NewFromInt(-5), ErrInvalidAmount},
		{"fractional amount", decimal.NewFromFloat(0.01), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount)
			if err != tt.wantErr {
				t.Errorf("ValidateAmount(%s) = %v, want %v", tt.amount, err, tt.wantErr)
			}
		})
	}
}
