package checkout

import (
	"testing"

	pkgerrors "github.com/glowbeauty/glow-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

func TestQuoteEMI(t *testing.T) {
	principal := decimal.NewFromInt(1000)

	quote, err := QuoteEMI(principal, 6)
	if err != nil {
		t.Fatalf("QuoteEMI: %v", err)
	}
	if !quote.TotalInterest.Equal(decimal.RequireFromString("50")) {
		t.Fatalf("interest: got %s, want 50", quote.TotalInterest)
	}
	if !quote.TotalAmount.Equal(decimal.RequireFromString("1050")) {
		t.Fatalf("total: got %s, want 1050", quote.TotalAmount)
	}
	if !quote.MonthlyAmount.Equal(decimal.RequireFromString("175")) {
		t.Fatalf("monthly: got %s, want 175", quote.MonthlyAmount)
	}
}

func TestQuoteEMIZeroInterestPlan(t *testing.T) {
	quote, err := QuoteEMI(decimal.RequireFromString("99.99"), 3)
	if err != nil {
		t.Fatalf("QuoteEMI: %v", err)
	}
	if !quote.TotalInterest.IsZero() {
		t.Fatalf("3-month plan carries no interest, got %s", quote.TotalInterest)
	}
	if !quote.MonthlyAmount.Equal(decimal.RequireFromString("33.33")) {
		t.Fatalf("monthly: got %s, want 33.33", quote.MonthlyAmount)
	}
}

func TestQuoteEMIRounding(t *testing.T) {
	// 100 * 8% = 8; (100+8)/9 = 12, exact. Use a principal that does not
	// divide evenly to check two-place rounding.
	quote, err := QuoteEMI(decimal.RequireFromString("100.10"), 9)
	if err != nil {
		t.Fatalf("QuoteEMI: %v", err)
	}
	if !quote.TotalInterest.Equal(decimal.RequireFromString("8.01")) {
		t.Fatalf("interest: got %s, want 8.01", quote.TotalInterest)
	}
	if !quote.TotalAmount.Equal(decimal.RequireFromString("108.11")) {
		t.Fatalf("total: got %s, want 108.11", quote.TotalAmount)
	}
	if !quote.MonthlyAmount.Equal(decimal.RequireFromString("12.01")) {
		t.Fatalf("monthly: got %s, want 12.01", quote.MonthlyAmount)
	}
}

func TestQuoteEMIUnknownPlan(t *testing.T) {
	_, err := QuoteEMI(decimal.NewFromInt(100), 4)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestQuoteEMIRequiresPositivePrincipal(t *testing.T) {
	for _, principal := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		_, err := QuoteEMI(principal, 3)
		coded := pkgerrors.As(err)
		if coded == nil || coded.Code() != pkgerrors.CodeValidation {
			t.Fatalf("principal %s: expected validation error, got %v", principal, err)
		}
	}
}

func TestQuoteAllEMIPlans(t *testing.T) {
	quotes, err := QuoteAllEMIPlans(decimal.NewFromInt(1200))
	if err != nil {
		t.Fatalf("QuoteAllEMIPlans: %v", err)
	}
	if len(quotes) != 4 {
		t.Fatalf("expected 4 quotes, got %d", len(quotes))
	}
	months := []int{3, 6, 9, 12}
	for i, quote := range quotes {
		if quote.Months != months[i] {
			t.Fatalf("quote %d: got %d months, want %d", i, quote.Months, months[i])
		}
	}
}
