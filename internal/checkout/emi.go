package checkout

import (
	pkgerrors "github.com/glowbeauty/glow-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// EMIPlan is an installment option offered at checkout.
type EMIPlan struct {
	Months       int             `json:"months"`
	InterestRate decimal.Decimal `json:"interest_rate"`
}

// EMIQuote is a plan priced against a concrete principal. All money values
// are rounded to two places.
type EMIQuote struct {
	Months        int             `json:"months"`
	InterestRate  decimal.Decimal `json:"interest_rate"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
}

var emiPlans = []EMIPlan{
	{Months: 3, InterestRate: decimal.NewFromInt(0)},
	{Months: 6, InterestRate: decimal.NewFromInt(5)},
	{Months: 9, InterestRate: decimal.NewFromInt(8)},
	{Months: 12, InterestRate: decimal.NewFromInt(10)},
}

// EMIPlans returns the available installment options.
func EMIPlans() []EMIPlan {
	plans := make([]EMIPlan, len(emiPlans))
	copy(plans, emiPlans)
	return plans
}

func planForMonths(months int) (EMIPlan, bool) {
	for _, plan := range emiPlans {
		if plan.Months == months {
			return plan, true
		}
	}
	return EMIPlan{}, false
}

var oneHundred = decimal.NewFromInt(100)

// QuoteEMI prices one plan: flat interest of principal*rate/100 spread evenly
// across the term.
func QuoteEMI(principal decimal.Decimal, months int) (EMIQuote, error) {
	if !principal.IsPositive() {
		return EMIQuote{}, pkgerrors.New(pkgerrors.CodeValidation, "principal must be positive")
	}
	plan, ok := planForMonths(months)
	if !ok {
		return EMIQuote{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown installment plan").
			WithDetails(map[string]int{"months": months})
	}

	interest := principal.Mul(plan.InterestRate).Div(oneHundred).Round(2)
	total := principal.Add(interest).Round(2)
	monthly := total.DivRound(decimal.NewFromInt(int64(plan.Months)), 2)

	return EMIQuote{
		Months:        plan.Months,
		InterestRate:  plan.InterestRate,
		TotalInterest: interest,
		TotalAmount:   total,
		MonthlyAmount: monthly,
	}, nil
}

// QuoteAllEMIPlans prices every plan against the principal.
func QuoteAllEMIPlans(principal decimal.Decimal) ([]EMIQuote, error) {
	quotes := make([]EMIQuote, 0, len(emiPlans))
	for _, plan := range emiPlans {
		quote, err := QuoteEMI(principal, plan.Months)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}
