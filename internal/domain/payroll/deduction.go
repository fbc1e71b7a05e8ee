package payroll

import "github.com/shopspring/decimal"

// Statutory contribution rates and monthly caps.
var (
	SSSRate        = decimal.RequireFromString("0.045")
	SSSCap         = decimal.RequireFromString("1125.00")
	PhilHealthRate = decimal.RequireFromString("0.04")
	PhilHealthCap  = decimal.RequireFromString("1800.00")
	PagIBIGRate    = decimal.RequireFromString("0.02")
	PagIBIGCap     = decimal.RequireFromString("100.00")
)

// TaxBracket is one row of the withholding table: income above Over pays
// BaseTax plus Rate on the excess.
type TaxBracket struct {
	Over    decimal.Decimal `json:"over"`
	BaseTax decimal.Decimal `json:"base_tax"`
	Rate    decimal.Decimal `json:"rate"`
}

// BIR semi-monthly withholding tax table, RR 11-2018 Annex E (2018-2022).
var semiMonthlyBrackets = []TaxBracket{
	{Over: decimal.Zero, BaseTax: decimal.Zero, Rate: decimal.Zero},
	{Over: decimal.NewFromInt(10417), BaseTax: decimal.Zero, Rate: decimal.RequireFromString("0.20")},
	{Over: decimal.NewFromInt(16667), BaseTax: decimal.RequireFromString("1250.00"), Rate: decimal.RequireFromString("0.25")},
	{Over: decimal.NewFromInt(33333), BaseTax: decimal.RequireFromString("5416.67"), Rate: decimal.RequireFromString("0.30")},
	{Over: decimal.NewFromInt(83333), BaseTax: decimal.RequireFromString("20416.67"), Rate: decimal.RequireFromString("0.32")},
	{Over: decimal.NewFromInt(333333), BaseTax: decimal.RequireFromString("100416.67"), Rate: decimal.RequireFromString("0.35")},
}

// TaxBrackets returns a copy of the withholding table in ascending order.
func TaxBrackets() []TaxBracket {
	out := make([]TaxBracket, len(semiMonthlyBrackets))
	copy(out, semiMonthlyBrackets)
	return out
}

func SSSDeduction(monthlySalary decimal.Decimal) decimal.Decimal {
	return contribution(monthlySalary, SSSRate, SSSCap)
}

func PhilHealthDeduction(monthlySalary decimal.Decimal) decimal.Decimal {
	return contribution(monthlySalary, PhilHealthRate, PhilHealthCap)
}

func PagIBIGDeduction(monthlySalary decimal.Decimal) decimal.Decimal {
	return contribution(monthlySalary, PagIBIGRate, PagIBIGCap)
}

// WithholdingTax applies the semi-monthly table to taxable income.
func WithholdingTax(taxableIncome decimal.Decimal) decimal.Decimal {
	taxable := nonNegative(taxableIncome)
	for i := len(semiMonthlyBrackets) - 1; i >= 0; i-- {
		b := semiMonthlyBrackets[i]
		if taxable.GreaterThanOrEqual(b.Over) {
			return b.BaseTax.Add(taxable.Sub(b.Over).Mul(b.Rate)).Round(2)
		}
	}
	return decimal.Zero
}

func contribution(salary, rate, limit decimal.Decimal) decimal.Decimal {
	return decimal.Min(nonNegative(salary).Mul(rate).Round(2), limit)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
