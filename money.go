package smartwallet

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the display currency for statement amounts. The backend
// aggregates UPI, bank and credit-card statements, all in rupees.
const DefaultCurrency = "INR"

// FormatAmount renders an amount in the given currency's conventional format
// (symbol, grouping, fraction digits). An empty currency falls back to
// DefaultCurrency.
func FormatAmount(amount float64, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	cur := money.GetCurrency(currency)
	if cur == nil {
		cur = money.GetCurrency(DefaultCurrency)
	}
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction))
	return money.New(minor.Round(0).IntPart(), cur.Code).Display()
}
