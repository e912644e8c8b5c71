package billing

import "github.com/shopspring/decimal"

// DefaultCurrency is used whenever settings are unavailable or carry no
// currency code, so exports never fail on formatting.
const DefaultCurrency = "USD"

// Round2 rounds a monetary amount to two decimal places.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Format renders an amount as "<CODE> <value>" with two decimal places,
// e.g. "USD 650.00". A blank currency falls back to DefaultCurrency.
func Format(amount decimal.Decimal, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return currency + " " + amount.StringFixed(2)
}
