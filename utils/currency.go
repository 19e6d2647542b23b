package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency describes one supported display currency. ExchangeRate is
// relative to USD.
type Currency struct {
	Code         string  `json:"code"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	ExchangeRate float64 `json:"exchangeRate"`
}

var SupportedCurrencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar", ExchangeRate: 1.0},
	{Code: "EUR", Symbol: "€", Name: "Euro", ExchangeRate: 0.85},
	{Code: "GBP", Symbol: "£", Name: "British Pound", ExchangeRate: 0.73},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen", ExchangeRate: 110.0},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar", ExchangeRate: 1.25},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar", ExchangeRate: 1.35},
	{Code: "CHF", Symbol: "CHF", Name: "Swiss Franc", ExchangeRate: 0.92},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan", ExchangeRate: 6.45},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee", ExchangeRate: 74.5},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar", ExchangeRate: 1.35},
}

const DefaultCurrency = "AUD"

var printer = message.NewPrinter(language.English)

func findCurrency(code string) *Currency {
	for i := range SupportedCurrencies {
		if SupportedCurrencies[i].Code == code {
			return &SupportedCurrencies[i]
		}
	}
	return nil
}

// IsSupportedCurrency reports whether code is in the supported table.
func IsSupportedCurrency(code string) bool {
	return findCurrency(code) != nil
}

// ConvertCurrency converts via USD. Unknown codes are treated as rate 1.
func ConvertCurrency(amount float64, fromCode, toCode string) float64 {
	if fromCode == toCode {
		return amount
	}
	fromRate, toRate := 1.0, 1.0
	if c := findCurrency(fromCode); c != nil {
		fromRate = c.ExchangeRate
	}
	if c := findCurrency(toCode); c != nil {
		toRate = c.ExchangeRate
	}
	return amount / fromRate * toRate
}

// FormatCurrency renders an amount with the currency symbol and grouped
// digits. JPY has no fractional digits; everything else gets two. Unknown
// codes fall back to a dollar sign.
func FormatCurrency(amount float64, code string) string {
	c := findCurrency(code)
	if c == nil {
		return "$" + printer.Sprintf("%v", number.Decimal(amount,
			number.MinFractionDigits(0), number.MaxFractionDigits(3)))
	}
	decimals := 2
	if code == "JPY" {
		decimals = 0
	}
	return c.Symbol + printer.Sprintf("%v", number.Decimal(amount,
		number.MinFractionDigits(decimals), number.MaxFractionDigits(decimals)))
}

// CurrencySymbol returns the symbol for code, defaulting to "$".
func CurrencySymbol(code string) string {
	if c := findCurrency(code); c != nil {
		return c.Symbol
	}
	return "$"
}

// CurrencyName returns the display name for code, defaulting to "US Dollar".
func CurrencyName(code string) string {
	if c := findCurrency(code); c != nil {
		return c.Name
	}
	return "US Dollar"
}
