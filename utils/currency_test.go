package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertCurrency(t *testing.T) {
	assert.Equal(t, 100.0, ConvertCurrency(100, "USD", "USD"))
	assert.InDelta(t, 85.0, ConvertCurrency(100, "USD", "EUR"), 0.001)
	assert.InDelta(t, 100.0, ConvertCurrency(85, "EUR", "USD"), 0.001)
	// EUR -> JPY goes through USD.
	assert.InDelta(t, 100.0/0.85*110.0, ConvertCurrency(100, "EUR", "JPY"), 0.001)
	// Unknown codes behave as rate 1.
	assert.InDelta(t, 85.0, ConvertCurrency(100, "XXX", "EUR"), 0.001)
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		code   string
		want   string
	}{
		{1234.5, "USD", "$1,234.50"},
		{1500, "AUD", "A$1,500.00"},
		{1500, "JPY", "¥1,500"},
		{980.4, "EUR", "€980.40"},
		{1234.5, "XXX", "$1,234.5"},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, FormatCurrency(tt.amount, tt.code), "%v %s", tt.amount, tt.code)
	}
}

func TestCurrencyLookups(t *testing.T) {
	assert.Equal(t, "₹", CurrencySymbol("INR"))
	assert.Equal(t, "$", CurrencySymbol("XXX"))
	assert.Equal(t, "Swiss Franc", CurrencyName("CHF"))
	assert.Equal(t, "US Dollar", CurrencyName("XXX"))
	assert.True(t, IsSupportedCurrency("SGD"))
	assert.False(t, IsSupportedCurrency("BTC"))
}
