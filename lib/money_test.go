package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{name: "marker and space", input: "$ 123.45", want: 12345},
		{name: "no marker", input: "123.45", want: 12345},
		{name: "integer only", input: "50", want: 5000},
		{name: "integer with marker", input: "€ 50", want: 5000},
		{name: "multi character marker", input: "CHF 7.10", want: 710},
		{name: "one digit fraction", input: "12.5", want: 1250},
		{name: "long fraction truncates", input: "1.999", want: 199},
		{name: "empty", input: "", want: 0},
		{name: "marker only", input: "$ ", want: 0},
		{name: "garbage", input: "abc", want: 0},
		{name: "trailing garbage in integer part", input: "12abc", want: 1200},
		{name: "non digit fraction", input: "3.x5", want: 305},
		{name: "empty fraction", input: "3.", want: 300},
		{name: "second point ends the number", input: "1.2.3", want: 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMoney(tt.input))
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{cents: 12345, want: "123.45"},
		{cents: 10000, want: "100.0"},
		{cents: 0, want: "0.0"},
		{cents: 99, want: "0.99"},
		{cents: 10010, want: "100.10"},
		{cents: 10005, want: "100.5"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(tt.cents))
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$ 2000.0", FormatCurrency("$", 200000))
	assert.Equal(t, "£ 12.34", FormatCurrency("£", 1234))
}

func TestMoneyRoundTrip(t *testing.T) {
	for c := int64(0); c < 100000; c += 100 {
		formatted := FormatMoney(c)
		assert.Equal(t, formatted, FormatMoney(ParseMoney(formatted)), "cents %v", c)
		assert.Equal(t, c, ParseMoney(formatted), "cents %v", c)
	}

	// two digit fractions survive the trip as well
	for c := int64(10); c < 100000; c += 137 {
		if c%100 < 10 {
			continue
		}

		assert.Equal(t, c, ParseMoney(FormatCurrency("$", c)), "cents %v", c)
	}
}
