package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var testRates = Rates{ShippingFlat: dec("10.00"), TaxRate: dec("0.08")}

func TestCalculate(t *testing.T) {
	totals := Calculate(dec("25.00"), testRates)
	if totals.Shipping.String() != "10" {
		t.Errorf("unexpected shipping %s", totals.Shipping)
	}
	if totals.Tax.String() != "2" {
		t.Errorf("unexpected tax %s", totals.Tax)
	}
	if totals.Total.String() != "37" {
		t.Errorf("unexpected total %s", totals.Total)
	}
}

func TestCalculateRoundsTax(t *testing.T) {
	totals := Calculate(dec("19.99"), testRates)
	// 19.99 * 0.08 = 1.5992 -> 1.60
	if totals.Tax.String() != "1.6" {
		t.Errorf("unexpected tax %s", totals.Tax)
	}
	if totals.Total.String() != "31.59" {
		t.Errorf("unexpected total %s", totals.Total)
	}
}

func TestCalculateZeroRates(t *testing.T) {
	totals := Calculate(dec("12.50"), Rates{ShippingFlat: decimal.Zero, TaxRate: decimal.Zero})
	if totals.Total.String() != "12.5" {
		t.Errorf("unexpected total %s", totals.Total)
	}
}

func TestMinorUnits(t *testing.T) {
	cases := map[string]int64{
		"37.00":  3700,
		"31.59":  3159,
		"0.005":  1,
		"0.004":  0,
		"123.45": 12345,
	}
	for amount, want := range cases {
		if got := MinorUnits(dec(amount)); got != want {
			t.Errorf("MinorUnits(%s) = %d, want %d", amount, got, want)
		}
	}
}
