// Package pricing computes authoritative order totals. The subtotal always
// comes from snapshotted line-item prices, never from client input.
package pricing

import "github.com/shopspring/decimal"

// Rates carries the checkout-time pricing knobs.
type Rates struct {
	ShippingFlat decimal.Decimal
	TaxRate      decimal.Decimal
}

// Totals is the full price breakdown for an order.
type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Calculate derives shipping, tax and total from a subtotal. Tax applies to
// the subtotal only; amounts are kept at two decimal places.
func Calculate(subtotal decimal.Decimal, rates Rates) Totals {
	shipping := rates.ShippingFlat.Round(2)
	tax := subtotal.Mul(rates.TaxRate).Round(2)
	return Totals{
		Subtotal: subtotal.Round(2),
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax).Round(2),
	}
}

// MinorUnits converts an amount to minor currency units (cents) for the
// payment collaborator, rounding half up.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
