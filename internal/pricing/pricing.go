// Package pricing computes order money amounts. Everything here is pure: the
// same inputs always produce the same totals, so callers may recompute at any
// point of an order's lifetime.
package pricing

import "math"

type LineItem struct {
	UnitPrice float64
	Quantity  int
}

type Amounts struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Price computes subtotal, tax and total for a set of line items. The tax rate
// is a deployment constant passed in by the caller, never re-derived.
func Price(items []LineItem, shippingCost, taxRate float64) Amounts {
	var subtotal float64
	for _, it := range items {
		subtotal += it.UnitPrice * float64(it.Quantity)
	}
	subtotal = round2(subtotal)
	tax := round2(subtotal * taxRate)
	return Amounts{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    round2(subtotal + shippingCost + tax),
	}
}

// RecomputeTotal is the single place total arithmetic lives for an order whose
// shipping cost changed. Subtotal and tax stay frozen.
func RecomputeTotal(subtotal, shippingCost, tax float64) float64 {
	return round2(subtotal + shippingCost + tax)
}
