package services

import "math"

// Money values are decimal major units with three decimal places
// (e.g. 19.900). roundMoney keeps float arithmetic from leaking sub-mill
// noise into stored amounts.
func roundMoney(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// computeTotal applies the order total formula:
// total = max(0, subtotal - discountAmount) + deliveryFees.
func computeTotal(subtotal, discountAmount, deliveryFees float64) float64 {
	t := subtotal - discountAmount
	if t < 0 {
		t = 0
	}
	return roundMoney(t + deliveryFees)
}
