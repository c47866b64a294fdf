package pricing

// ListBasePrice returns the detail-page price for a size. The detail page and
// the checkout funnel carry independent price tables; they are never merged.
func ListBasePrice(size Size) Money {
	if size == Size100ml {
		return 799
	}
	return 499
}

// TierDiscount returns the detail-page quantity discount as a fraction.
// It is a step function with inclusive lower bounds: 1 bottle pays full
// price, 2 bottles save 10%, 3 or more save 20%.
func TierDiscount(quantity int) float64 {
	switch {
	case quantity >= 3:
		return 0.20
	case quantity >= 2:
		return 0.10
	default:
		return 0
	}
}

// ListTotal computes the detail-page total for a size and quantity with the
// tier discount applied. This is a separate pricing model from the checkout
// stack and shares none of its launch/email/promo logic.
func ListTotal(size Size, quantity int) Money {
	if quantity < 1 {
		quantity = 1
	}
	subtotal := float64(ListBasePrice(size)) * float64(quantity)
	return roundRand(subtotal * (1 - TierDiscount(quantity)))
}
