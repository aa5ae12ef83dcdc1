package bot

// UnitPrice computes the unit total of a customized item: base price (catalog
// or cross-sell override) plus every selected complement option, multi-select
// lists flattened.
func UnitPrice(base float64, selections map[uint][]SelectedOption) float64 {
	total := base
	for _, opts := range selections {
		for _, o := range opts {
			total += o.Price
		}
	}
	return total
}

// Subtotal sums unit total times quantity across the cart.
func Subtotal(cart []CartItem) float64 {
	var total float64
	for _, item := range cart {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// OrderTotal composes the final amount. Discount is reserved for future
// coupon logic and is always 0 today.
func OrderTotal(subtotal, deliveryFee, discount float64) float64 {
	return subtotal + deliveryFee - discount
}
