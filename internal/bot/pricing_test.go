package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitPriceFlattensSelections(t *testing.T) {
	selections := map[uint][]SelectedOption{
		1: {{OptionID: 11, Name: "Catupiry", Price: 6.00}},
		2: {
			{OptionID: 21, Name: "Bacon", Price: 4.00},
			{OptionID: 23, Name: "Azeitona", Price: 2.50},
		},
	}

	assert.InDelta(t, 55.40, UnitPrice(42.90, selections), 0.001)
	assert.Equal(t, 42.90, UnitPrice(42.90, nil))
}

func TestSubtotalIdentity(t *testing.T) {
	cart := []CartItem{
		{UnitPrice: 48.90, Quantity: 2},
		{UnitPrice: 10.80, Quantity: 1},
	}

	var want float64
	for _, item := range cart {
		want += item.UnitPrice * float64(item.Quantity)
	}
	assert.InDelta(t, want, Subtotal(cart), 0.001)
	assert.Equal(t, 0.0, Subtotal(nil))
}

func TestOrderTotal(t *testing.T) {
	assert.InDelta(t, 53.00, OrderTotal(45.00, 8.00, 0), 0.001)
	assert.InDelta(t, 50.00, OrderTotal(45.00, 10.00, 5.00), 0.001)
}
