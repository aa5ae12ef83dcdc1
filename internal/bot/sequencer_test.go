package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredGroupBlocksEarlyFinalize(t *testing.T) {
	e := newTestEngine(CrossSellConfig{})
	s := NewSession()

	res := e.HandleTurn(s, "quero pizza marguerita")
	require.NotNil(t, s.Pending)
	assert.Contains(t, res.Reply.Text, "Tamanho")
	assert.NotContains(t, res.Reply.QuickReplies, "Pular")

	res = e.HandleTurn(s, "Adicionar ao carrinho")

	assert.Empty(t, s.Cart)
	require.NotNil(t, s.Pending)
	assert.Contains(t, res.Reply.Text, "Antes de adicionar")
	assert.Contains(t, res.Reply.Text, "Tamanho")
}

func TestRequiredGroupCannotBeSkipped(t *testing.T) {
	e := newTestEngine(CrossSellConfig{})
	s := NewSession()

	e.HandleTurn(s, "quero pizza marguerita")
	res := e.HandleTurn(s, "Pular")

	require.NotNil(t, s.Pending)
	assert.Equal(t, 0, s.Pending.GroupIndex)
	assert.Contains(t, res.Reply.Text, "Tamanho")
	assert.Empty(t, s.Cart)
}

// One prompt per group: a dish with a required and an optional group takes
// exactly two turns to resolve, and the item lands in the cart on the second.
func TestGroupSequenceResolvesInOneTurnEach(t *testing.T) {
	e := newTestEngine(CrossSellConfig{})
	s := NewSession()

	e.HandleTurn(s, "quero pizza marguerita")

	res := e.HandleTurn(s, "Grande")
	require.NotNil(t, s.Pending)
	assert.Equal(t, 1, s.Pending.GroupIndex)
	assert.Contains(t, res.Reply.Text, "Extras")
	assert.Contains(t, res.Reply.Text, "até 3 opções")

	res = e.HandleTurn(s, "Bacon")

	assert.Nil(t, s.Pending)
	require.Len(t, s.Cart, 1)
	assert.InDelta(t, 51.90, s.Cart[0].UnitPrice, 0.001) // 39.90 + 8.00 + 4.00
	assert.Contains(t, res.Reply.Text, "adicionado ao carrinho")
}

func TestSingleSelectGroupReplacesSelection(t *testing.T) {
	e := newTestEngine(CrossSellConfig{})
	s := NewSession()
	s.Pending = &PendingItem{
		DishID: 2, Quantity: 1, Phase: PhaseComplements, GroupIndex: 0,
		Selections: map[uint][]SelectedOption{
			3: {{OptionID: 31, Name: "Pequena", Price: 0}},
		},
	}

	e.HandleTurn(s, "Grande")

	require.NotNil(t, s.Pending)
	sel := s.Pending.Selections[3]
	require.Len(t, sel, 1)
	assert.Equal(t, "Grande", sel[0].Name)
}

func TestMultiSelectToggleRemovesSelection(t *testing.T) {
	e := newTestEngine(CrossSellConfig{})
	s := NewSession()
	s.Pending = &PendingItem{
		DishID: 2, Quantity: 1, Phase: PhaseComplements, GroupIndex: 1,
		Selections: map[uint][]SelectedOption{
			3: {{OptionID: 32, Name: "Grande", Price: 8.00}},
			2: {{OptionID: 21, Name: "Bacon", Price: 4.00}},
		},
	}

	e.HandleTurn(s, "Bacon")

	require.Len(t, s.Cart, 1)
	assert.Empty(t, s.Cart[0].Selections[2])
	assert.InDelta(t, 47.90, s.Cart[0].UnitPrice, 0.001)
}

func TestMultiSelectCapIgnoresOverflow(t *testing.T) {
	catalog := testCatalog()
	catalog.Groups[2][1].Group.MaxSelection = 2

	store := Store{Slug: "pizzaria-demo", DeliveryFeeFlat: 10}
	e := NewEngine(catalog, store, nil)

	s := NewSession()
	s.Pending = &PendingItem{
		DishID: 2, Quantity: 1, Phase: PhaseComplements, GroupIndex: 1,
		Selections: map[uint][]SelectedOption{
			3: {{OptionID: 32, Name: "Grande", Price: 8.00}},
			2: {
				{OptionID: 21, Name: "Bacon", Price: 4.00},
				{OptionID: 22, Name: "Cebola caramelizada", Price: 3.00},
			},
		},
	}

	e.HandleTurn(s, "Azeitona")

	require.Len(t, s.Cart, 1)
	assert.Len(t, s.Cart[0].Selections[2], 2)
	assert.InDelta(t, 54.90, s.Cart[0].UnitPrice, 0.001) // azeitona not added
}

func TestYesNoGroupSim(t *testing.T) {
	e := newTestEngine(CrossSellConfig{})
	s := NewSession()

	res := e.HandleTurn(s, "quero pizza portuguesa")
	assert.Contains(t, res.Reply.Text, "Guardanapos e talheres")
	assert.Equal(t, []string{"Sim", "Não"}, res.Reply.QuickReplies)

	e.HandleTurn(s, "Sim")

	require.Len(t, s.Cart, 1)
	require.Len(t, s.Cart[0].Selections[4], 1)
	assert.Equal(t, "Sim", s.Cart[0].Selections[4][0].Name)
	assert.Equal(t, 45.00, s.Cart[0].UnitPrice)
}

func TestYesNoGroupNao(t *testing.T) {
	e := newTestEngine(CrossSellConfig{})
	s := NewSession()

	e.HandleTurn(s, "quero pizza portuguesa")
	e.HandleTurn(s, "não")

	require.Len(t, s.Cart, 1)
	require.Len(t, s.Cart[0].Selections[4], 1)
	assert.Equal(t, "Não", s.Cart[0].Selections[4][0].Name)
}

func TestBeverageOfferAccept(t *testing.T) {
	e := newTestEngine(offersConfig())
	s := NewSession()

	res := e.HandleTurn(s, "quero pizza calabresa")

	require.NotNil(t, s.Pending)
	assert.Equal(t, PhaseBeverages, s.Pending.Phase)
	assert.Contains(t, res.Reply.QuickReplies, "Adicionar Refrigerante 2L")

	res = e.HandleTurn(s, "Adicionar Refrigerante 2L")

	// Beverage lands immediately at the discounted price, then the pizza's
	// complement prompt follows in the same reply.
	require.Len(t, s.Cart, 1)
	assert.Equal(t, uint(3), s.Cart[0].DishID)
	assert.InDelta(t, 10.80, s.Cart[0].UnitPrice, 0.001)
	assert.Contains(t, res.Reply.Text, "R$ 10,80")
	assert.Contains(t, res.Reply.Text, "Borda")

	res = e.HandleTurn(s, "Pular")

	require.Len(t, s.Cart, 2)
	assert.Nil(t, s.Pending)
	// Subtotal 53,70 clears the dessert threshold, so the next offer fires.
	assert.Contains(t, res.Reply.Text, "Pudim")
	assert.Contains(t, res.Reply.QuickReplies, "Adicionar Pudim")
}

func TestBeverageOfferSkip(t *testing.T) {
	e := newTestEngine(offersConfig())
	s := NewSession()

	e.HandleTurn(s, "quero pizza calabresa")
	res := e.HandleTurn(s, "Pular")

	assert.Empty(t, s.Cart)
	require.NotNil(t, s.Pending)
	assert.Equal(t, PhaseComplements, s.Pending.Phase)
	assert.Contains(t, res.Reply.Text, "Borda")
}

func TestBeverageOfferRepresentedOnUnrecognizedReply(t *testing.T) {
	e := newTestEngine(offersConfig())
	s := NewSession()

	first := e.HandleTurn(s, "quero pizza calabresa")
	again := e.HandleTurn(s, "o que?")

	assert.Equal(t, first.Reply.Text, again.Reply.Text)
	assert.Equal(t, PhaseBeverages, s.Pending.Phase)
	assert.Empty(t, s.Cart)
}

func TestBeverageOfferAcceptByDishName(t *testing.T) {
	e := newTestEngine(offersConfig())
	s := NewSession()

	e.HandleTurn(s, "quero pizza calabresa")
	e.HandleTurn(s, "refrigerante")

	require.Len(t, s.Cart, 1)
	assert.Equal(t, uint(3), s.Cart[0].DishID)
}

func TestPendingAbandonedWhenDishDeactivated(t *testing.T) {
	e := newTestEngine(CrossSellConfig{})
	s := NewSession()
	s.Pending = &PendingItem{DishID: 999, Quantity: 1, Phase: PhaseComplements}

	res := e.HandleTurn(s, "Catupiry")

	assert.Nil(t, s.Pending)
	assert.Empty(t, s.Cart)
	assert.Contains(t, res.Reply.QuickReplies, "Ver cardápio")
}
