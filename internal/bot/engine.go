package bot

import (
	"fmt"
	"strings"
	"time"

	"pedebot/internal/models"
	"pedebot/pkg/orders"
)

// Engine drives one conversation turn against an immutable catalog and store
// snapshot. It never performs I/O: order submission is signalled through
// TurnResult.Submit and executed by the caller.
type Engine struct {
	catalog *Catalog
	store   Store
	fee     DeliveryFeeFunc
	now     func() time.Time
}

func NewEngine(catalog *Catalog, store Store, fee DeliveryFeeFunc) *Engine {
	if fee == nil {
		flat := store.DeliveryFeeFlat
		fee = func(string) float64 { return flat }
	}
	return &Engine{catalog: catalog, store: store, fee: fee, now: time.Now}
}

// MenuEntry is one dish rendered in a menu listing.
type MenuEntry struct {
	Dish           models.Dish `json:"dish"`
	CategoryLabel  string      `json:"category_label"`
	ComplementHint string      `json:"complement_hint,omitempty"`
}

// Reply is the turn output: response text plus optional quick replies and
// menu entries.
type Reply struct {
	Text         string      `json:"text"`
	QuickReplies []string    `json:"quick_replies,omitempty"`
	Menu         []MenuEntry `json:"menu,omitempty"`
}

// TurnResult carries the reply plus control signals for the caller. Handled
// is false when neither the parser nor the current step recognized the turn;
// the caller may then try the external assistant before falling back to
// Reply (which already carries the canonical redirect). Submit, when set,
// asks the caller to post the order payload.
type TurnResult struct {
	Reply   Reply
	Handled bool
	Submit  *orders.Payload
}

func handled(r Reply) TurnResult {
	return TurnResult{Reply: r, Handled: true}
}

// HandleTurn processes one free-text utterance, mutating the session.
func (e *Engine) HandleTurn(s *Session, text string) TurnResult {
	if IsOffensive(text) {
		return handled(Reply{Text: msgOffensive})
	}
	if s.Pending != nil {
		return e.handlePending(s, text)
	}

	switch s.Step {
	case StepDeliveryPickup:
		return e.handleDeliveryPickup(s, text)
	case StepAddress:
		return e.handleAddress(s, text)
	case StepPayment:
		return e.handlePayment(s, text)
	case StepChange:
		return e.handleChange(s, text)
	case StepConfirm:
		return e.handleConfirm(s, text)
	}

	cmd := ParseCommand(text, e.catalog)
	if cmd == nil {
		return TurnResult{Reply: Reply{Text: msgDefaultRedirect}}
	}
	return e.dispatch(s, cmd)
}

func (e *Engine) dispatch(s *Session, cmd *Command) TurnResult {
	switch cmd.Intent {
	case IntentGreeting:
		return handled(Reply{Text: e.greeting()})
	case IntentMenu:
		return handled(e.menuReply())
	case IntentHours:
		return handled(Reply{Text: fmt.Sprintf("Nosso horário de funcionamento: **%s** 🕐", e.store.OpeningHours)})
	case IntentAddress:
		return handled(Reply{Text: fmt.Sprintf("Estamos em **%s** 📍", e.store.Address)})
	case IntentContact:
		return handled(Reply{Text: fmt.Sprintf("Fale com a gente: **%s** 📞", e.store.Phone)})
	case IntentDeliveryFAQ:
		return handled(Reply{Text: "Fazemos entrega sim! 🛵 A taxa varia conforme o bairro e aparece no resumo antes de você confirmar."})
	case IntentPaymentFAQ:
		return handled(Reply{Text: "Aceitamos **Pix**, **dinheiro** e **cartão** (crédito ou débito) na entrega. 💳"})
	case IntentTrackOrder:
		return handled(Reply{Text: msgTrackOrder})
	case IntentRecommend:
		return handled(e.recommendReply())
	case IntentViewCart:
		return handled(e.cartReply(s))
	case IntentFinalize:
		return e.startCheckout(s)
	case IntentAddItem:
		return e.startAddItem(s, cmd)
	}
	return TurnResult{Reply: Reply{Text: msgDefaultRedirect}}
}

func (e *Engine) greeting() string {
	var hello string
	switch h := e.now().Hour(); {
	case h < 12:
		hello = "Bom dia"
	case h < 18:
		hello = "Boa tarde"
	default:
		hello = "Boa noite"
	}
	return fmt.Sprintf("%s! 😊 Bem-vindo ao **%s**. Posso ajudar com cardápio, pedidos ou horários.", hello, e.store.Name)
}

func (e *Engine) menuReply() Reply {
	var entries []MenuEntry
	for _, d := range e.catalog.ActiveDishes() {
		hint := ""
		if groups := e.catalog.ActiveGroups(d.ID); len(groups) > 0 {
			names := make([]string, 0, len(groups))
			for _, dg := range groups {
				names = append(names, dg.Group.Name)
			}
			hint = "Personalize: " + strings.Join(names, ", ")
		}
		entries = append(entries, MenuEntry{
			Dish:           d,
			CategoryLabel:  e.catalog.CategoryName(d.CategoryID),
			ComplementHint: hint,
		})
	}
	return Reply{
		Text: "Aqui está o nosso cardápio! 🍕 Para pedir, é só dizer \"quero\" e o nome do prato.",
		Menu: entries,
	}
}

func (e *Engine) recommendReply() Reply {
	for _, d := range e.catalog.ActiveDishes() {
		if d.Type == "pizza" {
			return Reply{
				Text:         fmt.Sprintf("Minha recomendação: **%s** por %s. 😋", d.Name, FormatPrice(d.Price)),
				QuickReplies: []string{"Adicionar " + d.Name},
			}
		}
	}
	return e.menuReply()
}

func (e *Engine) cartReply(s *Session) Reply {
	if len(s.Cart) == 0 {
		return Reply{Text: msgEmptyCart, QuickReplies: []string{"Ver cardápio"}}
	}
	var b strings.Builder
	b.WriteString("🛒 **Seu pedido até agora:**\n")
	for _, item := range s.Cart {
		fmt.Fprintf(&b, "\n%dx %s — %s", item.Quantity, item.Name, FormatPrice(item.UnitPrice*float64(item.Quantity)))
	}
	fmt.Fprintf(&b, "\n\nSubtotal: **%s**", FormatPrice(Subtotal(s.Cart)))
	return Reply{Text: b.String(), QuickReplies: []string{"Finalizar pedido", "Ver cardápio"}}
}

func (e *Engine) startCheckout(s *Session) TurnResult {
	if len(s.Cart) == 0 {
		return handled(Reply{Text: msgEmptyCart, QuickReplies: []string{"Ver cardápio"}})
	}
	s.Step = StepDeliveryPickup
	return handled(Reply{Text: msgDeliveryPickup, QuickReplies: []string{"Entrega", "Retirada"}})
}

func (e *Engine) startAddItem(s *Session, cmd *Command) TurnResult {
	if cmd.Dish == nil {
		return handled(Reply{Text: msgDishNotFound, QuickReplies: []string{"Ver cardápio"}})
	}
	dish := cmd.Dish

	tentative := append(append([]CartItem{}, s.Cart...), CartItem{
		DishID: dish.ID, Name: dish.Name, Type: dish.Type,
		Quantity: cmd.Quantity, UnitPrice: dish.Price,
	})
	offer := EvaluateCrossSell(tentative, e.catalog, e.store.CrossSell)
	groups := e.catalog.ActiveGroups(dish.ID)

	if offer == nil && len(groups) == 0 {
		s.Cart = append(s.Cart, CartItem{
			DishID: dish.ID, Name: dish.Name, Type: dish.Type,
			Quantity: cmd.Quantity, UnitPrice: dish.Price,
		})
		text := fmt.Sprintf("✅ **%dx %s** no carrinho! Subtotal: %s", cmd.Quantity, dish.Name, FormatPrice(Subtotal(s.Cart)))
		return handled(Reply{Text: text, QuickReplies: []string{"Ver cardápio", "Finalizar pedido"}})
	}

	phase := PhaseComplements
	if offer != nil {
		phase = PhaseBeverages
	}
	s.Pending = &PendingItem{
		DishID:     dish.ID,
		Quantity:   cmd.Quantity,
		Phase:      phase,
		Selections: map[uint][]SelectedOption{},
		Offer:      offer,
	}
	return handled(e.pendingPrompt(s))
}

func (e *Engine) handleDeliveryPickup(s *Session, text string) TurnResult {
	norm := Normalize(text)
	switch {
	case strings.Contains(norm, "entrega"):
		s.Customer.DeliveryMethod = "delivery"
	case strings.Contains(norm, "retira"), strings.Contains(norm, "buscar"):
		s.Customer.DeliveryMethod = "pickup"
	default:
		return handled(Reply{Text: msgDeliveryPickup, QuickReplies: []string{"Entrega", "Retirada"}})
	}
	s.Step = StepAddress
	s.AddressFieldIndex = 0
	return handled(Reply{Text: msgAskName})
}

func (e *Engine) handleAddress(s *Session, text string) TurnResult {
	switch s.AddressFieldIndex {
	case 0:
		s.Customer.Name = strings.TrimSpace(text)
		s.AddressFieldIndex = 1
		return handled(Reply{Text: msgAskPhone})
	case 1:
		digits := OnlyDigits(text)
		if len(digits) < 10 {
			return handled(Reply{Text: msgPhoneInvalid})
		}
		s.Customer.Phone = digits
		if s.Customer.DeliveryMethod == "pickup" {
			s.Step = StepPayment
			return handled(e.paymentPrompt())
		}
		s.AddressFieldIndex = 2
		return handled(Reply{Text: msgAskAddress})
	case 2:
		line := ParseAddressLine(text)
		s.Customer.Street = line.Street
		s.Customer.Number = line.Number
		s.Customer.Complement = line.Complement
		s.AddressFieldIndex = 3
		return handled(Reply{Text: msgAskNeighborhood})
	default:
		s.Customer.Neighborhood = strings.TrimSpace(text)
		s.Customer.Address = composeAddress(s.Customer)
		s.Step = StepPayment
		return handled(e.paymentPrompt())
	}
}

func composeAddress(c Customer) string {
	addr := c.Street
	if c.Number != "" {
		addr += ", " + c.Number
	}
	if c.Complement != "" {
		addr += ", " + c.Complement
	}
	if c.Neighborhood != "" {
		addr += " - " + c.Neighborhood
	}
	return addr
}

func (e *Engine) paymentPrompt() Reply {
	return Reply{
		Text:         msgAskPayment,
		QuickReplies: []string{"Pix", "Dinheiro", "Cartão de crédito", "Cartão de débito"},
	}
}

func (e *Engine) handlePayment(s *Session, text string) TurnResult {
	s.Customer.PaymentMethod = MapPaymentMethod(text)
	if s.Customer.PaymentMethod == "dinheiro" {
		s.Step = StepChange
		return handled(Reply{Text: fmt.Sprintf(msgAskChangeFmt, FormatPrice(e.orderTotal(s)))})
	}
	s.Step = StepConfirm
	return handled(e.confirmPrompt(s))
}

func (e *Engine) handleChange(s *Session, text string) TurnResult {
	if DeclinesChange(text) {
		s.Customer.NeedsChange = false
		s.Customer.ChangeAmount = nil
		s.Step = StepConfirm
		return handled(e.confirmPrompt(s))
	}
	amount, ok := ExtractAmount(text)
	if !ok {
		return handled(Reply{Text: msgChangeUnparseable})
	}
	total := e.orderTotal(s)
	if amount < total {
		return handled(Reply{Text: fmt.Sprintf(msgChangeBelowTotalFmt, FormatPrice(total))})
	}
	s.Customer.NeedsChange = true
	s.Customer.ChangeAmount = &amount
	s.Step = StepConfirm
	return handled(e.confirmPrompt(s))
}

func (e *Engine) handleConfirm(s *Session, text string) TurnResult {
	norm := Normalize(text)
	switch {
	case strings.Contains(norm, "nao"), strings.Contains(norm, "cancel"):
		s.Cart = nil
		s.Customer = Customer{}
		s.Step = StepIdle
		return handled(Reply{Text: msgOrderCancelled})
	case strings.Contains(norm, "sim"), strings.Contains(norm, "confirm"),
		norm == "ok", norm == "isso", strings.Contains(norm, "pode ser"):
		return TurnResult{Handled: true, Submit: e.buildPayload(s), Reply: e.confirmPrompt(s)}
	}
	return handled(e.confirmPrompt(s))
}

func (e *Engine) confirmPrompt(s *Session) Reply {
	var b strings.Builder
	b.WriteString("📋 **Resumo do pedido:**\n")
	for _, item := range s.Cart {
		fmt.Fprintf(&b, "\n%dx %s — %s", item.Quantity, item.Name, FormatPrice(item.UnitPrice*float64(item.Quantity)))
		for _, opts := range item.Selections {
			for _, o := range opts {
				fmt.Fprintf(&b, "\n   + %s", o.Name)
			}
		}
	}
	subtotal := Subtotal(s.Cart)
	fmt.Fprintf(&b, "\n\nSubtotal: %s", FormatPrice(subtotal))
	if s.Customer.DeliveryMethod == "delivery" {
		fmt.Fprintf(&b, "\nTaxa de entrega: %s", FormatPrice(e.fee(s.Customer.Neighborhood)))
		fmt.Fprintf(&b, "\nEndereço: %s", s.Customer.Address)
	} else {
		b.WriteString("\nRetirada no balcão")
	}
	fmt.Fprintf(&b, "\nPagamento: %s", PaymentDisplayName(s.Customer.PaymentMethod))
	if s.Customer.NeedsChange && s.Customer.ChangeAmount != nil {
		fmt.Fprintf(&b, " (troco para %s)", FormatPrice(*s.Customer.ChangeAmount))
	}
	fmt.Fprintf(&b, "\n**Total: %s**", FormatPrice(e.orderTotal(s)))
	b.WriteString("\n\nPosso confirmar?")
	return Reply{Text: b.String(), QuickReplies: []string{"Sim, confirmar", "Não, cancelar"}}
}

func (e *Engine) orderTotal(s *Session) float64 {
	fee := 0.0
	if s.Customer.DeliveryMethod == "delivery" {
		fee = e.fee(s.Customer.Neighborhood)
	}
	return OrderTotal(Subtotal(s.Cart), fee, 0)
}

func (e *Engine) buildPayload(s *Session) *orders.Payload {
	subtotal := Subtotal(s.Cart)
	fee := 0.0
	if s.Customer.DeliveryMethod == "delivery" {
		fee = e.fee(s.Customer.Neighborhood)
	}

	items := make([]orders.Item, 0, len(s.Cart))
	for _, it := range s.Cart {
		item := orders.Item{
			DishID:     it.DishID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.UnitPrice * float64(it.Quantity),
		}
		if len(it.Selections) > 0 {
			item.Selections = make(map[uint][]orders.ItemOption, len(it.Selections))
			for groupID, opts := range it.Selections {
				for _, o := range opts {
					item.Selections[groupID] = append(item.Selections[groupID], orders.ItemOption{
						OptionID: o.OptionID, Name: o.Name, Price: o.Price,
					})
				}
			}
		}
		items = append(items, item)
	}

	return &orders.Payload{
		Slug:              e.store.Slug,
		OrderCode:         fmt.Sprintf("PED-%d", e.now().Unix()),
		CustomerName:      s.Customer.Name,
		CustomerPhone:     OnlyDigits(s.Customer.Phone),
		CustomerEmail:     s.Customer.Email,
		DeliveryMethod:    s.Customer.DeliveryMethod,
		Address:           s.Customer.Address,
		AddressStreet:     s.Customer.Street,
		AddressNumber:     s.Customer.Number,
		AddressComplement: s.Customer.Complement,
		Neighborhood:      s.Customer.Neighborhood,
		PaymentMethod:     s.Customer.PaymentMethod,
		NeedsChange:       s.Customer.NeedsChange,
		ChangeAmount:      s.Customer.ChangeAmount,
		Items:             items,
		Subtotal:          subtotal,
		DeliveryFee:       fee,
		Discount:          0,
		Total:             OrderTotal(subtotal, fee, 0),
		Status:            "new",
	}
}

// SubmitSuccessReply is the turn output after the gateway accepted the order.
func SubmitSuccessReply(orderCode string) Reply {
	return Reply{Text: fmt.Sprintf(msgSubmitSuccessFmt, orderCode)}
}

// SubmitFailureReply surfaces a submission error with a retry suggestion.
// The session stays at the confirm step so "sim" retries.
func SubmitFailureReply(errText string) Reply {
	if errText == "" {
		errText = "erro inesperado"
	}
	return Reply{
		Text:         fmt.Sprintf(msgSubmitFailureFmt, errText),
		QuickReplies: []string{"Sim, tentar novamente", "Não, cancelar"},
	}
}
