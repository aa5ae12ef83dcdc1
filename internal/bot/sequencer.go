package bot

import (
	"fmt"
	"regexp"
	"strings"

	"pedebot/internal/models"
)

var yesNoGroupRe = regexp.MustCompile(`guardanapo|talher|colher`)

// handlePending routes a turn into the per-item sub-machine. It takes
// priority over everything except the offensive-content check.
func (e *Engine) handlePending(s *Session, text string) TurnResult {
	p := s.Pending
	if e.catalog.DishByID(p.DishID) == nil {
		// Dish deactivated mid-conversation; abandon the customization.
		s.Pending = nil
		return handled(Reply{Text: msgDishNotFound, QuickReplies: []string{"Ver cardápio"}})
	}
	if p.Selections == nil {
		p.Selections = map[uint][]SelectedOption{}
	}
	if p.Phase == PhaseBeverages {
		return e.handleBeverages(s, text)
	}
	return e.handleComplements(s, text)
}

func (e *Engine) handleBeverages(s *Session, text string) TurnResult {
	p := s.Pending
	offer := p.Offer
	if offer == nil {
		p.Phase = PhaseComplements
		p.GroupIndex = 0
		return e.advanceComplements(s, "")
	}

	norm := Normalize(text)
	dishName := Normalize(offer.DishName)
	accepted := norm == Normalize(offer.Suggestion) ||
		(len(norm) >= 3 && (strings.Contains(norm, dishName) || strings.Contains(dishName, norm)))

	switch {
	case norm == "pular" || strings.HasPrefix(norm, "nao"):
		p.Phase = PhaseComplements
		p.GroupIndex = 0
		return e.advanceComplements(s, "")
	case accepted:
		offerDish := e.catalog.DishByID(offer.DishID)
		item := CartItem{
			DishID: offer.DishID, Name: offer.DishName,
			Quantity: 1, UnitPrice: offer.Price,
		}
		if offerDish != nil {
			item.Type = offerDish.Type
		}
		s.Cart = append(s.Cart, item)
		p.Phase = PhaseComplements
		p.GroupIndex = 0
		prefix := fmt.Sprintf("✅ **%s** adicionado por %s!\n\n", offer.DishName, FormatPrice(offer.Price))
		return e.advanceComplements(s, prefix)
	default:
		// Re-present the same offer, no advance.
		return handled(Reply{Text: offer.Message, QuickReplies: []string{offer.Suggestion, "Pular"}})
	}
}

func (e *Engine) handleComplements(s *Session, text string) TurnResult {
	p := s.Pending
	norm := Normalize(text)
	groups := e.catalog.ActiveGroups(p.DishID)

	if norm == "adicionar ao carrinho" {
		if missing := missingRequiredGroup(p, groups); missing != "" {
			reply := e.pendingPrompt(s)
			reply.Text = fmt.Sprintf("Antes de adicionar, escolha uma opção de **%s**. 😉\n\n", missing) + reply.Text
			return handled(reply)
		}
		return e.finalizePending(s, "")
	}

	if p.GroupIndex >= len(groups) {
		// All groups resolved; anything else re-renders the last prompt.
		return e.advanceComplements(s, "")
	}

	dg := groups[p.GroupIndex]
	opts := activeOptions(dg.Group)

	if norm == "pular" && !dg.IsRequired {
		p.GroupIndex++
		return e.advanceComplements(s, "")
	}

	if isYesNoGroup(dg.Group) {
		switch {
		case norm == "sim" || norm == "s":
			opt := optionNamed(opts, "sim")
			if opt == nil {
				opt = &opts[0]
			}
			p.Selections[dg.Group.ID] = []SelectedOption{{OptionID: opt.ID, Name: opt.Name, Price: opt.Price}}
			p.GroupIndex++
			return e.advanceComplements(s, "")
		case strings.HasPrefix(norm, "nao") || norm == "n":
			if opt := optionNamed(opts, "nao"); opt != nil {
				p.Selections[dg.Group.ID] = []SelectedOption{{OptionID: opt.ID, Name: opt.Name, Price: opt.Price}}
			} else if dg.IsRequired {
				// A required yes/no group with no literal "Não" option cannot
				// be declined; keep asking.
				return e.advanceComplements(s, "")
			}
			p.GroupIndex++
			return e.advanceComplements(s, "")
		}
		return e.advanceComplements(s, "")
	}

	if opt := matchOption(norm, opts); opt != nil {
		sel := p.Selections[dg.Group.ID]
		if dg.Group.MaxSelection <= 1 {
			p.Selections[dg.Group.ID] = []SelectedOption{{OptionID: opt.ID, Name: opt.Name, Price: opt.Price}}
		} else if idx := selectionIndex(sel, opt.ID); idx >= 0 {
			p.Selections[dg.Group.ID] = append(sel[:idx], sel[idx+1:]...)
		} else if len(sel) < dg.Group.MaxSelection {
			p.Selections[dg.Group.ID] = append(sel, SelectedOption{OptionID: opt.ID, Name: opt.Name, Price: opt.Price})
		}
		p.GroupIndex++
		return e.advanceComplements(s, "")
	}

	return e.advanceComplements(s, "")
}

// advanceComplements renders the prompt for the current group, or finalizes
// the item once every group has been resolved.
func (e *Engine) advanceComplements(s *Session, prefix string) TurnResult {
	p := s.Pending
	groups := e.catalog.ActiveGroups(p.DishID)
	if p.GroupIndex >= len(groups) {
		return e.finalizePending(s, prefix)
	}
	reply := e.pendingPrompt(s)
	reply.Text = prefix + reply.Text
	return handled(reply)
}

// finalizePending prices the customized dish, pushes it into the cart,
// clears the sub-machine and re-evaluates cross-sell against the new cart.
func (e *Engine) finalizePending(s *Session, prefix string) TurnResult {
	p := s.Pending
	dish := e.catalog.DishByID(p.DishID)
	item := CartItem{
		DishID:    dish.ID,
		Name:      dish.Name,
		Type:      dish.Type,
		Quantity:  p.Quantity,
		UnitPrice: UnitPrice(dish.Price, p.Selections),
	}
	if len(p.Selections) > 0 {
		item.Selections = p.Selections
	}
	s.Cart = append(s.Cart, item)
	s.Pending = nil

	text := prefix + fmt.Sprintf("✅ **%dx %s** adicionado ao carrinho! Subtotal: %s",
		item.Quantity, item.Name, FormatPrice(Subtotal(s.Cart)))
	quick := []string{"Ver cardápio", "Finalizar pedido"}
	if offer := EvaluateCrossSell(s.Cart, e.catalog, e.store.CrossSell); offer != nil {
		text += "\n\n" + offer.Message
		quick = []string{offer.Suggestion, "Finalizar pedido"}
	}
	return handled(Reply{Text: text, QuickReplies: quick})
}

// pendingPrompt renders the current sub-machine prompt: the cross-sell offer
// during the beverages phase, or the complement group at GroupIndex.
func (e *Engine) pendingPrompt(s *Session) Reply {
	p := s.Pending
	if p.Phase == PhaseBeverages && p.Offer != nil {
		return Reply{Text: p.Offer.Message, QuickReplies: []string{p.Offer.Suggestion, "Pular"}}
	}

	groups := e.catalog.ActiveGroups(p.DishID)
	if p.GroupIndex >= len(groups) {
		dish := e.catalog.DishByID(p.DishID)
		return Reply{Text: fmt.Sprintf("Tudo certo com **%s**?", dish.Name), QuickReplies: []string{"Adicionar ao carrinho"}}
	}

	dg := groups[p.GroupIndex]
	opts := activeOptions(dg.Group)
	if isYesNoGroup(dg.Group) {
		return Reply{Text: fmt.Sprintf("Deseja **%s**?", dg.Group.Name), QuickReplies: []string{"Sim", "Não"}}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Escolha: **%s**", dg.Group.Name)
	if dg.Group.MaxSelection > 1 {
		fmt.Fprintf(&b, " (até %d opções)", dg.Group.MaxSelection)
	}
	quick := make([]string, 0, len(opts)+1)
	for _, o := range opts {
		if o.Price > 0 {
			fmt.Fprintf(&b, "\n• %s (+%s)", o.Name, FormatPrice(o.Price))
		} else {
			fmt.Fprintf(&b, "\n• %s", o.Name)
		}
		quick = append(quick, o.Name)
	}
	if !dg.IsRequired {
		quick = append(quick, "Pular")
	}
	return Reply{Text: b.String(), QuickReplies: quick}
}

// isYesNoGroup reports whether a group renders as a yes/no question: its
// name matches the cutlery/napkin patterns, or every option is literally
// Sim/Não.
func isYesNoGroup(g models.ComplementGroup) bool {
	if yesNoGroupRe.MatchString(Normalize(g.Name)) {
		return true
	}
	opts := activeOptions(g)
	if len(opts) == 0 {
		return false
	}
	for _, o := range opts {
		n := Normalize(o.Name)
		if n != "sim" && n != "nao" {
			return false
		}
	}
	return true
}

func optionNamed(opts []models.ComplementOption, normName string) *models.ComplementOption {
	for i := range opts {
		if Normalize(opts[i].Name) == normName {
			return &opts[i]
		}
	}
	return nil
}

func matchOption(norm string, opts []models.ComplementOption) *models.ComplementOption {
	for i := range opts {
		if Normalize(opts[i].Name) == norm {
			return &opts[i]
		}
	}
	if len(norm) < 3 {
		return nil
	}
	for i := range opts {
		n := Normalize(opts[i].Name)
		if strings.Contains(n, norm) || strings.Contains(norm, n) {
			return &opts[i]
		}
	}
	return nil
}

func selectionIndex(sel []SelectedOption, optionID uint) int {
	for i := range sel {
		if sel[i].OptionID == optionID {
			return i
		}
	}
	return -1
}

func missingRequiredGroup(p *PendingItem, groups []DishGroup) string {
	for _, dg := range groups {
		if dg.IsRequired && len(p.Selections[dg.Group.ID]) == 0 {
			return dg.Group.Name
		}
	}
	return ""
}
