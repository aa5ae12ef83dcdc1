package bot

import (
	"regexp"
	"strconv"
	"strings"

	"pedebot/internal/models"
)

// Intent is a recognized free-text command.
type Intent string

const (
	IntentGreeting    Intent = "greeting"
	IntentMenu        Intent = "menu"
	IntentHours       Intent = "hours"
	IntentAddress     Intent = "address"
	IntentContact     Intent = "contact"
	IntentDeliveryFAQ Intent = "delivery_faq"
	IntentPaymentFAQ  Intent = "payment_faq"
	IntentTrackOrder  Intent = "track_order"
	IntentRecommend   Intent = "recommend"
	IntentFinalize    Intent = "finalize"
	IntentAddItem     Intent = "add_item"
	IntentViewCart    Intent = "view_cart"
)

// Command is the parsed form of one turn. Dish and Quantity are set only for
// IntentAddItem.
type Command struct {
	Intent   Intent
	Dish     *models.Dish
	Quantity int
}

var addItemRe = regexp.MustCompile(`(?:adicionar|quero|pedir)\s+(?:(\d+)\s*x?\s*)?(.+)`)

var offensiveWords = []string{
	"merda", "porra", "caralho", "puta", "fdp", "desgraca",
	"idiota", "imbecil", "burro", "lixo", "otario", "vai se f",
}

var greetingWords = []string{
	"oi", "oie", "ola", "opa", "eai", "e ai", "hey", "hello",
	"bom dia", "boa tarde", "boa noite", "tudo bem", "td bem",
}

// Keywords that disqualify a short message from being treated as a greeting.
var orderingKeywords = []string{
	"pedido", "pedir", "cardapio", "menu", "preco", "valor", "quanto", "quero",
}

// IsOffensive tests the normalized text against the fixed block-list.
func IsOffensive(text string) bool {
	norm := Normalize(text)
	for _, w := range offensiveWords {
		if strings.Contains(norm, w) {
			return true
		}
	}
	return false
}

// IsGreeting recognizes a greeting-only turn: an exact match against the
// greeting list, or a short message containing one, as long as no ordering
// keyword appears.
func IsGreeting(text string) bool {
	norm := Normalize(text)
	for _, kw := range orderingKeywords {
		if strings.Contains(norm, kw) {
			return false
		}
	}
	for _, g := range greetingWords {
		if norm == g {
			return true
		}
		if len(norm) <= 25 && strings.Contains(norm, g) {
			return true
		}
	}
	return false
}

// ParseCommand classifies a free-text turn. Returns nil on no match so the
// state machine can run a step-specific parse or fall through to the
// external assistant.
func ParseCommand(text string, catalog *Catalog) *Command {
	norm := Normalize(text)
	if norm == "" {
		return nil
	}

	if IsGreeting(text) {
		return &Command{Intent: IntentGreeting}
	}

	switch {
	case strings.Contains(norm, "finalizar"), strings.Contains(norm, "fechar pedido"),
		strings.Contains(norm, "confirmar pedido"):
		return &Command{Intent: IntentFinalize}
	case strings.Contains(norm, "cardapio"), norm == "menu", strings.Contains(norm, "ver menu"):
		return &Command{Intent: IntentMenu}
	case strings.Contains(norm, "horario"), strings.Contains(norm, "que horas"):
		return &Command{Intent: IntentHours}
	case strings.Contains(norm, "endereco"), strings.Contains(norm, "onde fica"):
		return &Command{Intent: IntentAddress}
	case strings.Contains(norm, "contato"), strings.Contains(norm, "telefone"), strings.Contains(norm, "whatsapp"):
		return &Command{Intent: IntentContact}
	case strings.Contains(norm, "rastrear"), strings.Contains(norm, "acompanhar pedido"):
		return &Command{Intent: IntentTrackOrder}
	case strings.Contains(norm, "recomend"), strings.Contains(norm, "sugest"), strings.Contains(norm, "sugere"):
		return &Command{Intent: IntentRecommend}
	case strings.Contains(norm, "carrinho"), strings.Contains(norm, "meu pedido"):
		return &Command{Intent: IntentViewCart}
	case strings.Contains(norm, "entrega"), strings.Contains(norm, "delivery"):
		return &Command{Intent: IntentDeliveryFAQ}
	case strings.Contains(norm, "pagamento"), strings.Contains(norm, "formas de pagar"):
		return &Command{Intent: IntentPaymentFAQ}
	}

	if m := addItemRe.FindStringSubmatch(norm); m != nil {
		qty := 1
		if m[1] != "" {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				qty = n
			}
		}
		dish := MatchDish(m[2], catalog.ActiveDishes())
		return &Command{Intent: IntentAddItem, Dish: dish, Quantity: qty}
	}

	return nil
}

// MatchDish resolves a free-text query against active dish names with fixed
// precedence: exact match, then substring in either direction, then every
// whitespace token of the query as a substring of the name. The first
// catalog match wins at each level.
func MatchDish(query string, dishes []models.Dish) *models.Dish {
	q := Normalize(query)
	if q == "" {
		return nil
	}

	for i := range dishes {
		if Normalize(dishes[i].Name) == q {
			return &dishes[i]
		}
	}
	for i := range dishes {
		name := Normalize(dishes[i].Name)
		if strings.Contains(name, q) || strings.Contains(q, name) {
			return &dishes[i]
		}
	}
	tokens := strings.Fields(q)
	for i := range dishes {
		name := Normalize(dishes[i].Name)
		all := true
		for _, tok := range tokens {
			if !strings.Contains(name, tok) {
				all = false
				break
			}
		}
		if all {
			return &dishes[i]
		}
	}
	return nil
}
