package bot

import (
	"regexp"
	"strconv"
	"strings"
)

// AddressLine is the lossy split of a free-text address turn. The heuristic
// (comma split, leading digit-run for the number) is a known limitation kept
// for compatibility with the existing conversational flow; real addresses
// with commas inside the street name will misparse.
type AddressLine struct {
	Street     string
	Number     string
	Complement string
}

var (
	addressSplitRe  = regexp.MustCompile(`[,;]`)
	houseNumberRe   = regexp.MustCompile(`\b(\d{1,6})\b`)
	changeAmountRe  = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	changeRefusalRe = regexp.MustCompile(`^nao$|nao\s+(?:preciso|precisa|quero)|dispensa|sem\s+troco|ta\s+certo|certinho`)
)

// ParseAddressLine splits on comma/semicolon: token 1 street, token 2 number
// (falling back to the first 1-6 digit run anywhere in the text), token 3
// complement.
func ParseAddressLine(text string) AddressLine {
	parts := addressSplitRe.Split(text, -1)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	line := AddressLine{Street: parts[0]}
	if len(parts) > 1 && parts[1] != "" {
		line.Number = parts[1]
	} else if m := houseNumberRe.FindString(text); m != "" {
		line.Number = m
	}
	if len(parts) > 2 {
		line.Complement = parts[2]
	}
	return line
}

var paymentLabels = map[string]string{
	"pix":               "pix",
	"dinheiro":          "dinheiro",
	"especie":           "dinheiro",
	"cartao de credito": "cartao_credito",
	"credito":           "cartao_credito",
	"cartao de debito":  "cartao_debito",
	"debito":            "cartao_debito",
	"cartao":            "cartao_credito",
}

// MapPaymentMethod maps free text to a payment method with accent-insensitive
// keys. Unmapped text defaults to pix.
func MapPaymentMethod(text string) string {
	norm := Normalize(text)
	// Longer keys first so "cartao de debito" never falls into "cartao".
	for _, key := range []string{
		"cartao de credito", "cartao de debito", "credito", "debito",
		"dinheiro", "especie", "cartao", "pix",
	} {
		if strings.Contains(norm, key) {
			return paymentLabels[key]
		}
	}
	return "pix"
}

// PaymentDisplayName renders a payment method for the order summary.
func PaymentDisplayName(method string) string {
	switch method {
	case "dinheiro":
		return "Dinheiro"
	case "cartao_credito":
		return "Cartão de crédito"
	case "cartao_debito":
		return "Cartão de débito"
	default:
		return "Pix"
	}
}

// DeclinesChange reports whether the reply to the change question is a
// negation ("não preciso", "sem troco", ...).
func DeclinesChange(text string) bool {
	return changeRefusalRe.MatchString(Normalize(text))
}

// ExtractAmount pulls the first decimal number out of a change reply,
// accepting comma or dot as the decimal separator.
func ExtractAmount(text string) (float64, bool) {
	m := changeAmountRe.FindString(text)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(m, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
