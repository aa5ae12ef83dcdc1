package bot

import (
	"fmt"
	"strings"
)

var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "ì", "i", "î", "i", "ï", "i",
	"ó", "o", "ò", "o", "ô", "o", "õ", "o", "ö", "o",
	"ú", "u", "ù", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n",
)

// Normalize lowercases, trims and strips Portuguese diacritics so that
// keyword and dish matching is accent-insensitive.
func Normalize(s string) string {
	return accentReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// OnlyDigits strips everything but 0-9 from a string. Used for phone numbers.
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPrice renders a value as Brazilian currency, e.g. "R$ 53,00".
func FormatPrice(v float64) string {
	return strings.Replace(fmt.Sprintf("R$ %.2f", v), ".", ",", 1)
}
