package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddressLine(t *testing.T) {
	line := ParseAddressLine("Rua das Acácias, 45, apto 12")
	assert.Equal(t, "Rua das Acácias", line.Street)
	assert.Equal(t, "45", line.Number)
	assert.Equal(t, "apto 12", line.Complement)

	// No comma: the first digit run becomes the number.
	line = ParseAddressLine("Avenida Brasil 1200")
	assert.Equal(t, "Avenida Brasil 1200", line.Street)
	assert.Equal(t, "1200", line.Number)
	assert.Empty(t, line.Complement)

	line = ParseAddressLine("Rua sem número")
	assert.Equal(t, "Rua sem número", line.Street)
	assert.Empty(t, line.Number)
}

func TestMapPaymentMethod(t *testing.T) {
	cases := map[string]string{
		"pix":                  "pix",
		"Dinheiro":             "dinheiro",
		"vou pagar em espécie": "dinheiro",
		"Cartão de crédito":    "cartao_credito",
		"cartão de débito":     "cartao_debito",
		"no débito":            "cartao_debito",
		"cartão":               "cartao_credito",
		"tanto faz":            "pix",
	}
	for input, want := range cases {
		assert.Equal(t, want, MapPaymentMethod(input), input)
	}
}

func TestPaymentDisplayName(t *testing.T) {
	assert.Equal(t, "Dinheiro", PaymentDisplayName("dinheiro"))
	assert.Equal(t, "Cartão de crédito", PaymentDisplayName("cartao_credito"))
	assert.Equal(t, "Pix", PaymentDisplayName("pix"))
	assert.Equal(t, "Pix", PaymentDisplayName("whatever"))
}

func TestDeclinesChange(t *testing.T) {
	assert.True(t, DeclinesChange("não"))
	assert.True(t, DeclinesChange("não preciso"))
	assert.True(t, DeclinesChange("sem troco"))
	assert.True(t, DeclinesChange("pode dispensar"))
	assert.True(t, DeclinesChange("tá certo assim"))

	assert.False(t, DeclinesChange("50"))
	assert.False(t, DeclinesChange("troco para 100"))
}

func TestExtractAmount(t *testing.T) {
	v, ok := ExtractAmount("troco para 100")
	assert.True(t, ok)
	assert.Equal(t, 100.0, v)

	v, ok = ExtractAmount("53,50")
	assert.True(t, ok)
	assert.Equal(t, 53.5, v)

	v, ok = ExtractAmount("R$ 60.00")
	assert.True(t, ok)
	assert.Equal(t, 60.0, v)

	_, ok = ExtractAmount("tanto faz")
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "pizza calabresa", Normalize("  Pizza Calabresa  "))
	assert.Equal(t, "acai com acucar", Normalize("Açaí com Açúcar"))
}

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "11988887777", OnlyDigits("(11) 98888-7777"))
	assert.Equal(t, "", OnlyDigits("abc"))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "R$ 53,00", FormatPrice(53))
	assert.Equal(t, "R$ 10,80", FormatPrice(10.8))
	assert.Equal(t, "R$ 0,00", FormatPrice(0))
}
