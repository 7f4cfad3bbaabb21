package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL formata o valor como moeda brasileira, ex: R$ 1.234,56
func FormatBRL(value decimal.Decimal) string {
	f, _ := value.Round(2).Float64()
	return brPrinter.Sprintf("R$ %.2f", f)
}

// FormatCount formata inteiros com separador de milhar, ex: 1.234
func FormatCount(n int) string {
	return brPrinter.Sprintf("%d", n)
}
