package valuation

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/academy-dashboard-api/internal/domain"
)

var two = decimal.NewFromInt(2)

// MonthlyValue divide o valor total pelo prazo do plano.
// Planos mensais ou não reconhecidos mantêm o valor total.
func MonthlyValue(planLabel string, totalPrice decimal.Decimal) decimal.Decimal {
	rule := Classify(planLabel)
	if rule.Months <= 1 {
		return totalPrice
	}
	return totalPrice.Div(rule.Divisor())
}

// HalfShare retorna o valor 50% (metade do valor mensal)
func HalfShare(monthlyValue decimal.Decimal) decimal.Decimal {
	return monthlyValue.Div(two)
}

// Derive devolve uma cópia do contrato com o valor mensal e o valor 50% recalculados
func Derive(contract domain.Contract) domain.Contract {
	contract.MonthlyValue = MonthlyValue(contract.PlanLabel, contract.TotalPrice)
	contract.HalfShareValue = HalfShare(contract.MonthlyValue)
	return contract
}

var (
	nonNumeric  = regexp.MustCompile(`[^0-9,.\-]`)
	exponent    = regexp.MustCompile(`\d[eE][+-]?\d`)
	thousandDot = regexp.MustCompile(`^-?\d{1,3}\.\d{3}$`)
)

const maxPriceLength = 40

// maxPrice limita valores absurdos vindos de texto livre
var maxPrice = decimal.New(1, 12)

// ParsePrice converte o valor vindo da planilha ou de um formulário.
// Aceita "1200", "1200.50", "1.200,50", "R$ 1.200,50" e texto ao redor do número ("150 reais").
// Um único ponto seguido de três dígitos é separador de milhar ("1.200" = 1200).
// Notação científica, falhas e valores negativos resultam em zero.
func ParsePrice(raw string) decimal.Decimal {
	value := strings.TrimSpace(raw)
	if exponent.MatchString(value) {
		return decimal.Zero
	}

	value = nonNumeric.ReplaceAllString(value, "")
	value = strings.Trim(value, ".,")
	if value == "" {
		return decimal.Zero
	}

	lastComma := strings.LastIndex(value, ",")
	lastDot := strings.LastIndex(value, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			value = strings.ReplaceAll(value, ".", "")
			value = strings.Replace(value, ",", ".", 1)
		} else {
			value = strings.ReplaceAll(value, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(value, ",") > 1 {
			value = strings.ReplaceAll(value, ",", "")
		} else {
			value = strings.Replace(value, ",", ".", 1)
		}
	case strings.Count(value, ".") > 1, thousandDot.MatchString(value):
		value = strings.ReplaceAll(value, ".", "")
	}

	if len(value) > maxPriceLength {
		return decimal.Zero
	}

	price, err := decimal.NewFromString(value)
	if err != nil || price.IsNegative() || price.GreaterThanOrEqual(maxPrice) {
		return decimal.Zero
	}

	return price
}
