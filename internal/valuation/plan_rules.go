// Package valuation deriva o valor mensal e o valor 50% dos contratos
// e agrega esses valores por modalidade, mês e ano.
package valuation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PlanRule associa palavras-chave do plano ao prazo do contrato em meses
type PlanRule struct {
	Name     string
	Keywords []string
	Months   int64
}

// Matches verifica se algum termo da regra aparece no plano, sem diferenciar maiúsculas
func (r PlanRule) Matches(planLabel string) bool {
	label := strings.ToUpper(planLabel)
	for _, keyword := range r.Keywords {
		if strings.Contains(label, keyword) {
			return true
		}
	}
	return false
}

// Divisor retorna o prazo da regra como decimal
func (r PlanRule) Divisor() decimal.Decimal {
	return decimal.NewFromInt(r.Months)
}

// MonthlyRule é aplicada quando nenhum termo reconhecido aparece no plano
var MonthlyRule = PlanRule{Name: "mensal", Months: 1}

// planRules é avaliada em ordem; a primeira regra que casar vence.
// "15 MESES" precisa vir antes de "12 MESES"/"ANUAL".
var planRules = []PlanRule{
	{Name: "15 meses", Keywords: []string{"15 MESES"}, Months: 15},
	{Name: "anual", Keywords: []string{"ANUAL", "12 MESES"}, Months: 12},
	{Name: "semestral", Keywords: []string{"SEMESTRAL"}, Months: 6},
	{Name: "trimestral", Keywords: []string{"TRIMESTRAL"}, Months: 3},
}

// Rules retorna uma cópia das regras na ordem de precedência
func Rules() []PlanRule {
	out := make([]PlanRule, len(planRules))
	copy(out, planRules)
	return out
}

// Classify retorna a regra aplicável ao plano
func Classify(planLabel string) PlanRule {
	if strings.TrimSpace(planLabel) == "" {
		return MonthlyRule
	}

	for _, rule := range planRules {
		if rule.Matches(planLabel) {
			return rule
		}
	}

	return MonthlyRule
}
