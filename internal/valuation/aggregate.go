package valuation

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/academy-dashboard-api/internal/domain"
)

// Aggregate agrupa os contratos por (modalidade, mês, ano) somando o valor mensal,
// o valor 50% e a quantidade de registros. A entrada não é alterada.
func Aggregate(contracts []*domain.Contract) []*domain.AggregatedPeriod {
	groups := make(map[domain.Period]*domain.AggregatedPeriod)

	for _, contract := range contracts {
		if contract == nil {
			continue
		}

		key := contract.Period()
		group, ok := groups[key]
		if !ok {
			group = &domain.AggregatedPeriod{
				Modality:          key.Modality,
				Month:             key.Month,
				Year:              key.Year,
				TotalMonthlyValue: decimal.Zero,
				TotalHalfShare:    decimal.Zero,
			}
			groups[key] = group
		}

		group.TotalMonthlyValue = group.TotalMonthlyValue.Add(contract.MonthlyValue)
		group.TotalHalfShare = group.TotalHalfShare.Add(HalfShare(contract.MonthlyValue))
		group.RecordCount++
	}

	return sortedGroups(groups)
}

// Merge combina agregações parciais que compartilham a mesma chave de período
func Merge(parts ...[]*domain.AggregatedPeriod) []*domain.AggregatedPeriod {
	groups := make(map[domain.Period]*domain.AggregatedPeriod)

	for _, part := range parts {
		for _, row := range part {
			if row == nil {
				continue
			}

			key := row.Period()
			group, ok := groups[key]
			if !ok {
				copied := *row
				groups[key] = &copied
				continue
			}

			group.TotalMonthlyValue = group.TotalMonthlyValue.Add(row.TotalMonthlyValue)
			group.TotalHalfShare = group.TotalHalfShare.Add(row.TotalHalfShare)
			group.RecordCount += row.RecordCount
		}
	}

	return sortedGroups(groups)
}

// Summarize soma os valores de uma lista de contratos já filtrada
func Summarize(contracts []*domain.Contract) domain.PeriodSummary {
	summary := domain.PeriodSummary{
		TotalMonthlyValue: decimal.Zero,
		TotalHalfShare:    decimal.Zero,
	}

	for _, contract := range contracts {
		if contract == nil {
			continue
		}
		summary.TotalMonthlyValue = summary.TotalMonthlyValue.Add(contract.MonthlyValue)
		summary.TotalHalfShare = summary.TotalHalfShare.Add(HalfShare(contract.MonthlyValue))
		summary.RecordCount++
	}

	return summary
}

func sortedGroups(groups map[domain.Period]*domain.AggregatedPeriod) []*domain.AggregatedPeriod {
	result := make([]*domain.AggregatedPeriod, 0, len(groups))
	for _, group := range groups {
		result = append(result, group)
	}

	sort.Slice(result, func(i, j int) bool {
		return lessPeriod(result[i].Period(), result[j].Period())
	})

	return result
}

// lessPeriod ordena por ano, mês do calendário e modalidade. Meses fora do
// vocabulário conhecido vão para o fim do ano, em ordem alfabética.
func lessPeriod(a, b domain.Period) bool {
	if a.Year != b.Year {
		return a.Year < b.Year
	}

	am, bm := monthOrder(a.Month), monthOrder(b.Month)
	if am != bm {
		return am < bm
	}
	if a.Month != b.Month {
		return a.Month < b.Month
	}

	return a.Modality < b.Modality
}

func monthOrder(code string) int {
	if n := domain.MonthNumber(code); n > 0 {
		return n
	}
	return 13
}
