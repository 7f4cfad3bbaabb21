package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Period é a chave (modalidade, mês, ano) usada para agrupar e substituir contratos
type Period struct {
	Modality Modality `json:"modality"`
	Month    string   `json:"month"`
	Year     int      `json:"year"`
}

func (p Period) String() string {
	return fmt.Sprintf("%s_%s_%d", p.Modality, p.Month, p.Year)
}

// Label retorna o período no formato de exibição, ex: Setembro/2025
func (p Period) Label() string {
	return fmt.Sprintf("%s/%d", MonthName(p.Month), p.Year)
}

// AggregatedPeriod é derivado dos contratos e nunca persistido
type AggregatedPeriod struct {
	Modality          Modality        `json:"modality"`
	Month             string          `json:"month"`
	Year              int             `json:"year"`
	TotalMonthlyValue decimal.Decimal `json:"total_monthly_value"`
	TotalHalfShare    decimal.Decimal `json:"total_half_share"`
	RecordCount       int             `json:"record_count"`
}

func (a AggregatedPeriod) Period() Period {
	return Period{Modality: a.Modality, Month: a.Month, Year: a.Year}
}

// PeriodSummary resume os contratos de um período listado
type PeriodSummary struct {
	TotalMonthlyValue decimal.Decimal `json:"total_monthly_value"`
	TotalHalfShare    decimal.Decimal `json:"total_half_share"`
	RecordCount       int             `json:"record_count"`
}

// DashboardRow é uma linha agregada enriquecida com nomes de exibição
type DashboardRow struct {
	AggregatedPeriod
	MonthName    string `json:"month_name"`
	MonthNumber  int    `json:"month_number"`
	ModalityName string `json:"modality_name"`
}

type DashboardTotals struct {
	TotalMonthlyValue       decimal.Decimal `json:"total_monthly_value"`
	TotalHalfShare          decimal.Decimal `json:"total_half_share"`
	AverageMonthlyHalfShare decimal.Decimal `json:"average_monthly_half_share"`
	RecordCount             int             `json:"record_count"`
	ActiveModalities        int             `json:"active_modalities"`
	MonthsWithData          int             `json:"months_with_data"`
}

// ModalityTotals soma todos os períodos de uma modalidade
type ModalityTotals struct {
	Modality          Modality        `json:"modality"`
	ModalityName      string          `json:"modality_name"`
	TotalMonthlyValue decimal.Decimal `json:"total_monthly_value"`
	TotalHalfShare    decimal.Decimal `json:"total_half_share"`
	RecordCount       int             `json:"record_count"`
}

type Dashboard struct {
	Year       *int              `json:"year,omitempty"`
	Rows       []*DashboardRow   `json:"rows"`
	ByModality []*ModalityTotals `json:"by_modality"`
	Totals     DashboardTotals   `json:"totals"`
}
