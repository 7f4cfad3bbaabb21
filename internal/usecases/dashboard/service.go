package dashboard

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/academy-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/academy-dashboard-api/internal/domain"
	"github.com/vfg2006/academy-dashboard-api/internal/valuation"
	"github.com/vfg2006/academy-dashboard-api/pkg/log"
)

type Dashboarder interface {
	GetDashboard(ctx context.Context, year *int) (*domain.Dashboard, error)
}

type Service struct {
	contractRepo repository.ContractRepository
}

func NewService(contractRepo repository.ContractRepository) Dashboarder {
	return &Service{
		contractRepo: contractRepo,
	}
}

// GetDashboard agrega os contratos (opcionalmente de um único ano) por modalidade, mês e ano
func (s *Service) GetDashboard(ctx context.Context, year *int) (*domain.Dashboard, error) {
	contracts, err := s.contractRepo.FindAll(ctx, year)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("dashboard: erro ao buscar contratos")
		return nil, err
	}

	return Build(year, valuation.Aggregate(contracts)), nil
}

// Build monta o dashboard a partir das linhas já agregadas
func Build(year *int, aggregated []*domain.AggregatedPeriod) *domain.Dashboard {
	dashboard := &domain.Dashboard{
		Year:       year,
		Rows:       make([]*domain.DashboardRow, 0, len(aggregated)),
		ByModality: make([]*domain.ModalityTotals, 0),
		Totals: domain.DashboardTotals{
			TotalMonthlyValue:       decimal.Zero,
			TotalHalfShare:          decimal.Zero,
			AverageMonthlyHalfShare: decimal.Zero,
		},
	}

	byModality := make(map[domain.Modality]*domain.ModalityTotals)
	months := make(map[string]struct{})

	for _, row := range aggregated {
		dashboard.Rows = append(dashboard.Rows, &domain.DashboardRow{
			AggregatedPeriod: *row,
			MonthName:        domain.MonthName(row.Month),
			MonthNumber:      domain.MonthNumber(row.Month),
			ModalityName:     row.Modality.DisplayName(),
		})

		dashboard.Totals.TotalMonthlyValue = dashboard.Totals.TotalMonthlyValue.Add(row.TotalMonthlyValue)
		dashboard.Totals.TotalHalfShare = dashboard.Totals.TotalHalfShare.Add(row.TotalHalfShare)
		dashboard.Totals.RecordCount += row.RecordCount
		months[row.Month] = struct{}{}

		totals, ok := byModality[row.Modality]
		if !ok {
			totals = &domain.ModalityTotals{
				Modality:          row.Modality,
				ModalityName:      row.Modality.DisplayName(),
				TotalMonthlyValue: decimal.Zero,
				TotalHalfShare:    decimal.Zero,
			}
			byModality[row.Modality] = totals
			dashboard.ByModality = append(dashboard.ByModality, totals)
		}
		totals.TotalMonthlyValue = totals.TotalMonthlyValue.Add(row.TotalMonthlyValue)
		totals.TotalHalfShare = totals.TotalHalfShare.Add(row.TotalHalfShare)
		totals.RecordCount += row.RecordCount
	}

	dashboard.Totals.ActiveModalities = len(byModality)
	dashboard.Totals.MonthsWithData = len(months)
	if len(months) > 0 {
		dashboard.Totals.AverageMonthlyHalfShare = dashboard.Totals.TotalHalfShare.
			Div(decimal.NewFromInt(int64(len(months)))).
			Round(2)
	}

	sort.SliceStable(dashboard.ByModality, func(i, j int) bool {
		return dashboard.ByModality[i].TotalHalfShare.GreaterThan(dashboard.ByModality[j].TotalHalfShare)
	})

	return dashboard
}
