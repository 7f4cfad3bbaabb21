package reporting

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/academy-dashboard-api/internal/domain"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/contracting"
	"github.com/xuri/excelize/v2"
)

type fakeContractService struct {
	contracting.ContractService
	listing *domain.ContractListResponse
	err     error
}

func (f *fakeContractService) ListByPeriod(_ context.Context, _ domain.ContractFilter) (*domain.ContractListResponse, error) {
	return f.listing, f.err
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService(listing *domain.ContractListResponse, err error) *Service {
	return &Service{
		contractService: &fakeContractService{listing: listing, err: err},
		now: func() time.Time {
			return time.Date(2025, 10, 1, 8, 30, 0, 0, time.UTC)
		},
	}
}

func openReport(t *testing.T, report *Report) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(report.Content))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, axis string) string {
	t.Helper()
	value, err := f.GetCellValue(sheetName, axis)
	require.NoError(t, err)
	return value
}

func TestService_ExportPeriod_WithInstructor(t *testing.T) {
	period := domain.Period{Modality: domain.ModalityPilates, Month: "set", Year: 2025}
	listing := &domain.ContractListResponse{
		Period:     period,
		PeriodName: "Setembro/2025",
		Instructor: "João Conceição",
		Contracts: []*domain.Contract{
			{FullName: "Maria da Conceição dos Santos Oliveira", StartDate: "01/09/2025", DueDate: "01/09/2026", MonthlyValue: dec("100")},
			{FullName: "Ana", StartDate: "05/09/2025", MonthlyValue: dec("75")},
		},
		Summary: domain.PeriodSummary{TotalMonthlyValue: dec("175"), TotalHalfShare: dec("87.5"), RecordCount: 2},
	}

	service := newTestService(listing, nil)
	report, err := service.ExportPeriod(context.Background(), domain.ContractFilter{
		Period:     period,
		Instructor: &domain.InstructorFilter{Name: "João Conceição"},
	})
	require.NoError(t, err)

	assert.Equal(t, "pilates_joao_conceicao_set_2025.xlsx", report.FileName)
	assert.Equal(t, 2, report.Summary.RecordCount)

	f := openReport(t, report)
	assert.Equal(t, title, cell(t, f, "A1"))
	assert.Equal(t, "Professor:", cell(t, f, "A3"))
	assert.Equal(t, "João Conceição", cell(t, f, "B3"))
	assert.Equal(t, "Setembro/2025", cell(t, f, "B4"))
	assert.Equal(t, "R$ 87,50", cell(t, f, "B7"))
	assert.Equal(t, "2", cell(t, f, "B8"))
	assert.Equal(t, "Nome do Cliente", cell(t, f, "A11"))
	assert.Equal(t, "MARIA DA CONCEIÇÃO DOS SANT...", cell(t, f, "A12"))
	assert.Equal(t, "R$ 50,00", cell(t, f, "D12"))
	assert.Equal(t, "R$ 37,50", cell(t, f, "D13"))
	assert.Equal(t, "TOTAL", cell(t, f, "A14"))
	assert.Equal(t, "R$ 87,50", cell(t, f, "D14"))
	assert.Equal(t, "Gerado em: 01/10/2025 08:30:00", cell(t, f, "A16"))
}

func TestService_ExportPeriod_WithoutInstructor(t *testing.T) {
	period := domain.Period{Modality: domain.ModalityJudo, Month: "jan", Year: 2026}
	listing := &domain.ContractListResponse{
		Period:     period,
		PeriodName: "Janeiro/2026",
		Contracts:  []*domain.Contract{},
		Summary:    domain.PeriodSummary{TotalMonthlyValue: decimal.Zero, TotalHalfShare: decimal.Zero},
	}

	service := newTestService(listing, nil)
	report, err := service.ExportPeriod(context.Background(), domain.ContractFilter{
		Period:     period,
		Instructor: &domain.InstructorFilter{Name: "Ana"},
	})
	require.NoError(t, err)

	assert.Equal(t, "judo_jan_2026.xlsx", report.FileName)

	f := openReport(t, report)
	assert.Equal(t, "Período:", cell(t, f, "A3"))
	assert.Equal(t, "R$ 0,00", cell(t, f, "B6"))
	assert.Equal(t, "0", cell(t, f, "B7"))
	assert.Equal(t, "Gerado em: 01/10/2025 08:30:00", cell(t, f, "A9"))
}

func TestService_ExportPeriod_Error(t *testing.T) {
	service := newTestService(nil, contracting.ErrInvalidMonth)

	_, err := service.ExportPeriod(context.Background(), domain.ContractFilter{})
	require.True(t, errors.Is(err, contracting.ErrInvalidMonth))
}

func TestFileName(t *testing.T) {
	period := domain.Period{Modality: domain.ModalityKravmaga, Month: "dez", Year: 2025}

	assert.Equal(t, "kravmaga_dez_2025.xlsx", FileName(period, nil))
	assert.Equal(t, "kravmaga_sem_professor_dez_2025.xlsx", FileName(period, &domain.InstructorFilter{NoInstructor: true}))
}
