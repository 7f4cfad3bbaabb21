package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/academy-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/academy-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func contract(modality domain.Modality, month string, year int, monthly string) *domain.Contract {
	return &domain.Contract{
		ClientID:     month + string(modality),
		Modality:     modality,
		Month:        month,
		Year:         year,
		MonthlyValue: dec(monthly),
	}
}

func TestService_GetDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	contractRepo := mocks.NewMockContractRepository(ctrl)
	service := NewService(contractRepo)

	year := 2025

	t.Run("agrega e enriquece as linhas", func(t *testing.T) {
		contractRepo.EXPECT().FindAll(gomock.Any(), &year).Return([]*domain.Contract{
			contract(domain.ModalityPilates, "set", 2025, "100"),
			contract(domain.ModalityJudo, "set", 2025, "75"),
			contract(domain.ModalityJudo, "set", 2025, "100"),
			contract(domain.ModalityJudo, "ago", 2025, "50"),
		}, nil)

		dashboard, err := service.GetDashboard(context.Background(), &year)
		require.NoError(t, err)

		require.Len(t, dashboard.Rows, 3)

		first := dashboard.Rows[0]
		assert.Equal(t, "ago", first.Month)
		assert.Equal(t, "Agosto", first.MonthName)
		assert.Equal(t, 8, first.MonthNumber)
		assert.Equal(t, "Judo", first.ModalityName)

		judoSet := dashboard.Rows[1]
		assert.Equal(t, domain.ModalityJudo, judoSet.Modality)
		assert.Equal(t, 2, judoSet.RecordCount)
		assert.True(t, dec("175").Equal(judoSet.TotalMonthlyValue))
		assert.True(t, dec("87.5").Equal(judoSet.TotalHalfShare))

		totals := dashboard.Totals
		assert.True(t, dec("325").Equal(totals.TotalMonthlyValue))
		assert.True(t, dec("162.5").Equal(totals.TotalHalfShare))
		assert.True(t, dec("81.25").Equal(totals.AverageMonthlyHalfShare))
		assert.Equal(t, 4, totals.RecordCount)
		assert.Equal(t, 2, totals.ActiveModalities)
		assert.Equal(t, 2, totals.MonthsWithData)

		require.Len(t, dashboard.ByModality, 2)
		assert.Equal(t, domain.ModalityJudo, dashboard.ByModality[0].Modality)
		assert.True(t, dec("112.5").Equal(dashboard.ByModality[0].TotalHalfShare))
	})

	t.Run("base vazia", func(t *testing.T) {
		contractRepo.EXPECT().FindAll(gomock.Any(), nil).Return([]*domain.Contract{}, nil)

		dashboard, err := service.GetDashboard(context.Background(), nil)
		require.NoError(t, err)

		assert.Empty(t, dashboard.Rows)
		assert.Empty(t, dashboard.ByModality)
		assert.True(t, dashboard.Totals.TotalHalfShare.IsZero())
		assert.True(t, dashboard.Totals.AverageMonthlyHalfShare.IsZero())
		assert.Zero(t, dashboard.Totals.RecordCount)
	})

	t.Run("erro no repositório", func(t *testing.T) {
		contractRepo.EXPECT().FindAll(gomock.Any(), nil).Return(nil, errors.New("falha"))

		_, err := service.GetDashboard(context.Background(), nil)
		require.Error(t, err)
	})
}
