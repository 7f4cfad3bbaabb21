package handler

import (
	"net/http"

	"github.com/vfg2006/academy-dashboard-api/internal/domain"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/contracting"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/academy-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/academy-dashboard-api/pkg/utils"
)

// GetDashboard agrega os contratos por modalidade, mês e ano
func GetDashboard(service dashboard.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := utils.ParseOptionalYear(r.URL.Query().Get("year"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, "Ano inválido", map[string]string{"year": r.URL.Query().Get("year")})
			return
		}

		result, err := service.GetDashboard(r.Context(), year)
		if err != nil {
			writeServiceError(w, r, "dashboard", err)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}

// ListImports retorna o histórico recente de importações, opcionalmente de uma modalidade
func ListImports(service contracting.ContractService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var modality *domain.Modality
		if raw := r.URL.Query().Get("modality"); raw != "" {
			m := domain.Modality(raw)
			modality = &m
		}

		history, err := service.ListImports(r.Context(), modality)
		if err != nil {
			writeServiceError(w, r, "imports", err)
			return
		}

		writeJSON(w, r, http.StatusOK, history)
	}
}
