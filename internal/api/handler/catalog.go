package handler

import (
	"net/http"

	"github.com/vfg2006/academy-dashboard-api/internal/domain"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/contracting"
)

// ListModalities retorna as modalidades que o usuário pode consultar
func ListModalities() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsOrUnauthorized(w, r)
		if !ok {
			return
		}

		modalities := make([]domain.ModalityInfo, 0)
		for _, info := range domain.Modalities() {
			if claims.CanAccessModality(info.Code) {
				modalities = append(modalities, info)
			}
		}

		writeJSON(w, r, http.StatusOK, modalities)
	}
}

func ListMonths() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, domain.Months())
	}
}

func ListPlans(service contracting.ContractService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		modality, ok := modalityParam(w, r)
		if !ok {
			return
		}

		plans, err := service.ListPlans(r.Context(), modality)
		if err != nil {
			writeServiceError(w, r, "plans", err)
			return
		}

		writeJSON(w, r, http.StatusOK, plans)
	}
}

func ListInstructors(service contracting.ContractService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		modality, ok := modalityParam(w, r)
		if !ok {
			return
		}

		instructors, err := service.ListInstructors(r.Context(), modality)
		if err != nil {
			writeServiceError(w, r, "instructors", err)
			return
		}

		writeJSON(w, r, http.StatusOK, instructors)
	}
}
