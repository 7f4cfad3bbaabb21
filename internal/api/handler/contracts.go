package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/academy-dashboard-api/internal/config"
	"github.com/vfg2006/academy-dashboard-api/internal/domain"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/contracting"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/academy-dashboard-api/pkg/apiErrors"
)

const uploadField = "file"

func contractFilter(w http.ResponseWriter, r *http.Request) (domain.ContractFilter, bool) {
	period, ok := periodParam(w, r)
	if !ok {
		return domain.ContractFilter{}, false
	}

	return domain.ContractFilter{
		Period:     period,
		Instructor: domain.ParseInstructorFilter(r.URL.Query().Get("instructor")),
	}, true
}

func contractKey(w http.ResponseWriter, r *http.Request) (domain.ContractKey, bool) {
	period, ok := periodParam(w, r)
	if !ok {
		return domain.ContractKey{}, false
	}

	return domain.ContractKey{
		ClientID: httprouter.ParamsFromContext(r.Context()).ByName("client_id"),
		Modality: period.Modality,
		Month:    period.Month,
		Year:     period.Year,
	}, true
}

// ListContracts lista os contratos do período com o resumo de valores
func ListContracts(service contracting.ContractService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, ok := contractFilter(w, r)
		if !ok {
			return
		}

		listing, err := service.ListByPeriod(r.Context(), filter)
		if err != nil {
			writeServiceError(w, r, "contracts", err)
			return
		}

		writeJSON(w, r, http.StatusOK, listing)
	}
}

func RegisterContract(service contracting.ContractService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, ok := periodParam(w, r)
		if !ok {
			return
		}

		var req domain.RegisterContractRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		contract, err := service.Register(r.Context(), period, req)
		if err != nil {
			writeServiceError(w, r, "contracts", err)
			return
		}

		writeJSON(w, r, http.StatusCreated, contract)
	}
}

func UpdateContract(service contracting.ContractService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, ok := contractKey(w, r)
		if !ok {
			return
		}

		var patch domain.UpdateContractRequest
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		contract, err := service.Update(r.Context(), key, patch)
		if err != nil {
			writeServiceError(w, r, "contracts", err)
			return
		}

		writeJSON(w, r, http.StatusOK, contract)
	}
}

func DeleteContract(service contracting.ContractService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, ok := contractKey(w, r)
		if !ok {
			return
		}

		if err := service.Delete(r.Context(), key); err != nil {
			writeServiceError(w, r, "contracts", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// DeletePeriod remove todos os contratos do período
func DeletePeriod(service contracting.ContractService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, ok := periodParam(w, r)
		if !ok {
			return
		}

		deleted, err := service.DeletePeriod(r.Context(), period)
		if err != nil {
			writeServiceError(w, r, "periods", err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{"period": period, "deleted": deleted})
	}
}

// ImportContracts recebe a planilha em multipart e substitui os contratos do período
func ImportContracts(service contracting.ContractService, cfg config.Import) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, ok := periodParam(w, r)
		if !ok {
			return
		}

		maxBytes := cfg.MaxUploadBytes()
		if r.ContentLength > maxBytes {
			apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, fmt.Sprintf("Arquivo acima de %d MB", cfg.MaxUploadMB), nil)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, fmt.Sprintf("Arquivo acima de %d MB", cfg.MaxUploadMB), nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formulário multipart inválido", nil)
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile(uploadField)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Arquivo da planilha não enviado", map[string]string{"field": uploadField})
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao ler arquivo enviado", nil)
			return
		}

		result, err := service.ImportSpreadsheet(r.Context(), domain.ImportRequest{
			Period:     period,
			SourceFile: header.Filename,
			Content:    content,
			Trigger:    domain.ImportTriggerManual,
		})
		if err != nil {
			writeServiceError(w, r, "imports", err)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}

// ExportReport devolve o relatório do período como planilha para download
func ExportReport(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, ok := contractFilter(w, r)
		if !ok {
			return
		}

		report, err := service.ExportPeriod(r.Context(), filter)
		if err != nil {
			writeServiceError(w, r, "report", err)
			return
		}

		w.Header().Set("Content-Type", reporting.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(report.Content)
	}
}
