package handler

import (
	"errors"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/academy-dashboard-api/internal/domain"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/contracting"
	"github.com/vfg2006/academy-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/academy-dashboard-api/pkg/log"
	"github.com/vfg2006/academy-dashboard-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("handler: erro ao enviar resposta")
	}
}

// writeServiceError traduz os erros tipados dos casos de uso para o envelope da API
func writeServiceError(w http.ResponseWriter, r *http.Request, component string, err error) {
	var contractErr *contracting.ContractError
	if errors.As(err, &contractErr) {
		if apiErrors.StatusFor(contractErr.Code) >= http.StatusInternalServerError {
			log.ForContext(r.Context()).WithError(err).Errorf("%s: erro ao processar requisição", component)
		}
		apiErrors.WriteError(w, contractErr.Code, contractErr.Error(), nil)
		return
	}

	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		if apiErrors.StatusFor(authErr.Code) >= http.StatusInternalServerError {
			log.ForContext(r.Context()).WithError(err).Errorf("%s: erro ao processar requisição", component)
		}
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Errorf("%s: erro inesperado", component)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno do servidor", nil)
}

func claimsOrUnauthorized(w http.ResponseWriter, r *http.Request) (*domain.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
	}
	return claims, ok
}

// modalityParam valida a modalidade da rota e o acesso do usuário a ela
func modalityParam(w http.ResponseWriter, r *http.Request) (domain.Modality, bool) {
	claims, ok := claimsOrUnauthorized(w, r)
	if !ok {
		return "", false
	}

	raw := httprouter.ParamsFromContext(r.Context()).ByName("modality")
	modality, ok := domain.ParseModality(raw)
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, "Modalidade inválida", map[string]string{"modality": raw})
		return "", false
	}

	if !claims.CanAccessModality(modality) {
		apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Sem acesso à modalidade", map[string]string{"modality": string(modality)})
		return "", false
	}

	return modality, true
}

// periodParam lê modalidade da rota e mês/ano da query string
func periodParam(w http.ResponseWriter, r *http.Request) (domain.Period, bool) {
	modality, ok := modalityParam(w, r)
	if !ok {
		return domain.Period{}, false
	}

	query := r.URL.Query()
	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, "Ano inválido", map[string]string{"year": query.Get("year")})
		return domain.Period{}, false
	}

	period, err := contracting.NormalizePeriod(domain.Period{
		Modality: modality,
		Month:    query.Get("month"),
		Year:     year,
	})
	if err != nil {
		writeServiceError(w, r, "handler", err)
		return domain.Period{}, false
	}

	return period, true
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName(name)
	if raw == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro obrigatório ausente", map[string]string{"param": name})
		return 0, false
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro inválido", map[string]string{name: raw})
		return 0, false
	}

	return value, true
}
