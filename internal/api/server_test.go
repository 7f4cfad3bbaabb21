package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/academy-dashboard-api/internal/api/handler"
	"github.com/vfg2006/academy-dashboard-api/internal/config"
	"github.com/vfg2006/academy-dashboard-api/internal/domain"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/contracting"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/academy-dashboard-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var tokens = map[string]*domain.Claims{
	"admin":      {UserID: 1, UserRoleID: domain.RoleAdmin},
	"manager":    {UserID: 2, UserRoleID: domain.RoleManager},
	"instructor": {UserID: 3, UserRoleID: domain.RoleInstructor, UserModalities: []domain.Modality{domain.ModalityPilates}},
}

type fakeAuth struct {
	authenticating.Authenticator
}

func (fakeAuth) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	if claims, ok := tokens[token]; ok {
		return claims, nil
	}
	return nil, authenticating.NewAuthError(authenticating.ErrInvalidToken, apiErrors.ErrInvalidToken, "")
}

func (fakeAuth) LoginUser(_ context.Context, email, _ string) (string, error) {
	if email != "admin@academia.com" {
		return "", authenticating.NewAuthError(authenticating.ErrUserNotFound, apiErrors.ErrUserNotFound, "")
	}
	return "admin", nil
}

type fakeContracts struct {
	contracting.ContractService
	lastFilter domain.ContractFilter
	lastImport domain.ImportRequest
	deletedKey domain.ContractKey
}

func (f *fakeContracts) ListByPeriod(_ context.Context, filter domain.ContractFilter) (*domain.ContractListResponse, error) {
	f.lastFilter = filter
	return &domain.ContractListResponse{
		Period:    filter.Period,
		Contracts: []*domain.Contract{{ClientID: "101", HalfShareValue: decimal.RequireFromString("50")}},
		Summary:   domain.PeriodSummary{TotalHalfShare: decimal.RequireFromString("50"), RecordCount: 1},
	}, nil
}

func (f *fakeContracts) ImportSpreadsheet(_ context.Context, req domain.ImportRequest) (*domain.ImportResult, error) {
	f.lastImport = req
	return &domain.ImportResult{ID: "imp1", Period: req.Period, Imported: 2}, nil
}

func (f *fakeContracts) Delete(_ context.Context, key domain.ContractKey) error {
	f.deletedKey = key
	if key.ClientID == "999" {
		return contracting.NewContractErrorWithKey(contracting.ErrContractNotFound, apiErrors.ErrContractNotFound, key, "999")
	}
	return nil
}

func (f *fakeContracts) ListInstructors(_ context.Context, modality domain.Modality) ([]string, error) {
	if !modality.HasInstructor() {
		return nil, contracting.NewContractError(contracting.ErrNoInstructors, apiErrors.ErrUnsupportedModality, "")
	}
	return []string{"Ana", "Bruno"}, nil
}

type fakeDashboard struct {
	year *int
}

func (f *fakeDashboard) GetDashboard(_ context.Context, year *int) (*domain.Dashboard, error) {
	f.year = year
	return &domain.Dashboard{Year: year}, nil
}

type fakeReporter struct{}

func (fakeReporter) ExportPeriod(_ context.Context, filter domain.ContractFilter) (*reporting.Report, error) {
	return &reporting.Report{
		FileName: reporting.FileName(filter.Period, filter.Instructor),
		Content:  []byte("xlsx"),
	}, nil
}

type fakeJob struct {
	triggered int
}

func (f *fakeJob) Name() string                            { return "inbox-import" }
func (f *fakeJob) TriggerManualSync(context.Context) bool { f.triggered++; return true }
func (f *fakeJob) GetStatus() map[string]any               { return map[string]any{"sync_running": false} }

type env struct {
	handler   http.Handler
	contracts *fakeContracts
	dashboard *fakeDashboard
	job       *fakeJob
}

func newEnv(t *testing.T) *env {
	t.Helper()

	cfg := &config.Config{}
	cfg.Import.MaxUploadMB = 1
	cfg.Cors.AllowedOrigins = []string{"http://localhost:3000"}

	e := &env{
		contracts: &fakeContracts{},
		dashboard: &fakeDashboard{},
		job:       &fakeJob{},
	}
	e.handler = NewHandler(cfg, Services{
		Authenticator: fakeAuth{},
		Contracts:     e.contracts,
		Dashboard:     e.dashboard,
		Reports:       fakeReporter{},
		CronJobs:      handler.NewCronJobs(e.job),
	})

	return e
}

func (e *env) do(t *testing.T, method, target, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestHealthcheckPublico(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/healthcheck", "", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/v1/login", "", bytes.NewBufferString(`{"email":"admin@academia.com","password":"x"}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"token":"admin"}`, rec.Body.String())

	rec = e.do(t, http.MethodPost, "/v1/login", "", bytes.NewBufferString(`{"email":"outro@academia.com"}`), "application/json")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrUserNotFound, decodeError(t, rec).Code)
}

func TestRotaProtegidaSemToken(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/v1/modalities", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListModalities_ProfessorVeApenasVinculadas(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/v1/modalities", "instructor", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var modalities []domain.ModalityInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &modalities))
	require.Len(t, modalities, 1)
	assert.Equal(t, domain.ModalityPilates, modalities[0].Code)

	rec = e.do(t, http.MethodGet, "/v1/modalities", "admin", nil, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &modalities))
	assert.Len(t, modalities, 5)
}

func TestListContracts(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/v1/modalities/pilates/contracts?month=set&year=2025&instructor=Sem%20Professor", "instructor", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, domain.Period{Modality: domain.ModalityPilates, Month: "set", Year: 2025}, e.contracts.lastFilter.Period)
	require.NotNil(t, e.contracts.lastFilter.Instructor)
	assert.True(t, e.contracts.lastFilter.Instructor.NoInstructor)
	assert.Contains(t, rec.Body.String(), `"total_half_share":"50"`)
}

func TestListContracts_Erros(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name   string
		target string
		token  string
		status int
		code   string
	}{
		{"modalidade sem vínculo", "/v1/modalities/judo/contracts?month=set&year=2025", "instructor", http.StatusForbidden, apiErrors.ErrInsufficientPrivilege},
		{"modalidade desconhecida", "/v1/modalities/natacao/contracts?month=set&year=2025", "admin", http.StatusBadRequest, apiErrors.ErrInvalidPeriod},
		{"mês inválido", "/v1/modalities/judo/contracts?month=xyz&year=2025", "admin", http.StatusBadRequest, apiErrors.ErrInvalidPeriod},
		{"ano ausente", "/v1/modalities/judo/contracts?month=set", "admin", http.StatusBadRequest, apiErrors.ErrInvalidPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(t, http.MethodGet, tt.target, tt.token, nil, "")
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestDeleteContract(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodDelete, "/v1/modalities/krav/contracts/101?month=jan&year=2024", "manager", nil, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, domain.ContractKey{ClientID: "101", Modality: domain.ModalityKravmaga, Month: "jan", Year: 2024}, e.contracts.deletedKey)

	rec = e.do(t, http.MethodDelete, "/v1/modalities/krav/contracts/999?month=jan&year=2024", "manager", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrContractNotFound, decodeError(t, rec).Code)

	rec = e.do(t, http.MethodDelete, "/v1/modalities/pilates/contracts/101?month=jan&year=2024", "instructor", nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListInstructors_ModalidadeSemProfessor(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/v1/modalities/judo/instructors", "admin", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrUnsupportedModality, decodeError(t, rec).Code)

	rec = e.do(t, http.MethodGet, "/v1/modalities/muay/instructors", "admin", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["Ana","Bruno"]`, rec.Body.String())
}

func multipartBody(t *testing.T, field, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestImportContracts(t *testing.T) {
	e := newEnv(t)

	body, contentType := multipartBody(t, "file", "judo_set_2025.xlsx", []byte("planilha"))
	rec := e.do(t, http.MethodPost, "/v1/modalities/judo/imports?month=set&year=2025", "manager", body, contentType)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "judo_set_2025.xlsx", e.contracts.lastImport.SourceFile)
	assert.Equal(t, []byte("planilha"), e.contracts.lastImport.Content)
	assert.Equal(t, domain.ImportTriggerManual, e.contracts.lastImport.Trigger)
	assert.Contains(t, rec.Body.String(), `"imported":2`)
}

func TestImportContracts_Falhas(t *testing.T) {
	e := newEnv(t)

	body, contentType := multipartBody(t, "file", "grande.xlsx", bytes.Repeat([]byte("a"), 2<<20))
	rec := e.do(t, http.MethodPost, "/v1/modalities/judo/imports?month=set&year=2025", "manager", body, contentType)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, apiErrors.ErrFileTooLarge, decodeError(t, rec).Code)

	body, contentType = multipartBody(t, "outro", "judo.xlsx", []byte("planilha"))
	rec = e.do(t, http.MethodPost, "/v1/modalities/judo/imports?month=set&year=2025", "manager", body, contentType)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeError(t, rec).Code)

	body, contentType = multipartBody(t, "file", "judo.xlsx", []byte("planilha"))
	rec = e.do(t, http.MethodPost, "/v1/modalities/judo/imports?month=set&year=2025", "instructor", body, contentType)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestExportReport(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/v1/modalities/pilates/report?month=set&year=2025&instructor=Ana%20L%C3%BAcia", "admin", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, reporting.ContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="pilates_ana_lucia_set_2025.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "xlsx", rec.Body.String())
}

func TestGetDashboard(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/v1/dashboard?year=2025", "manager", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, e.dashboard.year)
	assert.Equal(t, 2025, *e.dashboard.year)

	rec = e.do(t, http.MethodGet, "/v1/dashboard", "admin", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, e.dashboard.year)

	rec = e.do(t, http.MethodGet, "/v1/dashboard?year=abc", "admin", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodGet, "/v1/dashboard", "instructor", nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCron(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/v1/cron/inbox-import/run", "admin", nil, "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, e.job.triggered)

	rec = e.do(t, http.MethodPost, "/v1/cron/all/run", "admin", nil, "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 2, e.job.triggered)

	rec = e.do(t, http.MethodPost, "/v1/cron/desconhecido/run", "admin", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodGet, "/v1/cron/status", "admin", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"inbox-import":{"sync_running":false}}`, rec.Body.String())

	rec = e.do(t, http.MethodGet, "/v1/cron/status", "manager", nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRotaInexistente(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/v1/nada", "admin", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
