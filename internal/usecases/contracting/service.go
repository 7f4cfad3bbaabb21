package contracting

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/academy-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/academy-dashboard-api/infrastructure/spreadsheet"
	"github.com/vfg2006/academy-dashboard-api/internal/config"
	"github.com/vfg2006/academy-dashboard-api/internal/domain"
	"github.com/vfg2006/academy-dashboard-api/internal/valuation"
	"github.com/vfg2006/academy-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/academy-dashboard-api/pkg/log"
	"github.com/vfg2006/academy-dashboard-api/pkg/utils"
)

const (
	minYear = 2000
	maxYear = 2100
)

type ContractService interface {
	ImportSpreadsheet(ctx context.Context, req domain.ImportRequest) (*domain.ImportResult, error)
	Register(ctx context.Context, period domain.Period, req domain.RegisterContractRequest) (*domain.Contract, error)
	Update(ctx context.Context, key domain.ContractKey, patch domain.UpdateContractRequest) (*domain.Contract, error)
	Delete(ctx context.Context, key domain.ContractKey) error
	DeletePeriod(ctx context.Context, period domain.Period) (int64, error)
	ListByPeriod(ctx context.Context, filter domain.ContractFilter) (*domain.ContractListResponse, error)
	ListPlans(ctx context.Context, modality domain.Modality) ([]string, error)
	ListInstructors(ctx context.Context, modality domain.Modality) ([]string, error)
	ListImports(ctx context.Context, modality *domain.Modality) ([]*domain.ImportHistory, error)
}

type Service struct {
	contractRepo repository.ContractRepository
	importRepo   repository.ImportHistoryRepository
	parser       spreadsheet.Parser
	cfg          *config.Config
}

func NewService(
	contractRepo repository.ContractRepository,
	importRepo repository.ImportHistoryRepository,
	parser spreadsheet.Parser,
	cfg *config.Config,
) ContractService {
	return &Service{
		contractRepo: contractRepo,
		importRepo:   importRepo,
		parser:       parser,
		cfg:          cfg,
	}
}

// NormalizePeriod valida a modalidade, o mês e o ano, devolvendo os códigos canônicos
func NormalizePeriod(period domain.Period) (domain.Period, error) {
	modality, ok := domain.ParseModality(string(period.Modality))
	if !ok {
		return period, NewContractError(ErrInvalidModality, apiErrors.ErrInvalidPeriod, fmt.Sprintf("modalidade %q", period.Modality))
	}

	month, ok := domain.ParseMonth(period.Month)
	if !ok {
		return period, NewContractError(ErrInvalidMonth, apiErrors.ErrInvalidPeriod, fmt.Sprintf("mês %q", period.Month))
	}

	if period.Year < minYear || period.Year > maxYear {
		return period, NewContractError(ErrInvalidYear, apiErrors.ErrInvalidPeriod, fmt.Sprintf("ano %d", period.Year))
	}

	return domain.Period{Modality: modality, Month: month, Year: period.Year}, nil
}

// ImportSpreadsheet substitui os contratos do período pelos da planilha
func (s *Service) ImportSpreadsheet(ctx context.Context, req domain.ImportRequest) (*domain.ImportResult, error) {
	logger := log.ForContext(ctx)

	period, err := NormalizePeriod(req.Period)
	if err != nil {
		return nil, err
	}

	if len(req.Content) == 0 {
		return nil, NewContractError(ErrEmptyFile, apiErrors.ErrMissingRequiredData, req.SourceFile)
	}

	trigger := req.Trigger
	if trigger == "" {
		trigger = domain.ImportTriggerManual
	}

	sum := sha256.Sum256(req.Content)
	history := &domain.ImportHistory{
		Modality:   period.Modality,
		Month:      period.Month,
		Year:       period.Year,
		SourceFile: req.SourceFile,
		Checksum:   hex.EncodeToString(sum[:]),
		Trigger:    trigger,
	}

	if trigger == domain.ImportTriggerScheduled {
		exists, err := s.importRepo.ExistsChecksum(ctx, period, history.Checksum)
		if err != nil {
			return nil, NewContractError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar histórico de importações")
		}
		if exists {
			return nil, NewContractError(ErrAlreadyImported, apiErrors.ErrDuplicatedImport, req.SourceFile)
		}
	}

	history.ID, err = utils.GenerateID()
	if err != nil {
		return nil, NewContractError(err, apiErrors.ErrInternalServer, "Falha ao gerar identificador da importação")
	}

	logger = logger.WithFields(log.Fields{
		"import_id": history.ID,
		"period":    period.String(),
		"trigger":   trigger,
	})

	sheet, err := s.parser.Parse(bytes.NewReader(req.Content))
	if err != nil {
		s.recordFailure(ctx, history, err)
		return nil, NewContractError(ErrInvalidSpreadsheet, apiErrors.ErrInvalidSpreadsheet, err.Error())
	}

	contracts, duplicated := buildContracts(period, sheet.Rows)
	history.Skipped = sheet.Skipped + duplicated

	deleted, err := s.contractRepo.ReplacePeriod(ctx, period, contracts)
	if err != nil {
		logger.WithError(err).Error("contracting: erro ao substituir contratos do período")
		s.recordFailure(ctx, history, err)
		return nil, NewContractError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao gravar contratos do período")
	}

	history.Status = domain.ImportStatusSuccess
	history.Deleted = deleted
	history.Imported = len(contracts)

	if err := s.archive(period, req.Content); err != nil {
		logger.WithError(err).Warn("contracting: não foi possível arquivar a planilha")
	}

	if err := s.importRepo.Save(ctx, history); err != nil {
		logger.WithError(err).Warn("contracting: não foi possível registrar o histórico da importação")
	}

	logger.Infof("contracting: %d contratos importados, %d removidos, %d ignorados", history.Imported, deleted, history.Skipped)

	return &domain.ImportResult{
		ID:       history.ID,
		Period:   period,
		Deleted:  deleted,
		Imported: history.Imported,
		Skipped:  history.Skipped,
	}, nil
}

// buildContracts deriva os valores de cada linha. IDs repetidos na mesma planilha mantêm a última ocorrência.
func buildContracts(period domain.Period, rows []spreadsheet.RawRow) ([]*domain.Contract, int) {
	contracts := make([]*domain.Contract, 0, len(rows))
	position := make(map[string]int, len(rows))
	duplicated := 0

	for _, row := range rows {
		contract := newContract(period, row.ClientID, row.FullName, row.PlanLabel, valuation.ParsePrice(row.RawPrice), row.StartDate, row.DueDate, row.Instructor)

		if i, ok := position[contract.ClientID]; ok {
			contracts[i] = contract
			duplicated++
			continue
		}

		position[contract.ClientID] = len(contracts)
		contracts = append(contracts, contract)
	}

	return contracts, duplicated
}

func newContract(
	period domain.Period,
	clientID, fullName, planLabel string,
	price decimal.Decimal,
	startDate, dueDate string,
	instructor *string,
) *domain.Contract {
	contract := valuation.Derive(domain.Contract{
		ClientID:   strings.TrimSpace(clientID),
		FullName:   strings.TrimSpace(fullName),
		PlanLabel:  strings.TrimSpace(planLabel),
		TotalPrice: price,
		StartDate:  strings.TrimSpace(startDate),
		DueDate:    strings.TrimSpace(dueDate),
		Instructor: normalizeInstructor(period.Modality, instructor),
		Modality:   period.Modality,
		Month:      period.Month,
		Year:       period.Year,
	})
	return &contract
}

// Modalidades sem professor nunca gravam o campo
func normalizeInstructor(modality domain.Modality, instructor *string) *string {
	if instructor == nil || !modality.HasInstructor() {
		return nil
	}

	name := strings.TrimSpace(*instructor)
	if name == "" {
		return nil
	}

	return &name
}

func (s *Service) recordFailure(ctx context.Context, history *domain.ImportHistory, cause error) {
	message := cause.Error()
	history.Status = domain.ImportStatusFailure
	history.Error = &message

	if err := s.importRepo.Save(ctx, history); err != nil {
		log.ForContext(ctx).WithError(err).Warn("contracting: não foi possível registrar a falha da importação")
	}
}

// archive guarda uma cópia da planilha em {upload_dir}/{modalidade}/{modalidade}_{mes}_{ano}.xlsx
func (s *Service) archive(period domain.Period, content []byte) error {
	if s.cfg == nil || s.cfg.Import.UploadDir == "" {
		return nil
	}

	dir := filepath.Join(s.cfg.Import.UploadDir, string(period.Modality))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, period.String()+".xlsx"), content, 0o644)
}

func (s *Service) Register(ctx context.Context, period domain.Period, req domain.RegisterContractRequest) (*domain.Contract, error) {
	period, err := NormalizePeriod(period)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.ClientID) == "" {
		return nil, NewContractError(ErrClientIDRequired, apiErrors.ErrMissingRequiredData, "Informe o ID do cliente")
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, NewContractError(ErrFullNameRequired, apiErrors.ErrMissingRequiredData, "Informe o nome completo")
	}
	if strings.TrimSpace(req.PlanLabel) == "" {
		return nil, NewContractError(ErrPlanRequired, apiErrors.ErrMissingRequiredData, "Informe o plano do contrato")
	}
	if !req.TotalPrice.IsPositive() {
		return nil, NewContractError(ErrInvalidPrice, apiErrors.ErrInvalidFormat, req.TotalPrice.String())
	}
	if strings.TrimSpace(req.StartDate) == "" {
		return nil, NewContractError(ErrStartDateRequired, apiErrors.ErrMissingRequiredData, "Informe a data de início")
	}
	if strings.TrimSpace(req.DueDate) == "" {
		return nil, NewContractError(ErrDueDateRequired, apiErrors.ErrMissingRequiredData, "Informe a data de vencimento")
	}

	contract := newContract(period, req.ClientID, req.FullName, req.PlanLabel, req.TotalPrice, req.StartDate, req.DueDate, req.Instructor)

	if err := s.contractRepo.Upsert(ctx, contract); err != nil {
		log.ForContext(ctx).WithError(err).Error("contracting: erro ao cadastrar contrato")
		return nil, NewContractErrorWithKey(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, contract.Key(), "Falha ao cadastrar contrato")
	}

	return contract, nil
}

func (s *Service) Update(ctx context.Context, key domain.ContractKey, patch domain.UpdateContractRequest) (*domain.Contract, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return nil, NewContractErrorWithKey(ErrNothingToUpdate, apiErrors.ErrInvalidRequest, key, "")
	}
	if patch.TotalPrice != nil && patch.TotalPrice.IsNegative() {
		return nil, NewContractErrorWithKey(ErrInvalidPrice, apiErrors.ErrInvalidFormat, key, patch.TotalPrice.String())
	}

	current, err := s.contractRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, NewContractErrorWithKey(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, key, "Falha ao consultar contrato")
	}
	if current == nil {
		return nil, NewContractErrorWithKey(ErrContractNotFound, apiErrors.ErrContractNotFound, key, key.ClientID)
	}

	updated := *current
	if patch.FullName != nil {
		updated.FullName = *patch.FullName
	}
	if patch.PlanLabel != nil {
		updated.PlanLabel = *patch.PlanLabel
	}
	if patch.TotalPrice != nil {
		updated.TotalPrice = *patch.TotalPrice
	}
	if patch.StartDate != nil {
		updated.StartDate = *patch.StartDate
	}
	if patch.DueDate != nil {
		updated.DueDate = *patch.DueDate
	}
	if patch.Instructor != nil {
		updated.Instructor = patch.Instructor
	}

	contract := newContract(key.Period(), updated.ClientID, updated.FullName, updated.PlanLabel, updated.TotalPrice, updated.StartDate, updated.DueDate, updated.Instructor)
	contract.CreatedAt = current.CreatedAt

	if err := s.contractRepo.Upsert(ctx, contract); err != nil {
		log.ForContext(ctx).WithError(err).Error("contracting: erro ao atualizar contrato")
		return nil, NewContractErrorWithKey(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, key, "Falha ao atualizar contrato")
	}

	return contract, nil
}

func (s *Service) Delete(ctx context.Context, key domain.ContractKey) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}

	deleted, err := s.contractRepo.DeleteByKey(ctx, key)
	if err != nil {
		return NewContractErrorWithKey(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, key, "Falha ao excluir contrato")
	}
	if !deleted {
		return NewContractErrorWithKey(ErrContractNotFound, apiErrors.ErrContractNotFound, key, key.ClientID)
	}

	return nil
}

func (s *Service) DeletePeriod(ctx context.Context, period domain.Period) (int64, error) {
	period, err := NormalizePeriod(period)
	if err != nil {
		return 0, err
	}

	deleted, err := s.contractRepo.DeleteByPeriod(ctx, period)
	if err != nil {
		return 0, NewContractError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao excluir contratos do período")
	}

	log.ForContext(ctx).Infof("contracting: %d contratos removidos de %s", deleted, period)

	return deleted, nil
}

func (s *Service) ListByPeriod(ctx context.Context, filter domain.ContractFilter) (*domain.ContractListResponse, error) {
	period, err := NormalizePeriod(filter.Period)
	if err != nil {
		return nil, err
	}
	filter.Period = period

	if !period.Modality.HasInstructor() {
		filter.Instructor = nil
	}

	contracts, err := s.contractRepo.FindByPeriod(ctx, filter)
	if err != nil {
		return nil, NewContractError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar contratos do período")
	}

	for i, contract := range contracts {
		derived := valuation.Derive(*contract)
		contracts[i] = &derived
	}

	response := &domain.ContractListResponse{
		Period:     period,
		PeriodName: period.Label(),
		Contracts:  contracts,
		Summary:    valuation.Summarize(contracts),
	}
	if period.Modality.HasInstructor() {
		response.Instructor = filter.Instructor.Label()
	}

	return response, nil
}

func (s *Service) ListPlans(ctx context.Context, modality domain.Modality) ([]string, error) {
	code, ok := domain.ParseModality(string(modality))
	if !ok {
		return nil, NewContractError(ErrInvalidModality, apiErrors.ErrInvalidPeriod, string(modality))
	}

	plans, err := s.contractRepo.ListDistinctPlans(ctx, code)
	if err != nil {
		return nil, NewContractError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar planos")
	}

	return plans, nil
}

func (s *Service) ListInstructors(ctx context.Context, modality domain.Modality) ([]string, error) {
	code, ok := domain.ParseModality(string(modality))
	if !ok {
		return nil, NewContractError(ErrInvalidModality, apiErrors.ErrInvalidPeriod, string(modality))
	}

	if !code.HasInstructor() {
		return nil, NewContractError(ErrNoInstructors, apiErrors.ErrUnsupportedModality, code.DisplayName())
	}

	instructors, err := s.contractRepo.ListDistinctInstructors(ctx, code)
	if err != nil {
		return nil, NewContractError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar professores")
	}

	return instructors, nil
}

func (s *Service) ListImports(ctx context.Context, modality *domain.Modality) ([]*domain.ImportHistory, error) {
	if modality != nil {
		code, ok := domain.ParseModality(string(*modality))
		if !ok {
			return nil, NewContractError(ErrInvalidModality, apiErrors.ErrInvalidPeriod, string(*modality))
		}
		modality = &code
	}

	limit := uint64(50)
	if s.cfg != nil && s.cfg.Import.HistoryListMax > 0 {
		limit = s.cfg.Import.HistoryListMax
	}

	entries, err := s.importRepo.ListRecent(ctx, modality, limit)
	if err != nil {
		return nil, NewContractError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar importações")
	}

	return entries, nil
}

func normalizeKey(key domain.ContractKey) (domain.ContractKey, error) {
	period, err := NormalizePeriod(key.Period())
	if err != nil {
		return key, err
	}

	clientID := strings.TrimSpace(key.ClientID)
	if clientID == "" {
		return key, NewContractError(ErrClientIDRequired, apiErrors.ErrMissingRequiredData, "Informe o ID do cliente")
	}

	return domain.ContractKey{
		ClientID: clientID,
		Modality: period.Modality,
		Month:    period.Month,
		Year:     period.Year,
	}, nil
}
