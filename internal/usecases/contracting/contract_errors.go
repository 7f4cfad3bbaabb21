package contracting

import (
	"errors"
	"fmt"

	"github.com/vfg2006/academy-dashboard-api/internal/domain"
)

// Erros específicos para o contexto de contratos
var (
	// Erros de validação
	ErrInvalidModality    = errors.New("modalidade inválida")
	ErrInvalidMonth       = errors.New("mês inválido")
	ErrInvalidYear        = errors.New("ano inválido")
	ErrClientIDRequired   = errors.New("ID do cliente é obrigatório")
	ErrFullNameRequired   = errors.New("nome completo é obrigatório")
	ErrPlanRequired       = errors.New("plano é obrigatório")
	ErrStartDateRequired  = errors.New("data de início é obrigatória")
	ErrDueDateRequired    = errors.New("data de vencimento é obrigatória")
	ErrInvalidPrice       = errors.New("valor deve ser maior que zero")
	ErrNothingToUpdate    = errors.New("nenhum campo para atualizar")
	ErrEmptyFile          = errors.New("arquivo vazio")
	ErrInvalidSpreadsheet = errors.New("planilha inválida")
	ErrNoInstructors      = errors.New("modalidade não possui professores")

	// Erros de negócio
	ErrContractNotFound = errors.New("contrato não encontrado")
	ErrAlreadyImported  = errors.New("planilha já importada para o período")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// ContractError é um erro com contexto adicional para contratos
type ContractError struct {
	Err     error              // Erro base
	Code    string             // Código de erro para API
	Key     domain.ContractKey // Contrato envolvido (quando aplicável)
	Details string             // Detalhes adicionais
}

// Error implementa a interface error
func (e *ContractError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ContractError) Unwrap() error {
	return e.Err
}

// IsValidationError verifica se o erro foi causado por dados de entrada
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidModality) ||
		errors.Is(err, ErrInvalidMonth) ||
		errors.Is(err, ErrInvalidYear) ||
		errors.Is(err, ErrClientIDRequired) ||
		errors.Is(err, ErrFullNameRequired) ||
		errors.Is(err, ErrPlanRequired) ||
		errors.Is(err, ErrStartDateRequired) ||
		errors.Is(err, ErrDueDateRequired) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrNothingToUpdate) ||
		errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrInvalidSpreadsheet)
}

// NewContractError cria um novo ContractError
func NewContractError(err error, code string, details string) *ContractError {
	return &ContractError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewContractErrorWithKey cria um novo ContractError com a chave do contrato
func NewContractErrorWithKey(err error, code string, key domain.ContractKey, details string) *ContractError {
	return &ContractError{
		Err:     err,
		Code:    code,
		Key:     key,
		Details: details,
	}
}
