package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractKey identifica unicamente um contrato: um cliente por modalidade, mês e ano
type ContractKey struct {
	ClientID string   `json:"client_id"`
	Modality Modality `json:"modality"`
	Month    string   `json:"month"`
	Year     int      `json:"year"`
}

func (k ContractKey) Period() Period {
	return Period{Modality: k.Modality, Month: k.Month, Year: k.Year}
}

type Contract struct {
	ClientID       string          `json:"client_id"`
	FullName       string          `json:"full_name"`
	PlanLabel      string          `json:"plan_label"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	StartDate      string          `json:"start_date"`
	DueDate        string          `json:"due_date"`
	MonthlyValue   decimal.Decimal `json:"monthly_value"`
	HalfShareValue decimal.Decimal `json:"half_share_value"`
	Instructor     *string         `json:"instructor"`
	Modality       Modality        `json:"modality"`
	Month          string          `json:"month"`
	Year           int             `json:"year"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (c *Contract) Key() ContractKey {
	return ContractKey{
		ClientID: c.ClientID,
		Modality: c.Modality,
		Month:    c.Month,
		Year:     c.Year,
	}
}

func (c *Contract) Period() Period {
	return Period{Modality: c.Modality, Month: c.Month, Year: c.Year}
}

// InstructorFilter restringe a listagem de um período por professor.
// Nil em ContractFilter significa todos os professores.
type InstructorFilter struct {
	Name         string
	NoInstructor bool
}

const (
	InstructorFilterAll  = "Todos"
	InstructorFilterNone = "Sem Professor"
)

// ParseInstructorFilter interpreta o parâmetro de professor usado pelas telas
func ParseInstructorFilter(s string) *InstructorFilter {
	switch s {
	case "", InstructorFilterAll:
		return nil
	case InstructorFilterNone:
		return &InstructorFilter{NoInstructor: true}
	default:
		return &InstructorFilter{Name: s}
	}
}

// Label retorna o texto de exibição do filtro
func (f *InstructorFilter) Label() string {
	switch {
	case f == nil:
		return InstructorFilterAll
	case f.NoInstructor:
		return InstructorFilterNone
	default:
		return f.Name
	}
}

type ContractFilter struct {
	Period
	Instructor *InstructorFilter
}

type RegisterContractRequest struct {
	ClientID   string          `json:"client_id"`
	FullName   string          `json:"full_name"`
	PlanLabel  string          `json:"plan_label"`
	TotalPrice decimal.Decimal `json:"total_price"`
	StartDate  string          `json:"start_date"`
	DueDate    string          `json:"due_date"`
	Instructor *string         `json:"instructor"`
}

// UpdateContractRequest substitui apenas os campos informados
type UpdateContractRequest struct {
	FullName   *string          `json:"full_name"`
	PlanLabel  *string          `json:"plan_label"`
	TotalPrice *decimal.Decimal `json:"total_price"`
	StartDate  *string          `json:"start_date"`
	DueDate    *string          `json:"due_date"`
	Instructor *string          `json:"instructor"`
}

func (r *UpdateContractRequest) IsEmpty() bool {
	return r.FullName == nil && r.PlanLabel == nil && r.TotalPrice == nil &&
		r.StartDate == nil && r.DueDate == nil && r.Instructor == nil
}

type ContractListResponse struct {
	Period     Period        `json:"period"`
	PeriodName string        `json:"period_name"`
	Instructor string        `json:"instructor,omitempty"`
	Contracts  []*Contract   `json:"contracts"`
	Summary    PeriodSummary `json:"summary"`
}
