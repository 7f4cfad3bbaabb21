package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/academy-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/academy-dashboard-api/internal/domain"
	"github.com/vfg2006/academy-dashboard-api/internal/valuation"
)

const (
	contractsTable = "contracts"

	contractConflictSuffix = "ON CONFLICT (client_id, modality, month, year) DO UPDATE SET " +
		"full_name = EXCLUDED.full_name, " +
		"plan_label = EXCLUDED.plan_label, " +
		"total_price = EXCLUDED.total_price, " +
		"monthly_value = EXCLUDED.monthly_value, " +
		"start_date = EXCLUDED.start_date, " +
		"due_date = EXCLUDED.due_date, " +
		"instructor = EXCLUDED.instructor, " +
		"updated_at = NOW()"
)

var contractColumns = []string{
	"client_id",
	"full_name",
	"plan_label",
	"total_price",
	"start_date",
	"due_date",
	"monthly_value",
	"instructor",
	"modality",
	"month",
	"year",
	"created_at",
	"updated_at",
}

//go:generate mockgen -source=contract.go -destination=mocks/contract.go -package=mocks
type ContractRepository interface {
	FindByPeriod(ctx context.Context, filter domain.ContractFilter) ([]*domain.Contract, error)
	FindAll(ctx context.Context, year *int) ([]*domain.Contract, error)
	GetByKey(ctx context.Context, key domain.ContractKey) (*domain.Contract, error)
	Upsert(ctx context.Context, contract *domain.Contract) error
	DeleteByPeriod(ctx context.Context, period domain.Period) (int64, error)
	DeleteByKey(ctx context.Context, key domain.ContractKey) (bool, error)
	ReplacePeriod(ctx context.Context, period domain.Period, contracts []*domain.Contract) (int64, error)
	ListDistinctPlans(ctx context.Context, modality domain.Modality) ([]string, error)
	ListDistinctInstructors(ctx context.Context, modality domain.Modality) ([]string, error)
}

type contractRepository struct {
	conn *postgres.Connection
}

func NewContractRepository(conn *postgres.Connection) ContractRepository {
	return &contractRepository{
		conn: conn,
	}
}

func (r *contractRepository) FindByPeriod(ctx context.Context, filter domain.ContractFilter) ([]*domain.Contract, error) {
	query, args, err := selectContractsByPeriod(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryContracts(ctx, query, args...)
}

func (r *contractRepository) FindAll(ctx context.Context, year *int) ([]*domain.Contract, error) {
	query, args, err := selectAllContracts(year).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryContracts(ctx, query, args...)
}

func (r *contractRepository) GetByKey(ctx context.Context, key domain.ContractKey) (*domain.Contract, error) {
	query, args, err := squirrel.
		Select(contractColumns...).
		From(contractsTable).
		Where(keyPredicate(key)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	contract, err := scanContract(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear contrato: %w", err)
	}

	return contract, nil
}

func (r *contractRepository) Upsert(ctx context.Context, contract *domain.Contract) error {
	return upsertContract(ctx, r.conn, contract)
}

func (r *contractRepository) DeleteByPeriod(ctx context.Context, period domain.Period) (int64, error) {
	return deleteContractsByPeriod(ctx, r.conn, period)
}

func (r *contractRepository) DeleteByKey(ctx context.Context, key domain.ContractKey) (bool, error) {
	query, args, err := squirrel.
		Delete(contractsTable).
		Where(keyPredicate(key)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao excluir contrato: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter linhas afetadas: %w", err)
	}

	return affected > 0, nil
}

// ReplacePeriod remove os contratos do período e grava os novos na mesma transação
func (r *contractRepository) ReplacePeriod(ctx context.Context, period domain.Period, contracts []*domain.Contract) (int64, error) {
	var deleted int64

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		var err error
		deleted, err = deleteContractsByPeriod(ctx, tx, period)
		if err != nil {
			return err
		}

		for _, contract := range contracts {
			if contract.Period() != period {
				return fmt.Errorf("contrato %s fora do período %s", contract.ClientID, period)
			}
			if err := upsertContract(ctx, tx, contract); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

func (r *contractRepository) ListDistinctPlans(ctx context.Context, modality domain.Modality) ([]string, error) {
	return r.listDistinct(ctx, "plan_label", modality)
}

func (r *contractRepository) ListDistinctInstructors(ctx context.Context, modality domain.Modality) ([]string, error) {
	return r.listDistinct(ctx, "instructor", modality)
}

func (r *contractRepository) listDistinct(ctx context.Context, column string, modality domain.Modality) ([]string, error) {
	query, args, err := selectDistinctValues(column, modality).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		values = append(values, value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return values, nil
}

func (r *contractRepository) queryContracts(ctx context.Context, query string, args ...any) ([]*domain.Contract, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	contracts := make([]*domain.Contract, 0)
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear contratos: %w", err)
		}
		contracts = append(contracts, contract)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return contracts, nil
}

func upsertContract(ctx context.Context, q postgres.Queryer, contract *domain.Contract) error {
	query, args, err := upsertContractQuery(contract).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao salvar contrato %s: %w", contract.ClientID, err)
	}

	return nil
}

func deleteContractsByPeriod(ctx context.Context, q postgres.Queryer, period domain.Period) (int64, error) {
	query, args, err := squirrel.
		Delete(contractsTable).
		Where(periodPredicate(period)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao excluir contratos do período %s: %w", period, err)
	}

	return result.RowsAffected()
}

func selectContractsByPeriod(filter domain.ContractFilter) squirrel.SelectBuilder {
	builder := squirrel.
		Select(contractColumns...).
		From(contractsTable).
		Where(periodPredicate(filter.Period))

	if filter.Instructor != nil {
		if filter.Instructor.NoInstructor {
			builder = builder.Where("(instructor IS NULL OR TRIM(instructor) = '')")
		} else {
			builder = builder.Where(squirrel.Eq{"instructor": filter.Instructor.Name})
		}
	}

	return builder.
		OrderBy("full_name ASC", "client_id ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func selectAllContracts(year *int) squirrel.SelectBuilder {
	builder := squirrel.
		Select(contractColumns...).
		From(contractsTable)

	if year != nil {
		builder = builder.Where(squirrel.Eq{"year": *year})
	}

	return builder.
		OrderBy("year ASC", "modality ASC", "month ASC", "client_id ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func selectDistinctValues(column string, modality domain.Modality) squirrel.SelectBuilder {
	expr := fmt.Sprintf("TRIM(%s)", column)

	return squirrel.
		Select(expr).
		Distinct().
		From(contractsTable).
		Where(squirrel.Eq{"modality": string(modality)}).
		Where(fmt.Sprintf("%s IS NOT NULL AND %s <> ''", column, expr)).
		OrderBy(expr + " ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func upsertContractQuery(contract *domain.Contract) squirrel.InsertBuilder {
	return squirrel.
		Insert(contractsTable).
		Columns(
			"client_id",
			"full_name",
			"plan_label",
			"total_price",
			"start_date",
			"due_date",
			"monthly_value",
			"instructor",
			"modality",
			"month",
			"year",
		).
		Values(
			contract.ClientID,
			contract.FullName,
			contract.PlanLabel,
			contract.TotalPrice,
			contract.StartDate,
			contract.DueDate,
			contract.MonthlyValue,
			contract.Instructor,
			string(contract.Modality),
			contract.Month,
			contract.Year,
		).
		Suffix(contractConflictSuffix).
		PlaceholderFormat(squirrel.Dollar)
}

func periodPredicate(period domain.Period) squirrel.Eq {
	return squirrel.Eq{
		"modality": string(period.Modality),
		"month":    period.Month,
		"year":     period.Year,
	}
}

func keyPredicate(key domain.ContractKey) squirrel.Eq {
	return squirrel.Eq{
		"client_id": key.ClientID,
		"modality":  string(key.Modality),
		"month":     key.Month,
		"year":      key.Year,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (*domain.Contract, error) {
	var contract domain.Contract
	var modality string

	err := row.Scan(
		&contract.ClientID,
		&contract.FullName,
		&contract.PlanLabel,
		&contract.TotalPrice,
		&contract.StartDate,
		&contract.DueDate,
		&contract.MonthlyValue,
		&contract.Instructor,
		&modality,
		&contract.Month,
		&contract.Year,
		&contract.CreatedAt,
		&contract.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	contract.Modality = domain.Modality(modality)
	contract.HalfShareValue = valuation.HalfShare(contract.MonthlyValue)

	return &contract, nil
}
