package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/academy-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/academy-dashboard-api/internal/domain"
)

const (
	importHistoryTable = "import_history"
)

//go:generate mockgen -source=import_history.go -destination=mocks/import_history.go -package=mocks
type ImportHistoryRepository interface {
	Save(ctx context.Context, entry *domain.ImportHistory) error
	ListRecent(ctx context.Context, modality *domain.Modality, limit uint64) ([]*domain.ImportHistory, error)
	ExistsChecksum(ctx context.Context, period domain.Period, checksum string) (bool, error)
}

type importHistoryRepository struct {
	conn *postgres.Connection
}

func NewImportHistoryRepository(conn *postgres.Connection) ImportHistoryRepository {
	return &importHistoryRepository{
		conn: conn,
	}
}

func (r *importHistoryRepository) Save(ctx context.Context, entry *domain.ImportHistory) error {
	query, args, err := insertImportHistory(entry).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&entry.CreatedAt); err != nil {
		return fmt.Errorf("erro ao salvar histórico de importação: %w", err)
	}

	return nil
}

func (r *importHistoryRepository) ListRecent(ctx context.Context, modality *domain.Modality, limit uint64) ([]*domain.ImportHistory, error) {
	query, args, err := selectRecentImports(modality, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.ImportHistory, 0)
	for rows.Next() {
		var entry domain.ImportHistory
		var modality, trigger, status string
		if err := rows.Scan(
			&entry.ID,
			&modality,
			&entry.Month,
			&entry.Year,
			&entry.SourceFile,
			&entry.Checksum,
			&trigger,
			&status,
			&entry.Deleted,
			&entry.Imported,
			&entry.Skipped,
			&entry.Error,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear histórico de importação: %w", err)
		}
		entry.Modality = domain.Modality(modality)
		entry.Trigger = domain.ImportTrigger(trigger)
		entry.Status = domain.ImportStatus(status)
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

// ExistsChecksum indica se um arquivo com o mesmo conteúdo já foi importado com sucesso no período
func (r *importHistoryRepository) ExistsChecksum(ctx context.Context, period domain.Period, checksum string) (bool, error) {
	query, args, err := existsChecksumQuery(period, checksum).ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var exists bool
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("erro ao verificar checksum: %w", err)
	}

	return exists, nil
}

func insertImportHistory(entry *domain.ImportHistory) squirrel.InsertBuilder {
	return squirrel.
		Insert(importHistoryTable).
		Columns(
			"id",
			"modality",
			"month",
			"year",
			"source_file",
			"checksum",
			"trigger_type",
			"status",
			"deleted",
			"imported",
			"skipped",
			"error",
		).
		Values(
			entry.ID,
			string(entry.Modality),
			entry.Month,
			entry.Year,
			entry.SourceFile,
			entry.Checksum,
			string(entry.Trigger),
			string(entry.Status),
			entry.Deleted,
			entry.Imported,
			entry.Skipped,
			entry.Error,
		).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar)
}

func selectRecentImports(modality *domain.Modality, limit uint64) squirrel.SelectBuilder {
	builder := squirrel.
		Select(
			"id",
			"modality",
			"month",
			"year",
			"source_file",
			"checksum",
			"trigger_type",
			"status",
			"deleted",
			"imported",
			"skipped",
			"error",
			"created_at",
		).
		From(importHistoryTable)

	if modality != nil {
		builder = builder.Where(squirrel.Eq{"modality": string(*modality)})
	}

	return builder.
		OrderBy("created_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar)
}

func existsChecksumQuery(period domain.Period, checksum string) squirrel.SelectBuilder {
	return squirrel.
		Select("COUNT(1) > 0").
		From(importHistoryTable).
		Where(periodPredicate(period)).
		Where(squirrel.Eq{
			"checksum": checksum,
			"status":   string(domain.ImportStatusSuccess),
		}).
		PlaceholderFormat(squirrel.Dollar)
}
