package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/academy-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/academy-dashboard-api/internal/domain"
)

const (
	usersTable          = "users"
	userModalitiesTable = "user_modalities"
)

var userColumns = []string{
	"id",
	"name",
	"lastname",
	"email",
	"password_hash",
	"active",
	"role_id",
	"created_at",
	"updated_at",
}

//go:generate mockgen -source=user.go -destination=mocks/user.go -package=mocks
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int) (*domain.User, error)
	ListUser(ctx context.Context) ([]*domain.User, error)
	GetUserLinkedModalities(ctx context.Context, userID int) ([]domain.Modality, error)
	ReplaceUserModalities(ctx context.Context, userID int, modalities []domain.Modality) error
}

type userRepository struct {
	conn *postgres.Connection
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

// CreateUser insere o usuário e seus vínculos de modalidade na mesma transação
func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query, args, err := insertUserQuery(user).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return fmt.Errorf("erro ao criar usuário: %w", err)
		}

		return linkModalities(ctx, tx, user.ID, user.LinkedModalities)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	query, args, err := updateUserQuery(user).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar usuário %d: %w", user.ID, err)
	}

	return nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"email": email, "deleted": false})
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"id": userID, "deleted": false})
}

func (r *userRepository) getUser(ctx context.Context, where squirrel.Eq) (*domain.User, error) {
	query, args, err := squirrel.
		Select(userColumns...).
		From(usersTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var user domain.User
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Lastname,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		&user.RoleID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar usuário: %w", err)
	}

	r.loadModalities(ctx, &user)

	return &user, nil
}

func (r *userRepository) ListUser(ctx context.Context) ([]*domain.User, error) {
	query, args, err := squirrel.
		Select(userColumns...).
		From(usersTable).
		Where(squirrel.Eq{"deleted": false}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar usuários: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Lastname,
			&user.Email,
			&user.PasswordHash,
			&user.Active,
			&user.RoleID,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		user.PasswordHash = ""
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	for _, user := range users {
		r.loadModalities(ctx, user)
	}

	return users, nil
}

func (r *userRepository) GetUserLinkedModalities(ctx context.Context, userID int) ([]domain.Modality, error) {
	query, args, err := squirrel.
		Select("modality").
		From(userModalitiesTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("modality ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar modalidades vinculadas: %w", err)
	}
	defer rows.Close()

	modalities := make([]domain.Modality, 0)
	for rows.Next() {
		var modality string
		if err := rows.Scan(&modality); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		modalities = append(modalities, domain.Modality(modality))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return modalities, nil
}

// ReplaceUserModalities substitui os vínculos do usuário pela lista informada
func (r *userRepository) ReplaceUserModalities(ctx context.Context, userID int, modalities []domain.Modality) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		query, args, err := squirrel.
			Delete(userModalitiesTable).
			Where(squirrel.Eq{"user_id": userID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir consulta: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("erro ao desvincular modalidades: %w", err)
		}

		return linkModalities(ctx, tx, userID, modalities)
	})
}

func linkModalities(ctx context.Context, q postgres.Queryer, userID int, modalities []domain.Modality) error {
	if len(modalities) == 0 {
		return nil
	}

	query, args, err := linkModalitiesQuery(userID, modalities).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir consulta: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao vincular modalidades: %w", err)
	}

	return nil
}

func (r *userRepository) loadModalities(ctx context.Context, user *domain.User) {
	modalities, err := r.GetUserLinkedModalities(ctx, user.ID)
	if err != nil {
		// Continua mesmo com erro, apenas com a lista vazia
		logrus.Warnf("Erro ao buscar modalidades vinculadas para o usuário %d: %v", user.ID, err)
		return
	}
	user.LinkedModalities = modalities
}

func insertUserQuery(user *domain.User) squirrel.InsertBuilder {
	return squirrel.
		Insert(usersTable).
		Columns("name", "lastname", "email", "password_hash", "active", "role_id").
		Values(user.Name, user.Lastname, user.Email, user.PasswordHash, user.Active, user.RoleID).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)
}

func updateUserQuery(user *domain.User) squirrel.UpdateBuilder {
	builder := squirrel.
		Update(usersTable).
		Set("active", user.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": user.ID})

	if user.Name != "" {
		builder = builder.Set("name", user.Name)
	}

	if user.Lastname != "" {
		builder = builder.Set("lastname", user.Lastname)
	}

	if user.Email != "" {
		builder = builder.Set("email", user.Email)
	}

	if user.PasswordHash != "" {
		builder = builder.Set("password_hash", user.PasswordHash)
	}

	if user.RoleID != 0 {
		builder = builder.Set("role_id", user.RoleID)
	}

	if user.Deleted {
		builder = builder.Set("deleted", true)
		builder = builder.Set("deleted_at", user.DeletedAt)
	}

	return builder.PlaceholderFormat(squirrel.Dollar)
}

func linkModalitiesQuery(userID int, modalities []domain.Modality) squirrel.InsertBuilder {
	builder := squirrel.
		Insert(userModalitiesTable).
		Columns("user_id", "modality")

	for _, modality := range modalities {
		builder = builder.Values(userID, string(modality))
	}

	return builder.
		Suffix("ON CONFLICT (user_id, modality) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)
}
