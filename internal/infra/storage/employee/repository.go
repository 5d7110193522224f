package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
	"github.com/m04kA/SMC-ServiceScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-ServiceScheduler/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"first_name",
	"last_name",
	"role",
	"is_active",
	"created_at",
	"updated_at",
}

type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID returns the employee regardless of the active flag
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("employees").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	e, err := scanEmployee(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan employee: %v", ErrScanRow, err)
	}
	return e, nil
}

// ListActiveByRole returns active employees with the role, ordered by id.
// Roles are compared case-insensitively.
func (r *Repository) ListActiveByRole(ctx context.Context, role string) ([]*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("employees").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Expr("UPPER(role) = ?", strings.ToUpper(strings.TrimSpace(role)))).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByRole - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByRole - query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveByRole - scan employee: %v", ErrScanRow, err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByRole - rows: %v", ErrScanRow, err)
	}

	return employees, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEmployee(row scanner) (*domain.Employee, error) {
	var e domain.Employee
	if err := row.Scan(
		&e.ID,
		&e.FirstName,
		&e.LastName,
		&e.Role,
		&e.IsActive,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}
