package cellar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
	"github.com/m04kA/SMC-ServiceScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-ServiceScheduler/pkg/psqlbuilder"
)

type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Cellar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("cellars").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Cellar
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.OwnerID,
		&c.Name,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCellarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan cellar: %v", ErrScanRow, err)
	}

	return &c, nil
}
