package job

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

// Repository read access to the job catalog
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByName looks up an active job by its catalog name, case-insensitively
func (r *Repository) GetByName(ctx context.Context, name string) (*domain.Job, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"job_type",
		"default_duration_minutes",
		"hourly_rate",
		"is_active",
	).
		From("jobs").
		Where(squirrel.Expr("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByName - build select query: %v", ErrBuildQuery, err)
	}

	var j domain.Job
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&j.ID,
		&j.Name,
		&j.Type,
		&j.DefaultDurationMinutes,
		&j.HourlyRate,
		&j.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByName - scan job: %v", ErrScanRow, err)
	}

	return &j, nil
}
