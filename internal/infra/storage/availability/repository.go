package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
	"github.com/m04kA/SMC-ServiceScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-ServiceScheduler/pkg/psqlbuilder"
)

const table = "availability_entries"

var columns = []string{
	"id",
	"employee_id",
	"day_of_week",
	"specific_date",
	"time_slot",
	"created_at",
}

// Repository weekly and date-specific availability of employees
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockEmployee takes a transaction-scoped advisory lock keyed by the employee id.
// Concurrent schedule edits of the same employee queue behind it until commit.
func (r *Repository) LockEmployee(ctx context.Context, employeeID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNotInTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(?)", employeeID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockEmployee - build query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LockEmployee - employee_id=%d: %v", ErrExecQuery, employeeID, err)
	}
	return nil
}

// HasSchedule returns true if the employee has at least one weekly entry
func (r *Repository) HasSchedule(ctx context.Context, employeeID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	sub, args, err := psqlbuilder.Select("1").
		From(table).
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Eq{"specific_date": nil}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasSchedule - build query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, "SELECT EXISTS("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: HasSchedule - scan: %v", ErrScanRow, err)
	}
	return exists, nil
}

// GetWeekly returns all weekly entries of the employee
func (r *Repository) GetWeekly(ctx context.Context, employeeID int64) ([]*domain.AvailabilityEntry, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Eq{"specific_date": nil}).
		OrderBy("day_of_week", "time_slot")

	return r.list(ctx, "GetWeekly", builder)
}

// GetWeeklyByDay returns the weekly entries of one weekday
func (r *Repository) GetWeeklyByDay(ctx context.Context, employeeID int64, day domain.WeekDay) ([]*domain.AvailabilityEntry, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Eq{"specific_date": nil}).
		Where(squirrel.Eq{"day_of_week": string(day)})

	return r.list(ctx, "GetWeeklyByDay", builder)
}

// GetOverrides returns the date-specific entries of the employee for date
func (r *Repository) GetOverrides(ctx context.Context, employeeID int64, date time.Time) ([]*domain.AvailabilityEntry, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Eq{"specific_date": date.Format(domain.DateFormat)})

	return r.list(ctx, "GetOverrides", builder)
}

// GetOverrideDatesFrom returns the distinct dates on or after from that carry overrides
func (r *Repository) GetOverrideDatesFrom(ctx context.Context, employeeID int64, from time.Time) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT to_char(specific_date, 'YYYY-MM-DD')").
		From(table).
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.NotEq{"specific_date": nil}).
		Where(squirrel.GtOrEq{"specific_date": from.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverrideDatesFrom - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverrideDatesFrom - query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]string, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: GetOverrideDatesFrom - scan: %v", ErrScanRow, err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// ReplaceWeekly deletes every weekly entry of the employee and inserts entries instead.
// Must run inside the caller's transaction to be atomic.
func (r *Repository) ReplaceWeekly(ctx context.Context, employeeID int64, entries []*domain.AvailabilityEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Eq{"specific_date": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeekly - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWeekly - delete: %v", ErrExecQuery, err)
	}

	if len(entries) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert(table).Columns("employee_id", "day_of_week", "time_slot")
	for _, e := range entries {
		if e.DayOfWeek == nil {
			continue
		}
		insert = insert.Values(employeeID, string(*e.DayOfWeek), string(e.TimeSlot))
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeekly - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWeekly - insert: %v", ErrExecQuery, err)
	}
	return nil
}

// ReplaceOverrides replaces the employee's override entries for one date
func (r *Repository) ReplaceOverrides(ctx context.Context, employeeID int64, date time.Time, slots []domain.TimeSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	day := date.Format(domain.DateFormat)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Eq{"specific_date": day}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceOverrides - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceOverrides - delete: %v", ErrExecQuery, err)
	}

	if len(slots) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert(table).Columns("employee_id", "specific_date", "time_slot")
	for _, s := range slots {
		insert = insert.Values(employeeID, day, string(s))
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceOverrides - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceOverrides - insert: %v", ErrExecQuery, err)
	}
	return nil
}

// DeleteOverridesBefore removes override entries dated strictly before the given day
func (r *Repository) DeleteOverridesBefore(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.NotEq{"specific_date": nil}).
		Where(squirrel.Lt{"specific_date": before.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOverridesBefore - build query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOverridesBefore - delete: %v", ErrExecQuery, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOverridesBefore - rows affected: %v", ErrExecQuery, err)
	}
	return n, nil
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.AvailabilityEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	entries := make([]*domain.AvailabilityEntry, 0)
	for rows.Next() {
		var (
			e            domain.AvailabilityEntry
			dayOfWeek    sql.NullString
			specificDate sql.NullTime
		)
		if err := rows.Scan(&e.ID, &e.EmployeeID, &dayOfWeek, &specificDate, &e.TimeSlot, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %s - scan entry: %v", ErrScanRow, op, err)
		}
		if dayOfWeek.Valid {
			d := domain.WeekDay(dayOfWeek.String)
			e.DayOfWeek = &d
		}
		if specificDate.Valid {
			t := specificDate.Time
			e.SpecificDate = &t
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows: %v", ErrScanRow, op, err)
	}

	return entries, nil
}
