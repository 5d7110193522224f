package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
	"github.com/m04kA/SMC-ServiceScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-ServiceScheduler/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"technician_id",
	"customer_id",
	"cellar_id",
	"job_name",
	"job_type",
	"duration_minutes",
	"start_at",
	"street",
	"city",
	"province",
	"postal_code",
	"status",
	"created_at",
	"updated_at",
}

// Repository read access to appointments for the rule engine.
// Appointments are written by the booking flow, never here.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTechnicianAndDate returns the technician's appointments starting in [from, to)
// with one of the statuses. Inside a transaction the rows are locked FOR UPDATE.
func (r *Repository) GetByTechnicianAndDate(
	ctx context.Context,
	technicianID int64,
	from, to time.Time,
	statuses []domain.AppointmentStatus,
) ([]*domain.Appointment, error) {
	builder := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"technician_id": technicianID}).
		Where(squirrel.GtOrEq{"start_at": from}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Eq{"status": statusStrings(statuses)}).
		OrderBy("start_at ASC")

	return r.list(ctx, "GetByTechnicianAndDate", builder)
}

// GetByAddressAndDate returns appointments at the postal code starting in [from, to).
// Street and city are compared by the caller on the normalized address key.
func (r *Repository) GetByAddressAndDate(
	ctx context.Context,
	address domain.AddressKey,
	from, to time.Time,
	statuses []domain.AppointmentStatus,
) ([]*domain.Appointment, error) {
	builder := r.byAddress(address, from, to, statuses)
	return r.list(ctx, "GetByAddressAndDate", builder)
}

// GetByJobTypeAddressAndDate same as GetByAddressAndDate restricted to one job type
func (r *Repository) GetByJobTypeAddressAndDate(
	ctx context.Context,
	jobType domain.JobType,
	address domain.AddressKey,
	from, to time.Time,
	statuses []domain.AppointmentStatus,
) ([]*domain.Appointment, error) {
	builder := r.byAddress(address, from, to, statuses).
		Where(squirrel.Eq{"job_type": string(jobType)})
	return r.list(ctx, "GetByJobTypeAddressAndDate", builder)
}

// GetScheduledByTechnicianFrom returns the technician's SCHEDULED appointments starting at or after from
func (r *Repository) GetScheduledByTechnicianFrom(ctx context.Context, technicianID int64, from time.Time) ([]*domain.Appointment, error) {
	builder := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"technician_id": technicianID}).
		Where(squirrel.GtOrEq{"start_at": from}).
		Where(squirrel.Eq{"status": string(domain.StatusScheduled)}).
		OrderBy("start_at ASC")

	return r.list(ctx, "GetScheduledByTechnicianFrom", builder)
}

func (r *Repository) byAddress(
	address domain.AddressKey,
	from, to time.Time,
	statuses []domain.AppointmentStatus,
) squirrel.SelectBuilder {
	postal := address.Normalize().PostalCode
	return psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Expr("UPPER(REPLACE(postal_code, ' ', '')) = ?", strings.ToUpper(postal))).
		Where(squirrel.GtOrEq{"start_at": from}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Eq{"status": statusStrings(statuses)}).
		OrderBy("start_at ASC")
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// same-day reads inside a booking transaction lock the rows they decide on
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	appointments, err := scanAppointments(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - %v", ErrScanRow, op, err)
	}
	return appointments, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		var (
			a        domain.Appointment
			cellarID sql.NullInt64
		)
		if err := rows.Scan(
			&a.ID,
			&a.TechnicianID,
			&a.CustomerID,
			&cellarID,
			&a.JobName,
			&a.JobType,
			&a.DurationMinutes,
			&a.StartAt,
			&a.Address.Street,
			&a.Address.City,
			&a.Address.Province,
			&a.Address.PostalCode,
			&a.Status,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if cellarID.Valid {
			id := cellarID.Int64
			a.CellarID = &id
		}
		appointments = append(appointments, &a)
	}
	return appointments, rows.Err()
}

func statusStrings(statuses []domain.AppointmentStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
