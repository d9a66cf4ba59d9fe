package hr

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for HR.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateLeave inserts a leave request.
func (r *Repository) CreateLeave(ctx context.Context, leave LeaveRequest) (LeaveRequest, error) {
	const query = `
		INSERT INTO hr_leave_requests (id, employee, leave_type, start_date, end_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		leave.ID, leave.Employee, leave.Type, leave.StartDate, leave.EndDate, leave.Status, leave.CreatedAt)
	if err != nil {
		return LeaveRequest{}, err
	}
	return leave, nil
}

// ListLeaves loads every leave request ordered by start date.
func (r *Repository) ListLeaves(ctx context.Context) ([]LeaveRequest, error) {
	const query = `
		SELECT id, employee, leave_type, start_date, end_date, status, created_at
		FROM hr_leave_requests
		ORDER BY start_date, employee`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaveRequest
	for rows.Next() {
		var leave LeaveRequest
		if err := rows.Scan(&leave.ID, &leave.Employee, &leave.Type,
			&leave.StartDate, &leave.EndDate, &leave.Status, &leave.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, leave)
	}
	return out, rows.Err()
}

// UpdateLeaveStatus transitions the stored request.
func (r *Repository) UpdateLeaveStatus(ctx context.Context, id uuid.UUID, status LeaveStatus) error {
	const query = `UPDATE hr_leave_requests SET status = $2 WHERE id = $1 RETURNING id`
	var got uuid.UUID
	if err := r.pool.QueryRow(ctx, query, id, status).Scan(&got); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrLeaveNotFound
		}
		return err
	}
	return nil
}

// CreateAttendance inserts an attendance record.
func (r *Repository) CreateAttendance(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error) {
	const query = `
		INSERT INTO hr_attendance (id, employee, work_date, hours, overtime)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query,
		record.ID, record.Employee, record.Date, record.Hours, record.Overtime)
	if err != nil {
		return AttendanceRecord{}, err
	}
	return record, nil
}

// ListAttendance loads every attendance record ordered by date.
func (r *Repository) ListAttendance(ctx context.Context) ([]AttendanceRecord, error) {
	const query = `
		SELECT id, employee, work_date, hours, overtime
		FROM hr_attendance
		ORDER BY work_date, employee`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AttendanceRecord
	for rows.Next() {
		var record AttendanceRecord
		if err := rows.Scan(&record.ID, &record.Employee, &record.Date,
			&record.Hours, &record.Overtime); err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}
