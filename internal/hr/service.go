package hr

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/amasa-erp/amasa-erp/internal/shared"
)

// RepositoryPort defines data access methods for HR.
type RepositoryPort interface {
	CreateLeave(ctx context.Context, leave LeaveRequest) (LeaveRequest, error)
	ListLeaves(ctx context.Context) ([]LeaveRequest, error)
	UpdateLeaveStatus(ctx context.Context, id uuid.UUID, status LeaveStatus) error
	CreateAttendance(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)
	ListAttendance(ctx context.Context) ([]AttendanceRecord, error)
}

// LeaveFilter narrows leave listings. Zero fields match everything.
type LeaveFilter struct {
	Range    shared.DateRange
	Employee string
	Type     LeaveType
	Status   LeaveStatus
}

// Service handles HR business logic.
type Service struct {
	repo RepositoryPort
	now  func() time.Time
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithNow overrides the clock for deterministic tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// RequestLeave validates and stores a pending leave request.
func (s *Service) RequestLeave(ctx context.Context, input CreateLeaveInput) (LeaveRequest, error) {
	if err := input.Validate(); err != nil {
		return LeaveRequest{}, err
	}
	end := input.EndDate
	if end.IsZero() {
		end = input.StartDate
	}
	leaveType := input.Type
	if leaveType == "" {
		leaveType = LeaveVacaciones
	}
	leave := LeaveRequest{
		ID:        uuid.New(),
		Employee:  input.Employee,
		Type:      leaveType,
		StartDate: shared.Day(input.StartDate),
		EndDate:   shared.Day(end),
		Status:    LeavePendiente,
		CreatedAt: s.now(),
	}
	return s.repo.CreateLeave(ctx, leave)
}

// ListLeaves returns leave requests matching the filter.
func (s *Service) ListLeaves(ctx context.Context, f LeaveFilter) ([]LeaveRequest, error) {
	leaves, err := s.repo.ListLeaves(ctx)
	if err != nil {
		return nil, err
	}
	leaves = shared.ByRange(leaves, f.Range)
	var preds []func(LeaveRequest) bool
	if f.Employee != "" {
		preds = append(preds, func(l LeaveRequest) bool { return l.Employee == f.Employee })
	}
	if f.Type != "" {
		preds = append(preds, func(l LeaveRequest) bool { return l.Type == f.Type })
	}
	if f.Status != "" {
		preds = append(preds, func(l LeaveRequest) bool { return l.Status == f.Status })
	}
	return shared.Where(leaves, preds...), nil
}

// LeaveDays sums approved leave days per employee over the filter.
func (s *Service) LeaveDays(ctx context.Context, f LeaveFilter) (map[string]int, error) {
	f.Status = LeaveAprobada
	leaves, err := s.ListLeaves(ctx, f)
	if err != nil {
		return nil, err
	}
	totals := make(map[string]int)
	for _, leave := range leaves {
		totals[leave.Employee] += leave.Days()
	}
	return totals, nil
}

// ApproveLeave grants a pending request.
func (s *Service) ApproveLeave(ctx context.Context, id uuid.UUID) error {
	return s.decide(ctx, id, LeaveAprobada)
}

// RejectLeave denies a pending request.
func (s *Service) RejectLeave(ctx context.Context, id uuid.UUID) error {
	return s.decide(ctx, id, LeaveRechazada)
}

func (s *Service) decide(ctx context.Context, id uuid.UUID, status LeaveStatus) error {
	leaves, err := s.repo.ListLeaves(ctx)
	if err != nil {
		return err
	}
	for _, leave := range leaves {
		if leave.ID != id {
			continue
		}
		if leave.Status != LeavePendiente {
			return ErrLeaveNotPending
		}
		return s.repo.UpdateLeaveStatus(ctx, id, status)
	}
	return ErrLeaveNotFound
}

// RecordAttendance stores one employee-day of worked hours.
func (s *Service) RecordAttendance(ctx context.Context, employee string, date time.Time, hours, overtime float64) (AttendanceRecord, error) {
	if employee == "" {
		return AttendanceRecord{}, errors.New("hr: employee required")
	}
	if date.IsZero() {
		return AttendanceRecord{}, errors.New("hr: date required")
	}
	if hours < 0 || overtime < 0 {
		return AttendanceRecord{}, errors.New("hr: hours cannot be negative")
	}
	record := AttendanceRecord{
		ID:       uuid.New(),
		Employee: employee,
		Date:     shared.Day(date),
		Hours:    hours,
		Overtime: overtime,
	}
	return s.repo.CreateAttendance(ctx, record)
}

// AttendanceSummary sums worked and overtime hours per employee over
// the range.
func (s *Service) AttendanceSummary(ctx context.Context, r shared.DateRange) (map[string]float64, map[string]float64, error) {
	records, err := s.repo.ListAttendance(ctx)
	if err != nil {
		return nil, nil, err
	}
	hours := make(map[string]float64)
	overtime := make(map[string]float64)
	for _, record := range shared.ByRange(records, r) {
		hours[record.Employee] += record.Hours
		overtime[record.Employee] += record.Overtime
	}
	return hours, overtime, nil
}
