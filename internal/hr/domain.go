package hr

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amasa-erp/amasa-erp/internal/shared"
)

// LeaveType distinguishes the kinds of absence tracked for staff.
type LeaveType string

const (
	LeaveVacaciones    LeaveType = "Vacaciones"
	LeaveLicencia      LeaveType = "Licencia Médica"
	LeavePermiso       LeaveType = "Permiso"
	LeaveSinGoceSueldo LeaveType = "Sin Goce de Sueldo"
)

// LeaveStatus is the approval state of a leave request.
type LeaveStatus string

const (
	LeavePendiente LeaveStatus = "PENDIENTE"
	LeaveAprobada  LeaveStatus = "APROBADA"
	LeaveRechazada LeaveStatus = "RECHAZADA"
)

// LeaveRequest is a staff absence over an inclusive date span.
type LeaveRequest struct {
	ID        uuid.UUID
	Employee  string
	Type      LeaveType
	StartDate time.Time
	EndDate   time.Time
	Status    LeaveStatus
	CreatedAt time.Time
}

// DocumentDate implements shared.Dated using the leave start.
func (l LeaveRequest) DocumentDate() time.Time { return l.StartDate }

// Days returns the inclusive day count of the leave span.
func (l LeaveRequest) Days() int {
	if l.EndDate.Before(l.StartDate) {
		return 0
	}
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}

// AttendanceRecord is one employee-day of worked hours.
type AttendanceRecord struct {
	ID       uuid.UUID
	Employee string
	Date     time.Time
	Hours    float64
	Overtime float64
}

// DocumentDate implements shared.Dated.
func (a AttendanceRecord) DocumentDate() time.Time { return a.Date }

// CreateLeaveInput groups fields for registering a leave request.
type CreateLeaveInput struct {
	Employee  string
	Type      LeaveType
	StartDate time.Time
	EndDate   time.Time
}

// Validate ensures the input is coherent.
func (in CreateLeaveInput) Validate() error {
	if in.Employee == "" {
		return errors.New("hr: employee required")
	}
	if in.StartDate.IsZero() {
		return errors.New("hr: start date required")
	}
	if !in.EndDate.IsZero() && in.EndDate.Before(in.StartDate) {
		return errors.New("hr: end date precedes start date")
	}
	return nil
}

var (
	// ErrLeaveNotFound indicates the leave request could not be loaded.
	ErrLeaveNotFound = fmt.Errorf("hr: leave request: %w", shared.ErrNotFound)
	// ErrLeaveNotPending indicates a decision on an already decided request.
	ErrLeaveNotPending = errors.New("hr: leave request already decided")
)
