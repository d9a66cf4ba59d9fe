package hr

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository keeps HR records in memory for the demo backend and
// tests.
type MemoryRepository struct {
	mu         sync.RWMutex
	leaves     map[uuid.UUID]LeaveRequest
	attendance []AttendanceRecord
}

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{leaves: make(map[uuid.UUID]LeaveRequest)}
}

// CreateLeave stores the leave request.
func (r *MemoryRepository) CreateLeave(ctx context.Context, leave LeaveRequest) (LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaves[leave.ID] = leave
	return leave, nil
}

// ListLeaves returns every leave request ordered by start date.
func (r *MemoryRepository) ListLeaves(ctx context.Context) ([]LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]LeaveRequest, 0, len(r.leaves))
	for _, leave := range r.leaves {
		out = append(out, leave)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

// UpdateLeaveStatus transitions the stored request.
func (r *MemoryRepository) UpdateLeaveStatus(ctx context.Context, id uuid.UUID, status LeaveStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	leave, ok := r.leaves[id]
	if !ok {
		return ErrLeaveNotFound
	}
	leave.Status = status
	r.leaves[id] = leave
	return nil
}

// CreateAttendance stores the attendance record.
func (r *MemoryRepository) CreateAttendance(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attendance = append(r.attendance, record)
	return record, nil
}

// ListAttendance returns every attendance record ordered by date.
func (r *MemoryRepository) ListAttendance(ctx context.Context) ([]AttendanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]AttendanceRecord, len(r.attendance))
	copy(out, r.attendance)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
