package hr

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/amasa-erp/amasa-erp/internal/shared"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRequestLeaveDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	leave, err := svc.RequestLeave(ctx, CreateLeaveInput{
		Employee:  "María González",
		StartDate: day(2025, 7, 14),
	})
	require.NoError(t, err)
	require.Equal(t, LeaveVacaciones, leave.Type)
	require.Equal(t, LeavePendiente, leave.Status)
	require.Equal(t, 1, leave.Days())
}

func TestRequestLeaveRejectsInvertedSpan(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	_, err := svc.RequestLeave(ctx, CreateLeaveInput{
		Employee:  "María González",
		StartDate: day(2025, 7, 14),
		EndDate:   day(2025, 7, 10),
	})
	require.Error(t, err)
}

func TestLeaveDaysCountsApprovedOnly(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	approved, err := svc.RequestLeave(ctx, CreateLeaveInput{
		Employee:  "María González",
		Type:      LeaveVacaciones,
		StartDate: day(2025, 7, 14),
		EndDate:   day(2025, 7, 18),
	})
	require.NoError(t, err)
	require.NoError(t, svc.ApproveLeave(ctx, approved.ID))

	_, err = svc.RequestLeave(ctx, CreateLeaveInput{
		Employee:  "María González",
		Type:      LeavePermiso,
		StartDate: day(2025, 7, 21),
	})
	require.NoError(t, err)

	totals, err := svc.LeaveDays(ctx, LeaveFilter{
		Range: shared.NewDateRange(day(2025, 7, 1), day(2025, 7, 31)),
	})
	require.NoError(t, err)
	require.Equal(t, 5, totals["María González"])
}

func TestDecideLeaveOnce(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	leave, err := svc.RequestLeave(ctx, CreateLeaveInput{
		Employee:  "Pedro Soto",
		StartDate: day(2025, 8, 4),
	})
	require.NoError(t, err)
	require.NoError(t, svc.ApproveLeave(ctx, leave.ID))
	require.ErrorIs(t, svc.RejectLeave(ctx, leave.ID), ErrLeaveNotPending)
}

func TestRecordAttendanceRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	_, err := svc.RecordAttendance(ctx, "", day(2025, 7, 1), 8, 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "employee required")

	_, err = svc.RecordAttendance(ctx, "Pedro Soto", time.Time{}, 8, 0)
	require.Error(t, err)

	_, err = svc.RecordAttendance(ctx, "Pedro Soto", day(2025, 7, 1), -1, 0)
	require.Error(t, err)

	records, err := svc.repo.ListAttendance(ctx)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestAttendanceSummary(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	_, err := svc.RecordAttendance(ctx, "Pedro Soto", day(2025, 7, 1), 9, 1)
	require.NoError(t, err)
	_, err = svc.RecordAttendance(ctx, "Pedro Soto", day(2025, 7, 2), 8, 0)
	require.NoError(t, err)
	_, err = svc.RecordAttendance(ctx, "Pedro Soto", day(2025, 8, 1), 8, 0)
	require.NoError(t, err)

	hours, overtime, err := svc.AttendanceSummary(ctx, shared.NewDateRange(day(2025, 7, 1), day(2025, 7, 31)))
	require.NoError(t, err)
	require.Equal(t, 17.0, hours["Pedro Soto"])
	require.Equal(t, 1.0, overtime["Pedro Soto"])
}
