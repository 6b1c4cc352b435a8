package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	scheduleRepo "github.com/dkarlovs/SBM-ScheduleService/internal/infra/storage/schedule"
	"github.com/dkarlovs/SBM-ScheduleService/internal/service/schedule/models"
)

type fakeScheduleRepo struct {
	staff      map[int64]*domain.StaffMember
	weekly     []*domain.WeeklySchedule
	exceptions []*domain.ScheduleException

	replaced map[int64][]*domain.WeeklySchedule
	deleted  []int64
}

func newFakeRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		staff:    make(map[int64]*domain.StaffMember),
		replaced: make(map[int64][]*domain.WeeklySchedule),
	}
}

func (f *fakeScheduleRepo) GetStaffMember(_ context.Context, staffID int64) (*domain.StaffMember, error) {
	m, ok := f.staff[staffID]
	if !ok {
		return nil, scheduleRepo.ErrStaffNotFound
	}
	return m, nil
}

func (f *fakeScheduleRepo) GetWeeklySchedules(_ context.Context, _ []int64, _ *int) ([]*domain.WeeklySchedule, error) {
	return f.weekly, nil
}

func (f *fakeScheduleRepo) ReplaceWeeklySchedule(_ context.Context, staffID int64, rows []*domain.WeeklySchedule) error {
	f.replaced[staffID] = rows
	return nil
}

func (f *fakeScheduleRepo) GetExceptions(_ context.Context, _ int64, _, _ time.Time) ([]*domain.ScheduleException, error) {
	return f.exceptions, nil
}

func (f *fakeScheduleRepo) DeleteException(_ context.Context, id, _ int64) error {
	for _, exc := range f.exceptions {
		if exc.ID == id {
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return scheduleRepo.ErrExceptionNotFound
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(repo *fakeScheduleRepo) *Service {
	return NewService(repo, fakeTxManager{}, nopLogger{})
}

func validReplaceRequest() *models.ReplaceWeeklyScheduleRequest {
	return &models.ReplaceWeeklyScheduleRequest{
		UserID:  1,
		StaffID: 100,
		Rows: []models.WeeklyScheduleRow{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00"},
			{DayOfWeek: 1, StartTime: "14:00", EndTime: "18:00"},
			{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
		},
	}
}

func TestReplaceWeeklySchedule_OK(t *testing.T) {
	repo := newFakeRepo()
	repo.staff[100] = &domain.StaffMember{ID: 100, ProfessionalID: 1, Active: true}
	svc := newService(repo)

	err := svc.ReplaceWeeklySchedule(context.Background(), validReplaceRequest())
	require.NoError(t, err)
	require.Len(t, repo.replaced[100], 3)
	assert.Equal(t, "09:00", repo.replaced[100][0].StartTime.String())
}

func TestReplaceWeeklySchedule_ForeignStaffRejected(t *testing.T) {
	repo := newFakeRepo()
	repo.staff[100] = &domain.StaffMember{ID: 100, ProfessionalID: 2, Active: true}
	svc := newService(repo)

	err := svc.ReplaceWeeklySchedule(context.Background(), validReplaceRequest())
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestReplaceWeeklySchedule_UnknownStaff(t *testing.T) {
	svc := newService(newFakeRepo())

	err := svc.ReplaceWeeklySchedule(context.Background(), validReplaceRequest())
	require.ErrorIs(t, err, ErrStaffNotFound)
}

func TestReplaceWeeklySchedule_InvalidTimeString(t *testing.T) {
	repo := newFakeRepo()
	repo.staff[100] = &domain.StaffMember{ID: 100, ProfessionalID: 1, Active: true}
	svc := newService(repo)

	req := validReplaceRequest()
	req.Rows[0].StartTime = "9am"

	err := svc.ReplaceWeeklySchedule(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.replaced)
}

func TestReplaceWeeklySchedule_InvertedRangeRejected(t *testing.T) {
	repo := newFakeRepo()
	repo.staff[100] = &domain.StaffMember{ID: 100, ProfessionalID: 1, Active: true}
	svc := newService(repo)

	req := validReplaceRequest()
	req.Rows[0].StartTime = "13:00"
	req.Rows[0].EndTime = "09:00"

	err := svc.ReplaceWeeklySchedule(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestReplaceWeeklySchedule_OverlappingWindowsRejected(t *testing.T) {
	repo := newFakeRepo()
	repo.staff[100] = &domain.StaffMember{ID: 100, ProfessionalID: 1, Active: true}
	svc := newService(repo)

	req := validReplaceRequest()
	// Второе окно понедельника начинается до конца первого
	req.Rows[1].StartTime = "12:00"

	err := svc.ReplaceWeeklySchedule(context.Background(), req)
	require.ErrorIs(t, err, ErrOverlappingRanges)
}

func TestReplaceWeeklySchedule_TouchingWindowsAllowed(t *testing.T) {
	repo := newFakeRepo()
	repo.staff[100] = &domain.StaffMember{ID: 100, ProfessionalID: 1, Active: true}
	svc := newService(repo)

	req := validReplaceRequest()
	// 09:00-13:00 и 13:00-18:00 касаются, но не пересекаются
	req.Rows[1].StartTime = "13:00"

	err := svc.ReplaceWeeklySchedule(context.Background(), req)
	require.NoError(t, err)
}

func TestDeleteException_OK(t *testing.T) {
	repo := newFakeRepo()
	repo.exceptions = []*domain.ScheduleException{
		{ID: 5, ProfessionalID: 1, Date: time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC), IsClosed: true},
	}
	svc := newService(repo)

	err := svc.DeleteException(context.Background(), 5, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, repo.deleted)
}

func TestDeleteException_NotFound(t *testing.T) {
	svc := newService(newFakeRepo())

	err := svc.DeleteException(context.Background(), 5, 1, 1)
	require.ErrorIs(t, err, ErrExceptionNotFound)
}

func TestDeleteException_ForeignProfessionalRejected(t *testing.T) {
	svc := newService(newFakeRepo())

	err := svc.DeleteException(context.Background(), 5, 1, 2)
	require.ErrorIs(t, err, ErrAccessDenied)
}
