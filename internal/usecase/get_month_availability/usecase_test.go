package get_month_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.StaffBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeScheduleRepo struct {
	service    *domain.Service
	staff      []*domain.StaffMember
	limits     domain.PlanLimits
	weekly     []*domain.WeeklySchedule
	exceptions []*domain.ScheduleException
}

func (f *fakeScheduleRepo) GetService(_ context.Context, _ int64) (*domain.Service, error) {
	return f.service, nil
}

func (f *fakeScheduleRepo) GetEligibleStaff(_ context.Context, _, _ int64) ([]*domain.StaffMember, error) {
	return f.staff, nil
}

func (f *fakeScheduleRepo) GetPlanLimits(_ context.Context, _ int64) (domain.PlanLimits, error) {
	return f.limits, nil
}

func (f *fakeScheduleRepo) GetWeeklySchedules(_ context.Context, _ []int64, _ *int) ([]*domain.WeeklySchedule, error) {
	return f.weekly, nil
}

func (f *fakeScheduleRepo) GetExceptions(_ context.Context, _ int64, _, _ time.Time) ([]*domain.ScheduleException, error) {
	return f.exceptions, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTime(t *testing.T, s string) types.TimeOfDay {
	t.Helper()
	tod, err := types.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

// Расписание: понедельник-пятница 09:00-17:00 для одного сотрудника
func weekdaysSchedule(t *testing.T, staffID int64) []*domain.WeeklySchedule {
	t.Helper()
	var ws []*domain.WeeklySchedule
	for dow := 1; dow <= 5; dow++ {
		ws = append(ws, &domain.WeeklySchedule{
			ID:        int64(dow),
			StaffID:   staffID,
			DayOfWeek: dow,
			StartTime: mustTime(t, "09:00"),
			EndTime:   mustTime(t, "17:00"),
			Active:    true,
		})
	}
	return ws
}

func baseRepo(t *testing.T) *fakeScheduleRepo {
	t.Helper()
	return &fakeScheduleRepo{
		service: &domain.Service{
			ID:              10,
			ProfessionalID:  1,
			DurationMinutes: 60,
			Active:          true,
		},
		staff: []*domain.StaffMember{
			{ID: 100, ProfessionalID: 1, Active: true},
		},
		weekly: weekdaysSchedule(t, 100),
	}
}

func availability(resp *Response) map[int]bool {
	out := make(map[int]bool, len(resp.Days))
	for _, d := range resp.Days {
		out[d.Date.Day()] = d.Available
	}
	return out
}

func TestExecute_WeekendsUnavailable(t *testing.T) {
	repo := baseRepo(t)
	// Смотрим на июль 2026 из июня: все дни в будущем
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	uc := NewUseCase(&fakeBookingRepo{}, repo, &fixedTimeProvider{now: now}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Year: 2026, Month: time.July})
	require.NoError(t, err)
	require.Len(t, resp.Days, 31)

	byDay := availability(resp)
	// 4-5 июля 2026 — суббота и воскресенье
	assert.False(t, byDay[4])
	assert.False(t, byDay[5])
	// 6 июля — понедельник
	assert.True(t, byDay[6])
	assert.True(t, byDay[10])
}

func TestExecute_PastDaysUnavailable(t *testing.T) {
	repo := baseRepo(t)
	// Середина месяца: 15 июля 2026, среда
	now := time.Date(2026, 7, 15, 10, 0, 0, 0, time.UTC)
	uc := NewUseCase(&fakeBookingRepo{}, repo, &fixedTimeProvider{now: now}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Year: 2026, Month: time.July})
	require.NoError(t, err)

	byDay := availability(resp)
	// Прошедшие будни недоступны
	assert.False(t, byDay[13])
	assert.False(t, byDay[14])
	// Сегодня слоты с 10:00 еще впереди
	assert.True(t, byDay[15])
	assert.True(t, byDay[16])
}

func TestExecute_HorizonCutsTail(t *testing.T) {
	repo := baseRepo(t)
	repo.limits = domain.PlanLimits{MaxAdvanceBookingDays: 7}
	// Среда 1 июля 2026
	now := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	uc := NewUseCase(&fakeBookingRepo{}, repo, &fixedTimeProvider{now: now}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Year: 2026, Month: time.July})
	require.NoError(t, err)

	byDay := availability(resp)
	// Горизонт: 1+7 = 8 июля включительно (среда)
	assert.True(t, byDay[8])
	assert.False(t, byDay[9])
	assert.False(t, byDay[31])
}

func TestExecute_FullyBookedDayUnavailable(t *testing.T) {
	repo := baseRepo(t)
	// Понедельник 6 июля занят полностью: 8 бронирований по часу
	day := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)
	var bookings []*domain.Booking
	for h := 9; h < 17; h++ {
		bookings = append(bookings, &domain.Booking{
			ID:        int64(h),
			StaffID:   100,
			Date:      day,
			StartTime: types.TimeOfDay(h * 60),
			EndTime:   types.TimeOfDay((h + 1) * 60),
			Status:    domain.StatusConfirmed,
		})
	}
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	uc := NewUseCase(&fakeBookingRepo{bookings: bookings}, repo, &fixedTimeProvider{now: now}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Year: 2026, Month: time.July})
	require.NoError(t, err)

	byDay := availability(resp)
	assert.False(t, byDay[6])
	// Соседний понедельник свободен
	assert.True(t, byDay[13])
}

func TestExecute_PartiallyBookedDayAvailable(t *testing.T) {
	repo := baseRepo(t)
	day := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)
	bookings := []*domain.Booking{
		{
			ID:        1,
			StaffID:   100,
			Date:      day,
			StartTime: mustTime(t, "09:00"),
			EndTime:   mustTime(t, "10:00"),
			Status:    domain.StatusPending,
		},
	}
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	uc := NewUseCase(&fakeBookingRepo{bookings: bookings}, repo, &fixedTimeProvider{now: now}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Year: 2026, Month: time.July})
	require.NoError(t, err)
	assert.True(t, availability(resp)[6])
}

func TestExecute_ClosedExceptionMakesDayUnavailable(t *testing.T) {
	repo := baseRepo(t)
	repo.exceptions = []*domain.ScheduleException{
		{ID: 1, ProfessionalID: 1, Date: time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC), IsClosed: true},
	}
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	uc := NewUseCase(&fakeBookingRepo{}, repo, &fixedTimeProvider{now: now}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Year: 2026, Month: time.July})
	require.NoError(t, err)

	byDay := availability(resp)
	assert.False(t, byDay[6])
	assert.True(t, byDay[7])
}

func TestExecute_NoStaffWholeMonthUnavailable(t *testing.T) {
	repo := baseRepo(t)
	repo.staff = nil
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	uc := NewUseCase(&fakeBookingRepo{}, repo, &fixedTimeProvider{now: now}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Year: 2026, Month: time.July})
	require.NoError(t, err)
	require.Len(t, resp.Days, 31)
	for _, d := range resp.Days {
		assert.False(t, d.Available)
	}
}

func TestExecute_InvalidMonthRejected(t *testing.T) {
	repo := baseRepo(t)
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	uc := NewUseCase(&fakeBookingRepo{}, repo, &fixedTimeProvider{now: now}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Year: 2026, Month: 13})
	require.ErrorIs(t, err, ErrInvalidInput)
}
