package get_day_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/ptr"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.StaffBookingsFilter) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings, nil
}

type fakeScheduleRepo struct {
	service    *domain.Service
	serviceErr error
	staff      []*domain.StaffMember
	limits     domain.PlanLimits
	limitsErr  error
	weekly     []*domain.WeeklySchedule
	exceptions []*domain.ScheduleException
}

func (f *fakeScheduleRepo) GetService(_ context.Context, _ int64) (*domain.Service, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	return f.service, nil
}

func (f *fakeScheduleRepo) GetEligibleStaff(_ context.Context, _, _ int64) ([]*domain.StaffMember, error) {
	return f.staff, nil
}

func (f *fakeScheduleRepo) GetPlanLimits(_ context.Context, _ int64) (domain.PlanLimits, error) {
	if f.limitsErr != nil {
		return domain.PlanLimits{}, f.limitsErr
	}
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

func riga(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Riga")
	require.NoError(t, err)
	return loc
}

// Понедельник 6 июля 2026
var testDate = time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)

func baseScheduleRepo(t *testing.T) *fakeScheduleRepo {
	t.Helper()
	return &fakeScheduleRepo{
		service: &domain.Service{
			ID:              10,
			ProfessionalID:  1,
			Name:            "Haircut",
			DurationMinutes: 60,
			Active:          true,
		},
		staff: []*domain.StaffMember{
			{ID: 100, ProfessionalID: 1, Name: "Anna", Active: true},
		},
		weekly: []*domain.WeeklySchedule{
			{
				ID:        1,
				StaffID:   100,
				DayOfWeek: int(testDate.Weekday()),
				StartTime: mustTime(t, "09:00"),
				EndTime:   mustTime(t, "17:00"),
				Active:    true,
			},
		},
	}
}

func newUseCase(bookingRepo *fakeBookingRepo, scheduleRepo *fakeScheduleRepo, now time.Time) *UseCase {
	return NewUseCase(bookingRepo, scheduleRepo, &fixedTimeProvider{now: now}, nil, nopLogger{})
}

func TestExecute_FullDayOfFreeSlots(t *testing.T) {
	scheduleRepo := baseScheduleRepo(t)
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, riga(t))
	uc := newUseCase(&fakeBookingRepo{}, scheduleRepo, now)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)

	slots := resp.Staff[0].Slots
	require.Len(t, slots, 8)
	assert.Equal(t, mustTime(t, "09:00"), slots[0].StartTime)
	assert.Equal(t, mustTime(t, "16:00"), slots[7].StartTime)
	for _, s := range slots {
		assert.False(t, s.IsBooked, "slot %s should be free", s.StartTime)
	}
}

func TestExecute_PartialSlotAtRangeEndIsDropped(t *testing.T) {
	scheduleRepo := baseScheduleRepo(t)
	// Окно 09:00-10:30 при длительности 60 минут дает единственный слот 09:00
	scheduleRepo.weekly[0].EndTime = mustTime(t, "10:30")
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, riga(t))
	uc := newUseCase(&fakeBookingRepo{}, scheduleRepo, now)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)
	require.Len(t, resp.Staff[0].Slots, 1)
	assert.Equal(t, mustTime(t, "09:00"), resp.Staff[0].Slots[0].StartTime)
}

func TestExecute_OverlappingBookingMarksSlot(t *testing.T) {
	scheduleRepo := baseScheduleRepo(t)
	bookingRepo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{
				ID:        500,
				StaffID:   100,
				Date:      testDate,
				StartTime: mustTime(t, "10:00"),
				EndTime:   mustTime(t, "11:00"),
				Status:    domain.StatusConfirmed,
			},
		},
	}
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, riga(t))
	uc := newUseCase(bookingRepo, scheduleRepo, now)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)

	booked := map[string]bool{}
	for _, s := range resp.Staff[0].Slots {
		booked[s.StartTime.String()] = s.IsBooked
	}
	assert.True(t, booked["10:00"])
	// Соседние слоты лишь касаются бронирования и остаются свободными
	assert.False(t, booked["09:00"])
	assert.False(t, booked["11:00"])
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	scheduleRepo := baseScheduleRepo(t)
	bookingRepo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{
				ID:        500,
				StaffID:   100,
				Date:      testDate,
				StartTime: mustTime(t, "10:00"),
				EndTime:   mustTime(t, "11:00"),
				Status:    domain.StatusCanceled,
			},
		},
	}
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, riga(t))
	uc := newUseCase(bookingRepo, scheduleRepo, now)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	for _, s := range resp.Staff[0].Slots {
		assert.False(t, s.IsBooked)
	}
}

func TestExecute_ClosedExceptionExcludesStaff(t *testing.T) {
	scheduleRepo := baseScheduleRepo(t)
	scheduleRepo.exceptions = []*domain.ScheduleException{
		{ID: 1, ProfessionalID: 1, Date: testDate, IsClosed: true},
	}
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, riga(t))
	uc := newUseCase(&fakeBookingRepo{}, scheduleRepo, now)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Staff)
}

func TestExecute_ExceptionRangesOverrideWeekly(t *testing.T) {
	scheduleRepo := baseScheduleRepo(t)
	scheduleRepo.exceptions = []*domain.ScheduleException{
		{
			ID:             1,
			ProfessionalID: 1,
			Date:           testDate,
			TimeRanges: []domain.TimeRange{
				{Start: mustTime(t, "10:00"), End: mustTime(t, "12:00")},
			},
		},
	}
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, riga(t))
	uc := newUseCase(&fakeBookingRepo{}, scheduleRepo, now)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)
	require.Len(t, resp.Staff[0].Slots, 2)
	assert.Equal(t, mustTime(t, "10:00"), resp.Staff[0].Slots[0].StartTime)
	assert.Equal(t, mustTime(t, "11:00"), resp.Staff[0].Slots[1].StartTime)
}

func TestExecute_StaffScopedExceptionBeatsWide(t *testing.T) {
	scheduleRepo := baseScheduleRepo(t)
	scheduleRepo.exceptions = []*domain.ScheduleException{
		{ID: 1, ProfessionalID: 1, Date: testDate, IsClosed: true},
		{
			ID:             2,
			ProfessionalID: 1,
			StaffID:        ptr.Ptr(int64(100)),
			Date:           testDate,
			TimeRanges: []domain.TimeRange{
				{Start: mustTime(t, "14:00"), End: mustTime(t, "15:00")},
			},
		},
	}
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, riga(t))
	uc := newUseCase(&fakeBookingRepo{}, scheduleRepo, now)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)
	require.Len(t, resp.Staff[0].Slots, 1)
	assert.Equal(t, mustTime(t, "14:00"), resp.Staff[0].Slots[0].StartTime)
}

func TestExecute_SameDayPastSlotsAreBooked(t *testing.T) {
	scheduleRepo := baseScheduleRepo(t)
	// Сейчас 11:00 того же дня: слоты 09:00 и 10:00 прошли,
	// слот ровно в 11:00 еще доступен (строгое сравнение)
	now := time.Date(2026, 7, 6, 11, 0, 0, 0, riga(t))
	uc := newUseCase(&fakeBookingRepo{}, scheduleRepo, now)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)

	byStart := map[string]bool{}
	for _, s := range resp.Staff[0].Slots {
		byStart[s.StartTime.String()] = s.IsBooked
	}
	assert.True(t, byStart["09:00"])
	assert.True(t, byStart["10:00"])
	assert.False(t, byStart["11:00"])
	assert.False(t, byStart["16:00"])
}

func TestExecute_PastDateRejected(t *testing.T) {
	scheduleRepo := baseScheduleRepo(t)
	now := time.Date(2026, 7, 10, 9, 0, 0, 0, riga(t))
	uc := newUseCase(&fakeBookingRepo{}, scheduleRepo, now)

	_, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Date: testDate})
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateBeyondPlanHorizonRejected(t *testing.T) {
	scheduleRepo := baseScheduleRepo(t)
	scheduleRepo.limits = domain.PlanLimits{MaxAdvanceBookingDays: 3}
	now := time.Date(2026, 7, 1, 9, 0, 0, 0, riga(t))
	uc := newUseCase(&fakeBookingRepo{}, scheduleRepo, now)

	_, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Date: testDate})
	require.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_StaffVisibilityLimitApplied(t *testing.T) {
	scheduleRepo := baseScheduleRepo(t)
	scheduleRepo.staff = []*domain.StaffMember{
		{ID: 100, ProfessionalID: 1, Name: "Anna", Active: true},
		{ID: 101, ProfessionalID: 1, Name: "Mara", Active: true},
	}
	scheduleRepo.weekly = append(scheduleRepo.weekly, &domain.WeeklySchedule{
		ID:        2,
		StaffID:   101,
		DayOfWeek: int(testDate.Weekday()),
		StartTime: mustTime(t, "09:00"),
		EndTime:   mustTime(t, "17:00"),
		Active:    true,
	})
	scheduleRepo.limits = domain.PlanLimits{StaffVisibilityLimit: 1}
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, riga(t))
	uc := newUseCase(&fakeBookingRepo{}, scheduleRepo, now)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)
	assert.Equal(t, int64(100), resp.Staff[0].StaffID)
}

func TestExecute_InactiveServiceRejected(t *testing.T) {
	scheduleRepo := baseScheduleRepo(t)
	scheduleRepo.service.Active = false
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, riga(t))
	uc := newUseCase(&fakeBookingRepo{}, scheduleRepo, now)

	_, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Date: testDate})
	require.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecute_ForeignServiceRejected(t *testing.T) {
	scheduleRepo := baseScheduleRepo(t)
	scheduleRepo.service.ProfessionalID = 2
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, riga(t))
	uc := newUseCase(&fakeBookingRepo{}, scheduleRepo, now)

	_, err := uc.Execute(context.Background(), &Request{ProfessionalID: 1, ServiceID: 10, Date: testDate})
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGenerateSlotStarts_DuplicateStartsCollapse(t *testing.T) {
	ranges := []domain.TimeRange{
		{Start: mustTime(t, "09:00"), End: mustTime(t, "11:00")},
		{Start: mustTime(t, "10:00"), End: mustTime(t, "12:00")},
	}

	starts := generateSlotStarts(ranges, 60)

	require.Len(t, starts, 3)
	assert.Equal(t, mustTime(t, "09:00"), starts[0])
	assert.Equal(t, mustTime(t, "10:00"), starts[1])
	assert.Equal(t, mustTime(t, "11:00"), starts[2])
}

func TestGenerateSlotStarts_SortedAcrossRanges(t *testing.T) {
	ranges := []domain.TimeRange{
		{Start: mustTime(t, "14:00"), End: mustTime(t, "16:00")},
		{Start: mustTime(t, "09:00"), End: mustTime(t, "10:00")},
	}

	starts := generateSlotStarts(ranges, 60)

	require.Len(t, starts, 3)
	assert.Equal(t, mustTime(t, "09:00"), starts[0])
	assert.Equal(t, mustTime(t, "14:00"), starts[1])
	assert.Equal(t, mustTime(t, "15:00"), starts[2])
}
