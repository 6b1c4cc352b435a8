package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	bookingRepo "github.com/dkarlovs/SBM-ScheduleService/internal/infra/storage/booking"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/types"
)

type fakeBookingRepo struct {
	existing  []*domain.Booking
	createErr error
	created   []*domain.Booking
	nextID    int64
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	out := *b
	out.ID = f.nextID
	f.created = append(f.created, &out)
	return &out, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.StaffBookingsFilter) ([]*domain.Booking, error) {
	return f.existing, nil
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

// Понедельник 6 июля 2026
var testDate = time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)
var testNow = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

func baseScheduleRepo(t *testing.T) *fakeScheduleRepo {
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

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		ClientID:       7,
		ProfessionalID: 1,
		StaffID:        100,
		ServiceID:      10,
		Date:           testDate,
		StartTime:      mustTime(t, "10:00"),
	}
}

func newTestUseCase(br *fakeBookingRepo, sr *fakeScheduleRepo) *UseCase {
	return NewUseCase(br, sr, fakeTxManager{}, &fixedTimeProvider{now: testNow}, nopLogger{})
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	br := &fakeBookingRepo{}
	uc := newTestUseCase(br, baseScheduleRepo(t))

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, domain.StatusPending, resp.Booking.Status)
	assert.Equal(t, mustTime(t, "10:00"), resp.Booking.StartTime)
	assert.Equal(t, mustTime(t, "11:00"), resp.Booking.EndTime)
	require.Len(t, br.created, 1)
}

func TestExecute_OverlapRejected(t *testing.T) {
	br := &fakeBookingRepo{
		existing: []*domain.Booking{
			{
				ID:        1,
				StaffID:   100,
				Date:      testDate,
				StartTime: mustTime(t, "10:30"),
				EndTime:   mustTime(t, "11:30"),
				Status:    domain.StatusConfirmed,
			},
		},
	}
	uc := newTestUseCase(br, baseScheduleRepo(t))

	_, err := uc.Execute(context.Background(), validRequest(t))
	require.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, br.created)
}

func TestExecute_TouchingBookingAllowed(t *testing.T) {
	// Существующее бронирование 09:00-10:00 лишь касается слота 10:00-11:00
	br := &fakeBookingRepo{
		existing: []*domain.Booking{
			{
				ID:        1,
				StaffID:   100,
				Date:      testDate,
				StartTime: mustTime(t, "09:00"),
				EndTime:   mustTime(t, "10:00"),
				Status:    domain.StatusConfirmed,
			},
		},
	}
	uc := newTestUseCase(br, baseScheduleRepo(t))

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.NotNil(t, resp.Booking)
}

func TestExecute_OffGridTimeRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, baseScheduleRepo(t))

	req := validRequest(t)
	// 10:30 не совпадает с сеткой 09:00, 10:00, 11:00...
	req.StartTime = mustTime(t, "10:30")

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ClosedDayRejected(t *testing.T) {
	sr := baseScheduleRepo(t)
	sr.exceptions = []*domain.ScheduleException{
		{ID: 1, ProfessionalID: 1, Date: testDate, IsClosed: true},
	}
	uc := newTestUseCase(&fakeBookingRepo{}, sr)

	_, err := uc.Execute(context.Background(), validRequest(t))
	require.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ConstraintViolationMapsToSlotTaken(t *testing.T) {
	// Конкурентная вставка: ограничение исключения в БД сработало,
	// хотя проверка пересечений ничего не нашла
	br := &fakeBookingRepo{createErr: bookingRepo.ErrSlotTaken}
	uc := newTestUseCase(br, baseScheduleRepo(t))

	_, err := uc.Execute(context.Background(), validRequest(t))
	require.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_IneligibleStaffRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, baseScheduleRepo(t))

	req := validRequest(t)
	req.StaffID = 999

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrStaffNotEligible)
}

func TestExecute_StaffHiddenByPlanRejected(t *testing.T) {
	sr := baseScheduleRepo(t)
	sr.staff = []*domain.StaffMember{
		{ID: 100, ProfessionalID: 1, Active: true},
		{ID: 101, ProfessionalID: 1, Active: true},
	}
	sr.limits = domain.PlanLimits{StaffVisibilityLimit: 1}
	uc := newTestUseCase(&fakeBookingRepo{}, sr)

	req := validRequest(t)
	req.StaffID = 101

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrStaffNotEligible)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, baseScheduleRepo(t))

	req := validRequest(t)
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_PastSlotOfTodayRejected(t *testing.T) {
	sr := baseScheduleRepo(t)
	// Запрос на сегодня (среда 1 июля), сейчас 12:00
	sr.weekly[0].DayOfWeek = int(testNow.Weekday())
	uc := newTestUseCase(&fakeBookingRepo{}, sr)

	req := validRequest(t)
	req.Date = testNow
	req.StartTime = mustTime(t, "11:00")

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_CurrentMinuteSlotOfTodayAllowed(t *testing.T) {
	sr := baseScheduleRepo(t)
	sr.weekly[0].DayOfWeek = int(testNow.Weekday())
	uc := newTestUseCase(&fakeBookingRepo{}, sr)

	req := validRequest(t)
	req.Date = testNow
	req.StartTime = mustTime(t, "12:00")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.NotNil(t, resp.Booking)
}
