package run_auto_completion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	"github.com/dkarlovs/SBM-ScheduleService/internal/infra/storage/audit"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/types"
)

type fakeBookingRepo struct {
	candidates []*domain.Booking
	listErr    error

	// Текущий статус по ID имитирует конкурентные изменения между
	// выборкой кандидатов и условным обновлением
	statuses    map[int64]domain.BookingStatus
	completeErr map[int64]error
	completed   []int64
}

func (f *fakeBookingRepo) ListAutoCompleteCandidates(_ context.Context, _, _ time.Time, limit int) ([]*domain.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.candidates) > limit {
		return f.candidates[:limit], nil
	}
	return f.candidates, nil
}

func (f *fakeBookingRepo) CompleteIfStillConfirmed(_ context.Context, id int64, _ time.Time) (bool, error) {
	if err := f.completeErr[id]; err != nil {
		return false, err
	}
	if f.statuses[id] != domain.StatusConfirmed {
		return false, nil
	}
	f.statuses[id] = domain.StatusCompleted
	f.completed = append(f.completed, id)
	return true, nil
}

type fakeAuditRepo struct {
	events []*audit.Event
	err    error
}

func (f *fakeAuditRepo) Record(_ context.Context, event *audit.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeMetrics struct {
	autoCompleted int
}

func (f *fakeMetrics) AddAutoCompleted(count int) { f.autoCompleted += count }

func confirmedBooking(id int64, date time.Time, start, end string) *domain.Booking {
	s, _ := types.ParseTimeOfDay(start)
	e, _ := types.ParseTimeOfDay(end)
	return &domain.Booking{
		ID:        id,
		StaffID:   100,
		Date:      date,
		StartTime: s,
		EndTime:   e,
		Status:    domain.StatusConfirmed,
	}
}

func newFakeRepo(candidates ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		candidates:  candidates,
		statuses:    make(map[int64]domain.BookingStatus),
		completeErr: make(map[int64]error),
	}
	for _, b := range candidates {
		repo.statuses[b.ID] = b.Status
	}
	return repo
}

var testNow = time.Date(2026, 7, 15, 18, 0, 0, 0, time.UTC)

func newTestUseCase(repo *fakeBookingRepo, auditRepo *fakeAuditRepo, metrics *fakeMetrics) *UseCase {
	return NewUseCase(repo, auditRepo, &fixedTimeProvider{now: testNow}, metrics, nopLogger{}, Config{
		WindowDays:    30,
		BatchSize:     200,
		BufferSeconds: 30,
	})
}

func TestExecute_CompletesPastBookings(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1)
	repo := newFakeRepo(
		confirmedBooking(1, yesterday, "10:00", "11:00"),
		confirmedBooking(2, testNow, "09:00", "10:00"),
	)
	auditRepo := &fakeAuditRepo{}
	metrics := &fakeMetrics{}
	uc := newTestUseCase(repo, auditRepo, metrics)

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.ProcessedCount)
	assert.Equal(t, 0, result.FailedCount)
	assert.ElementsMatch(t, []int64{1, 2}, result.ProcessedIDs)
	assert.Len(t, auditRepo.events, 2)
	assert.Equal(t, 2, metrics.autoCompleted)
}

func TestExecute_FutureEndTimeNotTouched(t *testing.T) {
	// Сейчас 18:00: бронирование до 19:00 еще идет
	repo := newFakeRepo(confirmedBooking(1, testNow, "18:00", "19:00"))
	uc := newTestUseCase(repo, &fakeAuditRepo{}, &fakeMetrics{})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.ProcessedCount)
	assert.Empty(t, repo.completed)
}

func TestExecute_BufferHoldsJustEndedBooking(t *testing.T) {
	// Окончание ровно "сейчас": буфер 30 секунд еще не прошел
	repo := newFakeRepo(confirmedBooking(1, testNow, "17:00", "18:00"))
	uc := newTestUseCase(repo, &fakeAuditRepo{}, &fakeMetrics{})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.ProcessedCount)
}

func TestExecute_EndTimeBeforeBufferCompletes(t *testing.T) {
	// Окончание 17:59 при "сейчас" 18:00:00 и буфере 30с → cutoff 17:59:30
	repo := newFakeRepo(confirmedBooking(1, testNow, "17:00", "17:59"))
	uc := newTestUseCase(repo, &fakeAuditRepo{}, &fakeMetrics{})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.ProcessedCount)
}

func TestExecute_SecondRunIsIdempotent(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1)
	repo := newFakeRepo(confirmedBooking(1, yesterday, "10:00", "11:00"))
	uc := newTestUseCase(repo, &fakeAuditRepo{}, &fakeMetrics{})

	first, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first.ProcessedCount)

	// Повторный проход по тем же кандидатам: статус уже completed,
	// условное обновление ничего не трогает
	second, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.ProcessedCount)
	assert.Equal(t, 0, second.FailedCount)
	assert.Len(t, repo.completed, 1)
}

func TestExecute_ConcurrentCancellationSkipped(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1)
	repo := newFakeRepo(confirmedBooking(1, yesterday, "10:00", "11:00"))
	// Бронирование отменили между выборкой и обновлением
	repo.statuses[1] = domain.StatusCanceled
	uc := newTestUseCase(repo, &fakeAuditRepo{}, &fakeMetrics{})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.ProcessedCount)
	assert.Equal(t, 0, result.FailedCount)
}

func TestExecute_OneFailureDoesNotStopRun(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1)
	repo := newFakeRepo(
		confirmedBooking(1, yesterday, "10:00", "11:00"),
		confirmedBooking(2, yesterday, "11:00", "12:00"),
		confirmedBooking(3, yesterday, "12:00", "13:00"),
	)
	repo.completeErr[2] = errors.New("connection reset")
	uc := newTestUseCase(repo, &fakeAuditRepo{}, &fakeMetrics{})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.ProcessedCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Equal(t, []int64{2}, result.FailedIDs)
	assert.ElementsMatch(t, []int64{1, 3}, result.ProcessedIDs)
}

func TestExecute_AuditFailureDoesNotFailRun(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1)
	repo := newFakeRepo(confirmedBooking(1, yesterday, "10:00", "11:00"))
	auditRepo := &fakeAuditRepo{err: errors.New("disk full")}
	uc := newTestUseCase(repo, auditRepo, &fakeMetrics{})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.ProcessedCount)
	assert.Equal(t, 0, result.FailedCount)
}

func TestExecute_ListFailureReturnsError(t *testing.T) {
	repo := newFakeRepo()
	repo.listErr = errors.New("timeout")
	uc := newTestUseCase(repo, &fakeAuditRepo{}, &fakeMetrics{})

	_, err := uc.Execute(context.Background())
	require.ErrorIs(t, err, ErrListCandidates)
}
