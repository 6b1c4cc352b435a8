package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	"github.com/dkarlovs/SBM-ScheduleService/internal/infra/storage/audit"
	bookingRepo "github.com/dkarlovs/SBM-ScheduleService/internal/infra/storage/booking"
	"github.com/dkarlovs/SBM-ScheduleService/internal/service/bookings/models"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/ptr"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/types"
)

type fakeBookingRepo struct {
	byID map[int64]*domain.Booking

	statusUpdates map[int64]domain.BookingStatus
	cancelled     map[int64]string
	completed     []int64
}

func newFakeRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	f := &fakeBookingRepo{
		byID:          make(map[int64]*domain.Booking),
		statusUpdates: make(map[int64]domain.BookingStatus),
		cancelled:     make(map[int64]string),
	}
	for _, b := range bookings {
		f.byID[b.ID] = b
	}
	return f
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByClientID(_ context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
		if b.ClientID != clientID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
		if b.ProfessionalID != filter.ProfessionalID {
			continue
		}
		if filter.StaffID != nil && b.StaffID != *filter.StaffID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.statusUpdates[id] = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason string, _ time.Time) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.statusUpdates[id] = status
	f.cancelled[id] = reason
	return nil
}

func (f *fakeBookingRepo) CompleteManually(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.completed = append(f.completed, id)
	return nil
}

type fakeAuditRepo struct {
	events []*audit.Event
}

func (f *fakeAuditRepo) Record(_ context.Context, event *audit.Event) error {
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

const (
	clientID       = int64(7)
	professionalID = int64(1)
)

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:             id,
		ClientID:       clientID,
		ProfessionalID: professionalID,
		StaffID:        100,
		ServiceID:      10,
		Date:           time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC),
		StartTime:      types.TimeOfDay(10 * 60),
		EndTime:        types.TimeOfDay(11 * 60),
		Status:         status,
	}
}

func newService(repo *fakeBookingRepo, auditRepo *fakeAuditRepo) *Service {
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	return NewService(repo, auditRepo, &fixedTimeProvider{now: now}, nopLogger{})
}

func TestGetByID_OwnerAndProfessionalAllowed(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusPending))
	svc := newService(repo, &fakeAuditRepo{})

	resp, err := svc.GetByID(context.Background(), 1, clientID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = svc.GetByID(context.Background(), 1, professionalID)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, int64(999))
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newService(newFakeRepo(), &fakeAuditRepo{})

	_, err := svc.GetByID(context.Background(), 42, clientID)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestConfirm_PendingByProfessional(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusPending))
	svc := newService(repo, &fakeAuditRepo{})

	err := svc.Confirm(context.Background(), 1, professionalID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, repo.statusUpdates[1])
}

func TestConfirm_ClientForbidden(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusPending))
	svc := newService(repo, &fakeAuditRepo{})

	err := svc.Confirm(context.Background(), 1, clientID)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestConfirm_NonPendingRejected(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusCompleted))
	svc := newService(repo, &fakeAuditRepo{})

	err := svc.Confirm(context.Background(), 1, professionalID)
	require.ErrorIs(t, err, ErrCannotConfirm)
}

func TestCancel_PendingAndConfirmedOnly(t *testing.T) {
	repo := newFakeRepo(
		testBooking(1, domain.StatusPending),
		testBooking(2, domain.StatusConfirmed),
		testBooking(3, domain.StatusCompleted),
		testBooking(4, domain.StatusCancelledSystem),
	)
	svc := newService(repo, &fakeAuditRepo{})

	require.NoError(t, svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: clientID, CancellationReason: "no time"}))
	require.NoError(t, svc.Cancel(context.Background(), 2, &models.CancelBookingRequest{UserID: professionalID}))
	require.ErrorIs(t, svc.Cancel(context.Background(), 3, &models.CancelBookingRequest{UserID: clientID}), ErrCannotCancel)
	require.ErrorIs(t, svc.Cancel(context.Background(), 4, &models.CancelBookingRequest{UserID: clientID}), ErrCannotCancel)

	assert.Equal(t, domain.StatusCanceled, repo.statusUpdates[1])
	assert.Equal(t, "no time", repo.cancelled[1])
}

func TestComplete_ConfirmedByProfessional(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusConfirmed))
	auditRepo := &fakeAuditRepo{}
	svc := newService(repo, auditRepo)

	err := svc.Complete(context.Background(), 1, professionalID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.completed)
	require.Len(t, auditRepo.events, 1)
	assert.Equal(t, audit.EventManualCompleted, auditRepo.events[0].EventType)
}

func TestComplete_PendingRejected(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusPending))
	svc := newService(repo, &fakeAuditRepo{})

	err := svc.Complete(context.Background(), 1, professionalID)
	require.ErrorIs(t, err, ErrCannotComplete)
}

func TestGetStaffBookings_OnlyOwnProfessional(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusConfirmed))
	svc := newService(repo, &fakeAuditRepo{})

	resp, err := svc.GetStaffBookings(context.Background(), &models.GetStaffBookingsRequest{
		UserID:         professionalID,
		ProfessionalID: professionalID,
		StaffID:        ptr.Ptr(int64(100)),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.GetStaffBookings(context.Background(), &models.GetStaffBookingsRequest{
		UserID:         clientID,
		ProfessionalID: professionalID,
	})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetClientBookings_InvalidStatus(t *testing.T) {
	svc := newService(newFakeRepo(), &fakeAuditRepo{})

	_, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		ClientID: clientID,
		Status:   ptr.Ptr("nonsense"),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}
