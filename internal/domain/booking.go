package domain

import (
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending         BookingStatus = "pending"
	StatusConfirmed       BookingStatus = "confirmed"
	StatusCompleted       BookingStatus = "completed"
	StatusCanceled        BookingStatus = "canceled"
	StatusCancelledSystem BookingStatus = "cancelled_system"
)

// CompletedBy values
const (
	CompletedByAuto     = "auto"
	CompletedByProvider = "provider"
)

// Booking represents a client booking of a service with a staff member.
// The [StartTime, EndTime) interval is half-open: a booking ending at 10:00
// does not conflict with one starting at 10:00.
type Booking struct {
	ID             int64
	ClientID       int64
	ProfessionalID int64
	StaffID        int64
	ServiceID      int64
	Date           time.Time
	StartTime      types.TimeOfDay
	EndTime        types.TimeOfDay
	Status         BookingStatus

	AutoCompletedAt          *time.Time
	CompletedBy              *string
	CancelledAt              *time.Time
	CancellationReason       *string
	AutoCancelledByException bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksSlot returns true if the booking occupies its interval for
// availability purposes. Cancelled bookings never block a slot.
func (b *Booking) BlocksSlot() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed || b.Status == StatusCompleted
}

// CanBeConfirmed returns true if the booking can transition to confirmed
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCompleted returns true if the booking can transition to completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled by anyone
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCanceled || b.Status == StatusCancelledSystem
}

// StaffBookingsFilter фильтр для выборки бронирований
type StaffBookingsFilter struct {
	ProfessionalID int64           // Обязательный параметр
	StaffID        *int64          // Фильтр по сотруднику (опционально)
	StartDate      *time.Time      // Начало периода (опционально)
	EndDate        *time.Time      // Конец периода (опционально)
	Statuses       []BookingStatus // Фильтр по статусам (опционально, nil - только блокирующие)
	IncludeAll     bool            // Включать ли отмененные бронирования
}
