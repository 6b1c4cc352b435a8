package models

import (
	"errors"
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetClientBookingsRequest запрос истории бронирований клиента
type GetClientBookingsRequest struct {
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// GetStaffBookingsRequest запрос бронирований профессионала с фильтрацией
type GetStaffBookingsRequest struct {
	UserID         int64      `json:"userId"`
	ProfessionalID int64      `json:"professionalId"`
	StaffID        *int64     `json:"staffId,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	Status         *string    `json:"status,omitempty"`
	IncludeAll     bool       `json:"includeAll,omitempty"` // Включая отмененные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetStaffBookingsRequest) ToDomainFilter() (domain.StaffBookingsFilter, error) {
	filter := domain.StaffBookingsFilter{
		ProfessionalID: r.ProfessionalID,
		StaffID:        r.StaffID,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		IncludeAll:     r.IncludeAll,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Statuses = []domain.BookingStatus{status}
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             int64  `json:"id"`
	ClientID       int64  `json:"clientId"`
	ProfessionalID int64  `json:"professionalId"`
	StaffID        int64  `json:"staffId"`
	ServiceID      int64  `json:"serviceId"`
	Date           string `json:"date"`      // "2026-07-06"
	StartTime      string `json:"startTime"` // "10:00"
	EndTime        string `json:"endTime"`   // "11:00"
	Status         string `json:"status"`

	CompletedBy              *string `json:"completedBy,omitempty"`
	AutoCompletedAt          *string `json:"autoCompletedAt,omitempty"` // ISO 8601
	CancellationReason       *string `json:"cancellationReason,omitempty"`
	CancelledAt              *string `json:"cancelledAt,omitempty"` // ISO 8601
	AutoCancelledByException bool    `json:"autoCancelledByException,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                       b.ID,
		ClientID:                 b.ClientID,
		ProfessionalID:           b.ProfessionalID,
		StaffID:                  b.StaffID,
		ServiceID:                b.ServiceID,
		Date:                     b.Date.Format(domain.DateFormat),
		StartTime:                b.StartTime.String(),
		EndTime:                  b.EndTime.String(),
		Status:                   string(b.Status),
		CompletedBy:              b.CompletedBy,
		CancellationReason:       b.CancellationReason,
		AutoCancelledByException: b.AutoCancelledByException,
		CreatedAt:                b.CreatedAt,
		UpdatedAt:                b.UpdatedAt,
	}

	if b.AutoCompletedAt != nil {
		formatted := b.AutoCompletedAt.Format(time.RFC3339)
		resp.AutoCompletedAt = &formatted
	}
	if b.CancelledAt != nil {
		formatted := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &formatted
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	out := &BookingListResponse{Bookings: make([]BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		out.Bookings = append(out.Bookings, *FromDomainBooking(b))
	}
	return out
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted,
		domain.StatusCanceled, domain.StatusCancelledSystem:
		return domain.BookingStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
