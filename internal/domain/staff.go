package domain

import "time"

// Service represents a bookable service owned by a professional
type Service struct {
	ID              int64
	ProfessionalID  int64
	Name            string
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StaffMember represents an employee of a professional
type StaffMember struct {
	ID             int64
	ProfessionalID int64
	Name           string
	Active         bool
	CreatedAt      time.Time // Порядок создания определяет видимость при лимите тарифа
	UpdatedAt      time.Time
}

// PlanLimits limits imposed by the professional's subscription plan.
// Values <= UnlimitedSentinel mean "no limit".
type PlanLimits struct {
	StaffVisibilityLimit  int // Сколько сотрудников (по порядку создания) видно клиентам
	MaxAdvanceBookingDays int // Горизонт бронирования вперед
}

// HasStaffLimit returns true if the plan caps visible staff
func (p PlanLimits) HasStaffLimit() bool {
	return p.StaffVisibilityLimit > UnlimitedSentinel
}

// HasAdvanceLimit returns true if the plan caps the booking horizon
func (p PlanLimits) HasAdvanceLimit() bool {
	return p.MaxAdvanceBookingDays > UnlimitedSentinel
}

// VisibleStaff применяет лимит тарифа: сотрудники уже отсортированы по
// created_at, остаются первые N
func (p PlanLimits) VisibleStaff(staff []*StaffMember) []*StaffMember {
	if !p.HasStaffLimit() || len(staff) <= p.StaffVisibilityLimit {
		return staff
	}
	return staff[:p.StaffVisibilityLimit]
}
