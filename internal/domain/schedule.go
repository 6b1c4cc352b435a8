package domain

import (
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/pkg/types"
)

// TimeRange полуоткрытый интервал времени суток [Start, End)
type TimeRange struct {
	Start types.TimeOfDay
	End   types.TimeOfDay
}

// IsValid returns true if the range has positive length and stays within a day
func (r TimeRange) IsValid() bool {
	return r.Start.IsValid() && r.End.IsValid() && r.Start.IsBefore(r.End)
}

// WeeklySchedule represents one recurring working window of a staff member.
// A staff member may have several rows per weekday (split shifts).
type WeeklySchedule struct {
	ID         int64
	StaffID    int64
	DayOfWeek  int // 0 = Sunday ... 6 = Saturday
	StartTime  types.TimeOfDay
	EndTime    types.TimeOfDay
	Active     bool
	ServiceIDs []int64 // Услуги, доступные в этом рабочем окне
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CoversService returns true if the window is eligible for the given service
func (w *WeeklySchedule) CoversService(serviceID int64) bool {
	for _, id := range w.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// ScheduleException is a date-specific override of the weekly schedule.
// An exception fully replaces the weekly rows for its date and staff scope:
// IsClosed means no availability at all, otherwise TimeRanges (if present)
// are used instead of the recurring windows.
type ScheduleException struct {
	ID             int64
	ProfessionalID int64
	StaffID        *int64 // nil = exception applies to all staff of the professional
	Date           time.Time
	IsClosed       bool
	TimeRanges     []TimeRange
	CreatedAt      time.Time
}

// AppliesToStaff returns true if the exception covers the given staff member
func (e *ScheduleException) AppliesToStaff(staffID int64) bool {
	return e.StaffID == nil || *e.StaffID == staffID
}
