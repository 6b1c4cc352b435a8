package get_month_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	scheduleRepo "github.com/dkarlovs/SBM-ScheduleService/internal/infra/storage/schedule"
)

// UseCase use case для расчета доступности по дням месяца
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case расчета доступности месяца.
// Данные месяца (расписания, исключения, бронирования) загружаются
// тремя запросами, дальше весь расчет идет в памяти: по дню достаточно
// найти первый свободный слот, полный список не генерируется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetMonthAvailability: professional=%d, service=%d, month=%d-%02d",
		req.ProfessionalID, req.ServiceID, req.Year, req.Month)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetMonthAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время (Europe/Riga)
	now := uc.timeProvider.Now()

	// 3. Получаем услугу и проверяем ее
	service, err := uc.scheduleRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetMonthAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetMonthAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrRepository, err)
	}
	if err := validateService(service, req.ProfessionalID); err != nil {
		uc.logger.Warn("GetMonthAvailability: service validation failed: %v", err)
		return nil, err
	}

	// 4. Лимиты тарифа (отсутствие тарифа = безлимит)
	limits, err := uc.scheduleRepo.GetPlanLimits(ctx, req.ProfessionalID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrPlanNotFound) {
			uc.logger.Error("GetMonthAvailability: failed to get plan limits: %v", err)
			return nil, fmt.Errorf("%w: failed to get plan limits: %v", ErrRepository, err)
		}
		limits = domain.PlanLimits{}
	}

	// 5. Границы месяца
	monthStart := time.Date(req.Year, req.Month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	daysInMonth := monthEnd.Day()

	// 6. Сотрудники с учетом лимита видимости
	staff, err := uc.scheduleRepo.GetEligibleStaff(ctx, req.ProfessionalID, req.ServiceID)
	if err != nil {
		uc.logger.Error("GetMonthAvailability: failed to get staff: %v", err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrRepository, err)
	}
	staff = limits.VisibleStaff(staff)

	days := make([]DayAvailability, 0, daysInMonth)
	if len(staff) == 0 {
		// Без сотрудников весь месяц недоступен
		for d := 0; d < daysInMonth; d++ {
			days = append(days, DayAvailability{Date: monthStart.AddDate(0, 0, d)})
		}
		return uc.respond(req, days), nil
	}

	staffIDs := make([]int64, 0, len(staff))
	for _, s := range staff {
		staffIDs = append(staffIDs, s.ID)
	}

	// 7. Недельные расписания всех дней недели одним запросом
	weekly, err := uc.scheduleRepo.GetWeeklySchedules(ctx, staffIDs, nil)
	if err != nil {
		uc.logger.Error("GetMonthAvailability: failed to get weekly schedules: %v", err)
		return nil, fmt.Errorf("%w: failed to get weekly schedules: %v", ErrRepository, err)
	}

	// 8. Исключения месяца
	exceptions, err := uc.scheduleRepo.GetExceptions(ctx, req.ProfessionalID, monthStart, monthEnd)
	if err != nil {
		uc.logger.Error("GetMonthAvailability: failed to get schedule exceptions: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule exceptions: %v", ErrRepository, err)
	}
	exceptionsByDate := groupExceptionsByDate(exceptions)

	// 9. Блокирующие бронирования месяца
	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.StaffBookingsFilter{
		ProfessionalID: req.ProfessionalID,
		StartDate:      &monthStart,
		EndDate:        &monthEnd,
	})
	if err != nil {
		uc.logger.Error("GetMonthAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrRepository, err)
	}
	bookingsByDate := groupBookings(bookings)

	// 10. Горизонт тарифа
	var horizon *time.Time
	if limits.HasAdvanceLimit() {
		h := now.AddDate(0, 0, limits.MaxAdvanceBookingDays)
		horizon = &h
	}

	// 11. Перебираем дни месяца
	availableDays := 0
	for d := 0; d < daysInMonth; d++ {
		date := monthStart.AddDate(0, 0, d)
		day := DayAvailability{Date: date}

		// Прошедшие дни и дни за горизонтом недоступны без расчета слотов
		skip := isDateInPast(date, now)
		if !skip && horizon != nil && !isSameDay(date, *horizon) && date.After(*horizon) {
			skip = true
		}

		if !skip {
			cutoff := pastCutoffFor(date, now)
			dayOfWeek := int(date.Weekday())
			dayExceptions := exceptionsByDate[keyOf(date)]
			dayBookings := bookingsByDate[keyOf(date)]

			for _, member := range staff {
				ranges := resolveDayRanges(member.ID, req.ServiceID, dayOfWeek, weekly, dayExceptions)
				if staffHasFreeSlot(ranges, service.DurationMinutes, dayBookings[member.ID], cutoff) {
					day.Available = true
					break
				}
			}
		}

		if day.Available {
			availableDays++
		}
		days = append(days, day)
	}

	uc.logger.Info("GetMonthAvailability: professional=%d, month=%d-%02d: %d/%d days available",
		req.ProfessionalID, req.Year, req.Month, availableDays, daysInMonth)

	return uc.respond(req, days), nil
}

func (uc *UseCase) respond(req *Request, days []DayAvailability) *Response {
	return &Response{
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		Year:           req.Year,
		Month:          req.Month,
		Days:           days,
	}
}
