package get_day_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	scheduleRepo "github.com/dkarlovs/SBM-ScheduleService/internal/infra/storage/schedule"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/ptr"
)

// UseCase use case для расчета доступных слотов на день
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case расчета слотов на день
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySlots: professional=%d, service=%d, date=%s",
		req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDaySlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время (Europe/Riga)
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.scheduleRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetDaySlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetDaySlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrRepository, err)
	}

	// 4. Проверяем принадлежность, активность и длительность услуги
	if err := validateService(service, req.ProfessionalID); err != nil {
		uc.logger.Warn("GetDaySlots: service validation failed: %v", err)
		return nil, err
	}

	// 5. Получаем лимиты тарифа профессионала.
	// Отсутствие тарифа трактуем как безлимитный (ноль-значения).
	limits, err := uc.scheduleRepo.GetPlanLimits(ctx, req.ProfessionalID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrPlanNotFound) {
			uc.logger.Error("GetDaySlots: failed to get plan limits for professional=%d: %v", req.ProfessionalID, err)
			return nil, fmt.Errorf("%w: failed to get plan limits: %v", ErrRepository, err)
		}
		limits = domain.PlanLimits{}
		uc.logger.Info("GetDaySlots: no plan for professional=%d, treating as unlimited", req.ProfessionalID)
	}

	// 6. Валидация даты: прошлое запрещено, будущее ограничено тарифом
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetDaySlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}
	if limits.HasAdvanceLimit() {
		maxDate := now.AddDate(0, 0, limits.MaxAdvanceBookingDays)
		if !isSameDay(req.Date, maxDate) && req.Date.After(maxDate) {
			uc.logger.Warn("GetDaySlots: date %s is beyond the %d-day booking horizon",
				req.Date.Format(domain.DateFormat), limits.MaxAdvanceBookingDays)
			return nil, fmt.Errorf("%w: booking horizon is %d days", ErrDateTooFarInFuture, limits.MaxAdvanceBookingDays)
		}
	}

	// 7. Получаем сотрудников, оказывающих услугу, с учетом лимита видимости тарифа
	staff, err := uc.scheduleRepo.GetEligibleStaff(ctx, req.ProfessionalID, req.ServiceID)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get staff for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrRepository, err)
	}
	staff = limits.VisibleStaff(staff)
	if len(staff) == 0 {
		uc.logger.Info("GetDaySlots: no eligible staff for professional=%d, service=%d", req.ProfessionalID, req.ServiceID)
		return &Response{
			Date:           req.Date,
			ProfessionalID: req.ProfessionalID,
			ServiceID:      req.ServiceID,
			Staff:          []StaffSlots{},
		}, nil
	}

	staffIDs := make([]int64, 0, len(staff))
	for _, s := range staff {
		staffIDs = append(staffIDs, s.ID)
	}

	// 8. Получаем недельные расписания на нужный день недели
	dayOfWeek := int(req.Date.Weekday())
	weekly, err := uc.scheduleRepo.GetWeeklySchedules(ctx, staffIDs, ptr.Ptr(dayOfWeek))
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get weekly schedules: %v", err)
		return nil, fmt.Errorf("%w: failed to get weekly schedules: %v", ErrRepository, err)
	}

	// 9. Получаем исключения расписания на дату
	exceptions, err := uc.scheduleRepo.GetExceptions(ctx, req.ProfessionalID, req.Date, req.Date)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get schedule exceptions: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule exceptions: %v", ErrRepository, err)
	}

	// 10. Получаем блокирующие бронирования на дату
	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.StaffBookingsFilter{
		ProfessionalID: req.ProfessionalID,
		StartDate:      &req.Date,
		EndDate:        &req.Date,
	})
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrRepository, err)
	}
	bookingsByStaff := groupBookingsByStaff(bookings)

	// 11. Считаем слоты по каждому сотруднику.
	// Сотрудники с нулем сгенерированных слотов в ответ не включаются.
	cutoff := pastCutoffFor(req.Date, now)
	result := make([]StaffSlots, 0, len(staff))
	totalSlots := 0
	for _, member := range staff {
		ranges := resolveDayRanges(member.ID, req.ServiceID, weekly, exceptions)
		starts := generateSlotStarts(ranges, service.DurationMinutes)
		if len(starts) == 0 {
			continue
		}
		slots := markSlots(starts, service.DurationMinutes, bookingsByStaff[member.ID], cutoff)
		totalSlots += len(slots)
		result = append(result, StaffSlots{StaffID: member.ID, Slots: slots})
	}

	if uc.metrics != nil {
		uc.metrics.AddSlotsComputed("day_slots", totalSlots)
	}

	uc.logger.Info("GetDaySlots: computed %d slots across %d staff for professional=%d, date=%s",
		totalSlots, len(result), req.ProfessionalID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:           req.Date,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		Staff:          result,
	}, nil
}
