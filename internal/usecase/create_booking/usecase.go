package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	bookingRepo "github.com/dkarlovs/SBM-ScheduleService/internal/infra/storage/booking"
	scheduleRepo "github.com/dkarlovs/SBM-ScheduleService/internal/infra/storage/schedule"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка конфликта и вставка идут в сериализуемой транзакции,
// страховкой от гонок служит ограничение исключения в БД: конкурентная
// вставка того же интервала завершается ErrSlotTaken.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, professional=%d, staff=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.ProfessionalID, req.StaffID, req.ServiceID,
		req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время (Europe/Riga)
	now := uc.timeProvider.Now()

	// 3. Получаем услугу и проверяем ее
	service, err := uc.scheduleRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if err := validateService(service, req.ProfessionalID); err != nil {
		uc.logger.Warn("CreateBooking: service validation failed: %v", err)
		return nil, err
	}

	// 4. Лимиты тарифа
	limits, err := uc.scheduleRepo.GetPlanLimits(ctx, req.ProfessionalID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrPlanNotFound) {
			uc.logger.Error("CreateBooking: failed to get plan limits: %v", err)
			return nil, fmt.Errorf("%w: failed to get plan limits: %v", ErrInternal, err)
		}
		limits = domain.PlanLimits{}
	}

	// 5. Валидация даты
	if err := validateDate(req.Date, now, limits); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 6. Сотрудник должен оказывать услугу и быть видимым по тарифу
	staff, err := uc.scheduleRepo.GetEligibleStaff(ctx, req.ProfessionalID, req.ServiceID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get staff: %v", err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	staff = limits.VisibleStaff(staff)
	var member *domain.StaffMember
	for _, s := range staff {
		if s.ID == req.StaffID {
			member = s
			break
		}
	}
	if member == nil {
		uc.logger.Warn("CreateBooking: staff id=%d is not eligible for service id=%d", req.StaffID, req.ServiceID)
		return nil, ErrStaffNotEligible
	}

	// 7. Запрошенное время должно совпадать со слотом сетки расписания
	dayOfWeek := int(req.Date.Weekday())
	weekly, err := uc.scheduleRepo.GetWeeklySchedules(ctx, []int64{req.StaffID}, &dayOfWeek)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get weekly schedules: %v", err)
		return nil, fmt.Errorf("%w: failed to get weekly schedules: %v", ErrInternal, err)
	}
	exceptions, err := uc.scheduleRepo.GetExceptions(ctx, req.ProfessionalID, req.Date, req.Date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get schedule exceptions: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule exceptions: %v", ErrInternal, err)
	}

	ranges := resolveDayRanges(req.StaffID, req.ServiceID, dayOfWeek, weekly, exceptions)
	if !isGeneratedSlotStart(ranges, service.DurationMinutes, req.StartTime) {
		uc.logger.Warn("CreateBooking: time %s is not a valid slot for staff id=%d on %s",
			req.StartTime, req.StaffID, req.Date.Format(domain.DateFormat))
		return nil, ErrSlotNotAvailable
	}

	// 8. Прошедший слот сегодняшнего дня (строгое сравнение: слот,
	// начинающийся в текущую минуту, еще доступен)
	if isSameDay(req.Date, now) && req.StartTime.IsBefore(types.NewTimeOfDay(now)) {
		uc.logger.Warn("CreateBooking: time %s has already passed", req.StartTime)
		return nil, ErrSlotNotAvailable
	}

	endTime := req.StartTime.AddMinutes(service.DurationMinutes)

	var result *domain.Booking

	// 9. Проверка конфликта и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Перечитываем бронирования дня с блокировкой FOR UPDATE
		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, domain.StaffBookingsFilter{
			ProfessionalID: req.ProfessionalID,
			StaffID:        &req.StaffID,
			StartDate:      &req.Date,
			EndDate:        &req.Date,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 9.2. Проверяем пересечение полуоткрытых интервалов
		if domain.HasOverlappingBooking(req.StartTime, endTime, bookings) {
			uc.logger.Warn("CreateBooking: slot %s already taken for staff id=%d", req.StartTime, req.StaffID)
			return ErrSlotTaken
		}

		// 9.3. Создаем бронирование в статусе pending
		result, err = uc.bookingRepo.Create(txCtx, &domain.Booking{
			ClientID:       req.ClientID,
			ProfessionalID: req.ProfessionalID,
			StaffID:        req.StaffID,
			ServiceID:      req.ServiceID,
			Date:           req.Date,
			StartTime:      req.StartTime,
			EndTime:        endTime,
			Status:         domain.StatusPending,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: booking id=%d created, staff=%d, %s %s-%s",
		result.ID, req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime, endTime)

	return &Response{Booking: result}, nil
}

func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
