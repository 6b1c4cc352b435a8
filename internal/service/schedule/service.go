package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	scheduleRepo "github.com/dkarlovs/SBM-ScheduleService/internal/infra/storage/schedule"
	"github.com/dkarlovs/SBM-ScheduleService/internal/service/schedule/models"
)

// Service сервис управления расписаниями сотрудников.
// Валидация окон выполняется на записи: чтение при расчете слотов
// может доверять данным и не перепроверять инварианты.
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TxManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, txManager TxManager, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetWeeklySchedule возвращает недельное расписание сотрудника
func (s *Service) GetWeeklySchedule(ctx context.Context, staffID, userID int64) (*models.WeeklyScheduleResponse, error) {
	s.logger.Info("GetWeeklySchedule: staff=%d, user=%d", staffID, userID)

	if _, err := s.checkStaffOwnership(ctx, staffID, userID); err != nil {
		return nil, err
	}

	rows, err := s.scheduleRepo.GetWeeklySchedules(ctx, []int64{staffID}, nil)
	if err != nil {
		s.logger.Error("GetWeeklySchedule: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetWeeklySchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedules(staffID, rows), nil
}

// ReplaceWeeklySchedule атомарно заменяет недельное расписание сотрудника.
// Прежние окна удаляются, новые вставляются в одной транзакции.
func (s *Service) ReplaceWeeklySchedule(ctx context.Context, req *models.ReplaceWeeklyScheduleRequest) error {
	s.logger.Info("ReplaceWeeklySchedule: staff=%d, user=%d, rows=%d", req.StaffID, req.UserID, len(req.Rows))

	if _, err := s.checkStaffOwnership(ctx, req.StaffID, req.UserID); err != nil {
		return err
	}

	rows, err := req.ToDomainRows()
	if err != nil {
		s.logger.Warn("ReplaceWeeklySchedule: invalid rows for staff=%d: %v", req.StaffID, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := validateWeeklyRows(rows); err != nil {
		s.logger.Warn("ReplaceWeeklySchedule: validation failed for staff=%d: %v", req.StaffID, err)
		return err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.scheduleRepo.ReplaceWeeklySchedule(ctx, req.StaffID, rows)
	})
	if err != nil {
		s.logger.Error("ReplaceWeeklySchedule: repository error for staff=%d: %v", req.StaffID, err)
		return fmt.Errorf("%w: ReplaceWeeklySchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWeeklySchedule: staff=%d schedule replaced with %d rows", req.StaffID, len(rows))
	return nil
}

// ListExceptions возвращает исключения профессионала за период
func (s *Service) ListExceptions(ctx context.Context, professionalID, userID int64, dateFrom, dateTo time.Time) ([]models.ExceptionResponse, error) {
	s.logger.Info("ListExceptions: professional=%d, user=%d, period=%s..%s",
		professionalID, userID, dateFrom.Format(domain.DateFormat), dateTo.Format(domain.DateFormat))

	if professionalID != userID {
		s.logger.Warn("ListExceptions: access denied for user=%d to professional=%d", userID, professionalID)
		return nil, ErrAccessDenied
	}

	exceptions, err := s.scheduleRepo.GetExceptions(ctx, professionalID, dateFrom, dateTo)
	if err != nil {
		s.logger.Error("ListExceptions: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: ListExceptions - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainExceptionList(exceptions), nil
}

// DeleteException удаляет исключение расписания.
// Уже отмененные каскадом бронирования остаются отмененными.
func (s *Service) DeleteException(ctx context.Context, exceptionID, professionalID, userID int64) error {
	s.logger.Info("DeleteException: exception=%d, professional=%d, user=%d", exceptionID, professionalID, userID)

	if professionalID != userID {
		s.logger.Warn("DeleteException: access denied for user=%d to professional=%d", userID, professionalID)
		return ErrAccessDenied
	}

	if err := s.scheduleRepo.DeleteException(ctx, exceptionID, professionalID); err != nil {
		if errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
			s.logger.Warn("DeleteException: exception id=%d not found", exceptionID)
			return ErrExceptionNotFound
		}
		s.logger.Error("DeleteException: repository error for exception=%d: %v", exceptionID, err)
		return fmt.Errorf("%w: DeleteException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteException: exception id=%d deleted", exceptionID)
	return nil
}

// checkStaffOwnership проверяет, что сотрудник принадлежит профессионалу
func (s *Service) checkStaffOwnership(ctx context.Context, staffID, userID int64) (*domain.StaffMember, error) {
	member, err := s.scheduleRepo.GetStaffMember(ctx, staffID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrStaffNotFound) {
			s.logger.Warn("checkStaffOwnership: staff id=%d not found", staffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("checkStaffOwnership: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: checkStaffOwnership - repository error: %v", ErrInternal, err)
	}
	if member.ProfessionalID != userID {
		s.logger.Warn("checkStaffOwnership: staff id=%d does not belong to user=%d", staffID, userID)
		return nil, ErrAccessDenied
	}
	return member, nil
}

// validateWeeklyRows проверяет инварианты окон: день недели в диапазоне,
// end > start, окна одного дня не пересекаются
func validateWeeklyRows(rows []*domain.WeeklySchedule) error {
	byDay := make(map[int][]*domain.WeeklySchedule)
	for _, row := range rows {
		if row.DayOfWeek < 0 || row.DayOfWeek > 6 {
			return fmt.Errorf("%w: day of week %d is out of range", ErrInvalidInput, row.DayOfWeek)
		}
		if !row.StartTime.IsBefore(row.EndTime) {
			return fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, row.StartTime, row.EndTime)
		}
		byDay[row.DayOfWeek] = append(byDay[row.DayOfWeek], row)
	}

	for day, dayRows := range byDay {
		sort.Slice(dayRows, func(i, j int) bool {
			return dayRows[i].StartTime.IsBefore(dayRows[j].StartTime)
		})
		for i := 1; i < len(dayRows); i++ {
			// Касание окон допустимо: интервалы полуоткрытые
			if dayRows[i].StartTime.IsBefore(dayRows[i-1].EndTime) {
				return fmt.Errorf("%w: day %d windows %s-%s and %s-%s",
					ErrOverlappingRanges, day,
					dayRows[i-1].StartTime, dayRows[i-1].EndTime,
					dayRows[i].StartTime, dayRows[i].EndTime)
			}
		}
	}
	return nil
}
