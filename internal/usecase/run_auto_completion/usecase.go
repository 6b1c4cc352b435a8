package run_auto_completion

import (
	"context"
	"fmt"
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	"github.com/dkarlovs/SBM-ScheduleService/internal/infra/storage/audit"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/types"
)

// UseCase use case планового авто-завершения подтвержденных бронирований
type UseCase struct {
	bookingRepo  BookingRepository
	auditRepo    AuditRepository
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
	cfg          Config
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	auditRepo AuditRepository,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
	cfg Config,
) *UseCase {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = domain.DefaultAutoCompleteWindowDays
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = domain.DefaultAutoCompleteBatchSize
	}
	if cfg.BufferSeconds < 0 {
		cfg.BufferSeconds = domain.DefaultAutoCompleteBufferSeconds
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		auditRepo:    auditRepo,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
		cfg:          cfg,
	}
}

// Execute выполняет один проход авто-завершения.
// Проход идемпотентен: завершение условное (только из confirmed),
// повторный запуск по тем же данным не обрабатывает ничего нового.
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	// 1. Текущее время (Europe/Riga) и окно поиска кандидатов
	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	windowStart := today.AddDate(0, 0, -uc.cfg.WindowDays)

	// 2. Получаем кандидатов: confirmed, не завершенные автоматически,
	// дата в пределах [windowStart, today]
	candidates, err := uc.bookingRepo.ListAutoCompleteCandidates(ctx, windowStart, today, uc.cfg.BatchSize)
	if err != nil {
		uc.logger.Error("RunAutoCompletion: failed to list candidates: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrListCandidates, err)
	}

	result := &Result{}
	if len(candidates) == 0 {
		uc.logger.Info("RunAutoCompletion: no candidates")
		return result, nil
	}

	// 3. Обрабатываем кандидатов по одному: сбой одного бронирования
	// не прерывает проход
	for _, booking := range candidates {
		if !uc.isPastWithBuffer(booking, now, today) {
			continue
		}

		completed, err := uc.bookingRepo.CompleteIfStillConfirmed(ctx, booking.ID, now)
		if err != nil {
			uc.logger.Error("RunAutoCompletion: failed to complete booking id=%d: %v", booking.ID, err)
			result.FailedCount++
			result.FailedIDs = append(result.FailedIDs, booking.ID)
			continue
		}
		if !completed {
			// Статус поменялся между выборкой и обновлением (отмена,
			// ручное завершение) — пропускаем без ошибки
			uc.logger.Info("RunAutoCompletion: booking id=%d no longer confirmed, skipped", booking.ID)
			continue
		}

		result.ProcessedCount++
		result.ProcessedIDs = append(result.ProcessedIDs, booking.ID)

		// Аудит best-effort: сбой записи не откатывает завершение
		auditErr := uc.auditRepo.Record(ctx, &audit.Event{
			BookingID: booking.ID,
			EventType: audit.EventAutoCompleted,
			Actor:     domain.CompletedByAuto,
			Details: map[string]interface{}{
				"date":     booking.Date.Format(domain.DateFormat),
				"end_time": booking.EndTime.String(),
			},
		})
		if auditErr != nil {
			uc.logger.Warn("RunAutoCompletion: failed to record audit event for booking id=%d: %v", booking.ID, auditErr)
		}
	}

	if uc.metrics != nil && result.ProcessedCount > 0 {
		uc.metrics.AddAutoCompleted(result.ProcessedCount)
	}

	uc.logger.Info("RunAutoCompletion: processed=%d, failed=%d", result.ProcessedCount, result.FailedCount)
	return result, nil
}

// isPastWithBuffer проверяет, что бронирование завершилось достаточно
// давно: либо дата целиком в прошлом, либо сегодня и время окончания
// прошло с учетом защитного буфера
func (uc *UseCase) isPastWithBuffer(booking *domain.Booking, now, today time.Time) bool {
	bookingDay := time.Date(booking.Date.Year(), booking.Date.Month(), booking.Date.Day(), 0, 0, 0, 0, time.UTC)
	if bookingDay.Before(today) {
		return true
	}
	if !bookingDay.Equal(today) {
		return false
	}

	cutoff := now.Add(-time.Duration(uc.cfg.BufferSeconds) * time.Second)
	// Сразу после полуночи буфер уходит во вчера: сегодняшние
	// бронирования еще не готовы
	if cutoff.Day() != now.Day() {
		return false
	}
	cutoffTime := types.NewTimeOfDay(cutoff)
	return !booking.EndTime.IsAfter(cutoffTime)
}
