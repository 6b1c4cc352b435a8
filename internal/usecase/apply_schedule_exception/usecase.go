package apply_schedule_exception

import (
	"context"
	"fmt"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	"github.com/dkarlovs/SBM-ScheduleService/internal/infra/storage/audit"
	"github.com/dkarlovs/SBM-ScheduleService/internal/integrations/notifyservice"
)

// UseCase use case создания исключения расписания с каскадной отменой.
// Создание исключения и отмена бронирований идут в одной транзакции:
// либо день закрыт и все затронутые бронирования отменены, либо ничего.
// Уведомления клиентам отправляются после фиксации и best-effort.
type UseCase struct {
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	auditRepo    AuditRepository
	notifyClient NotifyClient
	txManager    TxManager
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	auditRepo AuditRepository,
	notifyClient NotifyClient,
	txManager TxManager,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		auditRepo:    auditRepo,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case создания исключения расписания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApplyScheduleException: professional=%d, date=%s, closed=%v",
		req.ProfessionalID, req.Date.Format(domain.DateFormat), req.IsClosed)

	// 1. Текущее время и валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("ApplyScheduleException: validation failed: %v", err)
		return nil, err
	}

	var (
		created   *domain.ScheduleException
		cancelled []*domain.Booking
	)

	// 2. Исключение и каскадная отмена в одной транзакции.
	// Сбой отмены откатывает и само исключение: день не может
	// числиться закрытым при живых бронированиях.
	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		var txErr error
		created, txErr = uc.scheduleRepo.CreateException(ctx, &domain.ScheduleException{
			ProfessionalID: req.ProfessionalID,
			StaffID:        req.StaffID,
			Date:           req.Date,
			IsClosed:       req.IsClosed,
			TimeRanges:     req.TimeRanges,
		})
		if txErr != nil {
			return fmt.Errorf("create exception: %w", txErr)
		}

		if !req.IsClosed {
			return nil
		}

		cancelled, txErr = uc.bookingRepo.CancelByClosedDay(ctx, req.ProfessionalID, req.StaffID, req.Date, now)
		if txErr != nil {
			return fmt.Errorf("cancel bookings: %w", txErr)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("ApplyScheduleException: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("ApplyScheduleException: exception id=%d created, %d bookings cancelled",
		created.ID, len(cancelled))

	// 3. Пост-фиксационные шаги: аудит и уведомления best-effort
	if len(cancelled) > 0 {
		if uc.metrics != nil {
			uc.metrics.AddCascadeCancelled(len(cancelled))
		}
		uc.recordAudit(ctx, created, cancelled)
		uc.notifyClients(ctx, cancelled)
	}

	return &Response{
		Exception:         created,
		BookingsCancelled: len(cancelled),
	}, nil
}

// recordAudit пишет событие аудита по каждому отмененному бронированию
func (uc *UseCase) recordAudit(ctx context.Context, exc *domain.ScheduleException, cancelled []*domain.Booking) {
	for _, b := range cancelled {
		err := uc.auditRepo.Record(ctx, &audit.Event{
			BookingID: b.ID,
			EventType: audit.EventCascadeCancel,
			Actor:     "system",
			Details: map[string]interface{}{
				"exception_id": exc.ID,
				"date":         b.Date.Format(domain.DateFormat),
				"reason":       domain.SystemCancellationReason,
			},
		})
		if err != nil {
			uc.logger.Warn("ApplyScheduleException: failed to record audit event for booking id=%d: %v", b.ID, err)
		}
	}
}

// notifyClients отправляет уведомления об отмене. Любой сбой доставки
// логируется и не влияет на результат: бронирования уже отменены.
func (uc *UseCase) notifyClients(ctx context.Context, cancelled []*domain.Booking) {
	for _, b := range cancelled {
		err := uc.notifyClient.SendCancellationNotice(ctx, &notifyservice.CancellationNotice{
			ClientID:  b.ClientID,
			BookingID: b.ID,
			Date:      b.Date.Format(domain.DateFormat),
			StartTime: b.StartTime.String(),
			Reason:    domain.SystemCancellationReason,
		})
		if err != nil {
			if uc.metrics != nil {
				uc.metrics.IncNotifyFailure()
			}
			uc.logger.Warn("ApplyScheduleException: failed to notify client=%d about booking id=%d: %v",
				b.ClientID, b.ID, err)
		}
	}
}
