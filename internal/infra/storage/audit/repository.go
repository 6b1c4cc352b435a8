package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkarlovs/SBM-ScheduleService/pkg/dbmetrics"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/psqlbuilder"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("audit.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("audit.repository: failed to execute query")
)

// Event types
const (
	EventAutoCompleted   = "auto_completed"
	EventCascadeCancel   = "cascade_cancelled"
	EventManualCompleted = "manual_completed"
)

// Event запись аудита по бронированию.
// Записи best-effort: ошибки записи логируются вызывающей стороной
// и никогда не откатывают основную операцию.
type Event struct {
	BookingID int64
	EventType string
	Actor     string
	Details   map[string]interface{}
}

// Repository репозиторий событий аудита
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория аудита
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Record пишет событие аудита
func (r *Repository) Record(ctx context.Context, event *Event) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var detailsJSON interface{}
	if event.Details != nil {
		encoded, err := json.Marshal(event.Details)
		if err != nil {
			return fmt.Errorf("%w: Record - marshal details: %v", ErrBuildQuery, err)
		}
		detailsJSON = encoded
	}

	query, args, err := psqlbuilder.Insert("booking_events").
		Columns("booking_id", "event_type", "actor", "details").
		Values(event.BookingID, event.EventType, event.Actor, detailsJSON).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Record - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Record - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
