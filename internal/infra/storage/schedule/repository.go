package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/dbmetrics"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/psqlbuilder"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/types"
)

// Repository репозиторий расписаний, исключений, сотрудников и услуг
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// timeRangeRow формат хранения интервалов исключения в JSONB колонке
type timeRangeRow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"name",
		"duration_minutes",
		"active",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.ProfessionalID,
		&svc.Name,
		&svc.DurationMinutes,
		&svc.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return &svc, nil
}

// GetEligibleStaff возвращает активных сотрудников профессионала,
// назначенных на услугу, в порядке создания (для лимита видимости тарифа)
func (r *Repository) GetEligibleStaff(ctx context.Context, professionalID, serviceID int64) ([]*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.professional_id",
		"s.name",
		"s.active",
		"s.created_at",
		"s.updated_at",
	).
		From("staff_members s").
		Join("staff_service_assignments a ON a.staff_id = s.id").
		Where(squirrel.Eq{
			"a.service_id":      serviceID,
			"s.professional_id": professionalID,
			"s.active":          true,
		}).
		OrderBy("s.created_at ASC, s.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetEligibleStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetEligibleStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staff := make([]*domain.StaffMember, 0)
	for rows.Next() {
		var m domain.StaffMember
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&m.ID,
			&m.ProfessionalID,
			&m.Name,
			&m.Active,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetEligibleStaff - scan row: %v", ErrScanRow, err)
		}

		m.CreatedAt = createdAt.Time
		m.UpdatedAt = updatedAt.Time
		staff = append(staff, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetEligibleStaff - rows error: %v", ErrScanRow, err)
	}

	return staff, nil
}

// GetStaffMember возвращает сотрудника по ID
func (r *Repository) GetStaffMember(ctx context.Context, staffID int64) (*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"name",
		"active",
		"created_at",
		"updated_at",
	).
		From("staff_members").
		Where(squirrel.Eq{"id": staffID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffMember - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.StaffMember
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&m.ProfessionalID,
		&m.Name,
		&m.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffMember - scan row: %v", ErrScanRow, err)
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time
	return &m, nil
}

// GetPlanLimits возвращает лимиты тарифного плана профессионала
func (r *Repository) GetPlanLimits(ctx context.Context, professionalID int64) (domain.PlanLimits, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"pl.staff_visibility_limit",
		"pl.max_advance_booking_days",
	).
		From("professionals p").
		Join("plans pl ON pl.tier = p.plan_tier").
		Where(squirrel.Eq{"p.id": professionalID}).
		ToSql()

	if err != nil {
		return domain.PlanLimits{}, fmt.Errorf("%w: GetPlanLimits - build select query: %v", ErrBuildQuery, err)
	}

	var limits domain.PlanLimits
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&limits.StaffVisibilityLimit,
		&limits.MaxAdvanceBookingDays,
	)

	if err == sql.ErrNoRows {
		return domain.PlanLimits{}, ErrPlanNotFound
	}
	if err != nil {
		return domain.PlanLimits{}, fmt.Errorf("%w: GetPlanLimits - scan limits: %v", ErrScanRow, err)
	}

	return limits, nil
}

// GetWeeklySchedules возвращает активные рабочие окна сотрудников.
// dayOfWeek = nil означает все дни недели (для месячной доступности).
func (r *Repository) GetWeeklySchedules(ctx context.Context, staffIDs []int64, dayOfWeek *int) ([]*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if len(staffIDs) == 0 {
		return []*domain.WeeklySchedule{}, nil
	}

	selectBuilder := psqlbuilder.Select(
		"id",
		"staff_id",
		"day_of_week",
		"start_time",
		"end_time",
		"active",
		"service_ids",
		"created_at",
		"updated_at",
	).
		From("weekly_schedules").
		Where(squirrel.Eq{"staff_id": staffIDs, "active": true}).
		OrderBy("staff_id ASC, day_of_week ASC, start_time ASC")

	if dayOfWeek != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"day_of_week": *dayOfWeek})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.WeeklySchedule, 0)
	for rows.Next() {
		var ws domain.WeeklySchedule
		var serviceIDs pq.Int64Array
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&ws.ID,
			&ws.StaffID,
			&ws.DayOfWeek,
			&ws.StartTime,
			&ws.EndTime,
			&ws.Active,
			&serviceIDs,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetWeeklySchedules - scan row: %v", ErrScanRow, err)
		}

		ws.ServiceIDs = []int64(serviceIDs)
		ws.CreatedAt = createdAt.Time
		ws.UpdatedAt = updatedAt.Time
		schedules = append(schedules, &ws)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedules - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// ReplaceWeeklySchedule заменяет все рабочие окна сотрудника новым набором.
// Вызывается внутри транзакции сервисом управления расписанием.
func (r *Repository) ReplaceWeeklySchedule(ctx context.Context, staffID int64, rows []*domain.WeeklySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("weekly_schedules").
		Where(squirrel.Eq{"staff_id": staffID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeeklySchedule - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeeklySchedule - execute delete: %v", ErrExecQuery, err)
	}

	if len(rows) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("weekly_schedules").
		Columns("staff_id", "day_of_week", "start_time", "end_time", "active", "service_ids")

	for _, ws := range rows {
		insertBuilder = insertBuilder.Values(
			staffID,
			ws.DayOfWeek,
			ws.StartTime,
			ws.EndTime,
			ws.Active,
			pq.Int64Array(ws.ServiceIDs),
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeeklySchedule - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeeklySchedule - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetExceptions возвращает исключения расписания профессионала за период.
// Исключение попадает в выборку для сотрудника, если оно общее (staff_id NULL)
// или адресовано именно ему.
func (r *Repository) GetExceptions(ctx context.Context, professionalID int64, dateFrom, dateTo time.Time) ([]*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"staff_id",
		"exception_date",
		"is_closed",
		"time_ranges",
		"created_at",
	).
		From("schedule_exceptions").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.GtOrEq{"exception_date": dateFrom}).
		Where(squirrel.LtOrEq{"exception_date": dateTo}).
		OrderBy("exception_date ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]*domain.ScheduleException, 0)
	for rows.Next() {
		exc, err := scanException(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetExceptions - scan row: %v", ErrScanRow, err)
		}
		exceptions = append(exceptions, exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetExceptions - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}

// CreateException создает исключение расписания
func (r *Repository) CreateException(ctx context.Context, exc *domain.ScheduleException) (*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var rangesJSON interface{}
	if len(exc.TimeRanges) > 0 {
		rangeRows := make([]timeRangeRow, len(exc.TimeRanges))
		for i, tr := range exc.TimeRanges {
			rangeRows[i] = timeRangeRow{Start: tr.Start.String(), End: tr.End.String()}
		}
		encoded, err := json.Marshal(rangeRows)
		if err != nil {
			return nil, fmt.Errorf("%w: CreateException - marshal time ranges: %v", ErrBuildQuery, err)
		}
		rangesJSON = encoded
	}

	query, args, err := psqlbuilder.Insert("schedule_exceptions").
		Columns(
			"professional_id",
			"staff_id",
			"exception_date",
			"is_closed",
			"time_ranges",
		).
		Values(
			exc.ProfessionalID,
			exc.StaffID,
			exc.Date,
			exc.IsClosed,
			rangesJSON,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateException - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&exc.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateException - execute insert: %v", ErrExecQuery, err)
	}

	exc.CreatedAt = createdAt.Time

	return exc, nil
}

// DeleteException удаляет исключение расписания профессионала
func (r *Repository) DeleteException(ctx context.Context, id, professionalID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_exceptions").
		Where(squirrel.Eq{"id": id, "professional_id": professionalID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteException - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteException - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteException - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}

func scanException(rows *sql.Rows) (*domain.ScheduleException, error) {
	var exc domain.ScheduleException
	var rangesJSON []byte
	var createdAt sql.NullTime

	if err := rows.Scan(
		&exc.ID,
		&exc.ProfessionalID,
		&exc.StaffID,
		&exc.Date,
		&exc.IsClosed,
		&rangesJSON,
		&createdAt,
	); err != nil {
		return nil, err
	}

	exc.CreatedAt = createdAt.Time

	if len(rangesJSON) > 0 {
		var rangeRows []timeRangeRow
		if err := json.Unmarshal(rangesJSON, &rangeRows); err != nil {
			return nil, err
		}
		exc.TimeRanges = make([]domain.TimeRange, 0, len(rangeRows))
		for _, rr := range rangeRows {
			start, err := types.ParseTimeOfDay(rr.Start)
			if err != nil {
				return nil, err
			}
			end, err := types.ParseTimeOfDay(rr.End)
			if err != nil {
				return nil, err
			}
			exc.TimeRanges = append(exc.TimeRanges, domain.TimeRange{Start: start, End: end})
		}
	}

	return &exc, nil
}
