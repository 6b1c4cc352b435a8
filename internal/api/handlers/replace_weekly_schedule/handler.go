package replace_weekly_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers"
	"github.com/dkarlovs/SBM-ScheduleService/internal/api/middleware"
	"github.com/dkarlovs/SBM-ScheduleService/internal/service/schedule"
)

const (
	msgMissingUserID      = "отсутствует идентификатор пользователя"
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgStaffNotFound      = "сотрудник не найден"
	msgAccessDenied       = "нет доступа к расписанию этого сотрудника"
	msgInvalidRows        = "некорректные окна расписания"
	msgInvalidTimeRange   = "время окончания должно быть позже времени начала"
	msgOverlappingRanges  = "окна одного дня не должны пересекаться"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/staff/{staffId}/weekly-schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	staffIDStr := vars["staffId"]
	staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /staff/{id}/weekly-schedule - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	var req ReplaceWeeklyScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff/{id}/weekly-schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.ReplaceWeeklySchedule(r.Context(), req.ToServiceRequest(staffID, userID))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrStaffNotFound):
			h.logger.Warn("PUT /staff/{id}/weekly-schedule - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /staff/{id}/weekly-schedule - Access denied: staff_id=%d, user_id=%d", staffID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, schedule.ErrInvalidTimeRange):
			h.logger.Warn("PUT /staff/{id}/weekly-schedule - Invalid time range: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, schedule.ErrOverlappingRanges):
			h.logger.Warn("PUT /staff/{id}/weekly-schedule - Overlapping windows: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgOverlappingRanges)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /staff/{id}/weekly-schedule - Invalid rows: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidRows)

		default:
			h.logger.Error("PUT /staff/{id}/weekly-schedule - Failed to replace schedule: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /staff/{id}/weekly-schedule - Schedule replaced successfully: staff_id=%d, rows=%d",
		staffID, len(req.Rows))
	handlers.RespondJSON(w, http.StatusOK, nil)
}
