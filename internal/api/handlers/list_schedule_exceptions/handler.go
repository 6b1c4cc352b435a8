package list_schedule_exceptions

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers"
	"github.com/dkarlovs/SBM-ScheduleService/internal/api/middleware"
	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	"github.com/dkarlovs/SBM-ScheduleService/internal/service/schedule"
	"github.com/dkarlovs/SBM-ScheduleService/internal/service/schedule/models"
)

const (
	msgMissingUserID         = "отсутствует идентификатор пользователя"
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgMissingPeriod         = "параметры dateFrom и dateTo обязательны"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod         = "dateTo должна быть не раньше dateFrom"
	msgAccessDenied          = "нет доступа к расписанию этого профессионала"
)

// ExceptionListResponse HTTP response model
type ExceptionListResponse struct {
	Exceptions []models.ExceptionResponse `json:"exceptions"`
}

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

// Handle GET /api/v1/professionals/{professionalId}/schedule-exceptions
// Query params: dateFrom (required), dateTo (required), YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	professionalIDStr := vars["professionalId"]
	professionalID, err := strconv.ParseInt(professionalIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/schedule-exceptions - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	query := r.URL.Query()
	dateFromStr := query.Get("dateFrom")
	dateToStr := query.Get("dateTo")
	if dateFromStr == "" || dateToStr == "" {
		h.logger.Warn("GET /professionals/{id}/schedule-exceptions - Missing period: professional_id=%d", professionalID)
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	dateFrom, err := time.Parse(domain.DateFormat, dateFromStr)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/schedule-exceptions - Invalid dateFrom: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	dateTo, err := time.Parse(domain.DateFormat, dateToStr)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/schedule-exceptions - Invalid dateTo: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if dateTo.Before(dateFrom) {
		h.logger.Warn("GET /professionals/{id}/schedule-exceptions - Inverted period: professional_id=%d, from=%s, to=%s",
			professionalID, dateFromStr, dateToStr)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	exceptions, err := h.service.ListExceptions(r.Context(), professionalID, userID, dateFrom, dateTo)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("GET /professionals/{id}/schedule-exceptions - Access denied: professional_id=%d, user_id=%d",
				professionalID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /professionals/{id}/schedule-exceptions - Failed to list exceptions: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/schedule-exceptions - Exceptions retrieved successfully: professional_id=%d, count=%d",
		professionalID, len(exceptions))
	handlers.RespondJSON(w, http.StatusOK, &ExceptionListResponse{Exceptions: exceptions})
}
